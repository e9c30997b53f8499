package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nocware/nocdev"
	"github.com/nocware/nocdev/types"
)

func runSwitchCommand(config *types.DeviceConfig, command string, args []string) error {
	sw, err := nocdev.NewSwitch(config)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := sw.Connect(ctx); err != nil {
		return err
	}
	defer sw.Disconnect()

	switch command {
	case "version":
		fmt.Println(sw.Version(ctx))
		return nil

	case "mac-table":
		ignore := ""
		if len(args) > 0 {
			ignore = args[0]
		}
		entries, err := sw.MACAddressTable(ctx, ignore)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%-12s %s\n", e.Interface, e.MAC)
		}
		return nil

	case "ipdt":
		entries, err := sw.IPDT(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%-12s %-17s %s\n", e.Interface, e.MAC, e.IP)
		}
		return nil

	case "vlan":
		if len(args) != 1 {
			return fmt.Errorf("usage: vlan <port>")
		}
		vlan, err := sw.VLAN(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(vlan)
		return nil

	case "set-vlan":
		if len(args) != 2 {
			return fmt.Errorf("usage: set-vlan <port> <vlan>")
		}
		vlan, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("vlan must be numeric: %w", err)
		}
		ok, err := sw.ChangeVLAN(ctx, args[0], vlan)
		if err != nil {
			return err
		}
		printVerdict(ok)
		return nil

	case "poe":
		if len(args) != 1 {
			return fmt.Errorf("usage: poe <port>")
		}
		capability, err := sw.PoE(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(capability)
		return nil

	case "poe-on":
		if len(args) != 1 {
			return fmt.Errorf("usage: poe-on <port>")
		}
		ok, err := sw.PoEOn(ctx, args[0])
		if err != nil {
			return err
		}
		printVerdict(ok)
		return nil

	case "poe-off":
		if len(args) != 1 {
			return fmt.Errorf("usage: poe-off <port>")
		}
		ok, err := sw.PoEOff(ctx, args[0])
		if err != nil {
			return err
		}
		printVerdict(ok)
		return nil

	case "poe-limit":
		if len(args) != 3 {
			return fmt.Errorf("usage: poe-limit <port> <mode> <milliwatts>")
		}
		milliwatts, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("milliwatts must be numeric: %w", err)
		}
		ok, err := sw.PoELimit(ctx, args[0], args[1], milliwatts)
		if err != nil {
			return err
		}
		printVerdict(ok)
		return nil

	default:
		return fmt.Errorf("unknown switch command %q", command)
	}
}

// printVerdict reports a verify outcome as confirmed/unconfirmed
func printVerdict(ok bool) {
	if ok {
		fmt.Println("confirmed")
	} else {
		fmt.Println("unconfirmed")
	}
}
