package main

import (
	"fmt"
	"strconv"

	"github.com/nocware/nocdev"
	"github.com/nocware/nocdev/types"
)

func runPDUCommand(config *types.DeviceConfig, command string, args []string) error {
	pdu, err := nocdev.NewPDU(config)
	if err != nil {
		return err
	}

	if err := pdu.Connect(); err != nil {
		return err
	}
	defer pdu.Disconnect()

	switch command {
	case "info":
		fmt.Printf("name:         %s\n", pdu.Identification())
		fmt.Printf("location:     %s\n", pdu.Location())
		fmt.Printf("model:        %s\n", pdu.ModelNumber())
		fmt.Printf("serial:       %s\n", pdu.SerialNumber())
		fmt.Printf("hardware:     %s\n", pdu.HardwareRevision())
		fmt.Printf("firmware:     %s\n", pdu.FirmwareRevision())
		fmt.Printf("manufactured: %s\n", pdu.DateOfManufacture().Format("2006-01-02"))
		fmt.Printf("outlets:      %d (%d switched, %d metered)\n",
			pdu.NumOutlets(), pdu.NumSwitchedOutlets(), pdu.NumMeteredOutlets())
		fmt.Printf("rating:       %dA @ %dV\n", pdu.MaxCurrent(), pdu.Voltage())
		return nil

	case "readings":
		fmt.Printf("load:    %s\n", pdu.LoadState())
		fmt.Printf("current: %.1f A\n", pdu.Current())
		fmt.Printf("power:   %.2f kW\n", pdu.Power())
		return nil

	case "sensors":
		if !pdu.SensorPresent() {
			fmt.Println("no sensor attached")
			return nil
		}
		fmt.Printf("sensor: %s (%s, %s)\n", pdu.SensorName(), pdu.SensorType(), pdu.SensorCommStatus())
		unit := "F"
		if pdu.UseCentigrade() {
			unit = "C"
		}
		fmt.Printf("temperature: %.1f%s (%s)\n", pdu.Temperature(), unit, pdu.TemperatureStatus())
		if pdu.SensorSupportsHumidity() {
			fmt.Printf("humidity: %.0f%% (%s)\n", pdu.Humidity(), pdu.HumidityStatus())
		}
		return nil

	case "outlet-status":
		outlet, err := outletArg(args)
		if err != nil {
			return err
		}
		state, err := pdu.OutletStatus(outlet)
		if err != nil {
			return err
		}
		fmt.Println(state)
		return nil

	case "outlet-name":
		outlet, err := outletArg(args)
		if err != nil {
			return err
		}
		name, err := pdu.OutletName(outlet)
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil

	case "outlet":
		if len(args) != 2 {
			return fmt.Errorf("usage: outlet <n> on|off|reboot")
		}
		outlet, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("outlet must be numeric: %w", err)
		}
		ok, err := pdu.OutletCommand(outlet, types.OutletOp(args[1]))
		if err != nil {
			return err
		}
		printVerdict(ok)
		return nil

	default:
		return fmt.Errorf("unknown pdu command %q", command)
	}
}

func outletArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one outlet number argument")
	}
	outlet, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("outlet must be numeric: %w", err)
	}
	return outlet, nil
}
