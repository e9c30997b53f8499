package nocdev

import (
	"fmt"
	"os"

	"github.com/kr/pretty"

	"github.com/nocware/nocdev/drivers/cli"
	"github.com/nocware/nocdev/drivers/snmp"
	"github.com/nocware/nocdev/types"
	"github.com/nocware/nocdev/vendors/apc"
	"github.com/nocware/nocdev/vendors/cisco"
)

// debugEnv, when set, dumps each device config as it is wired up
const debugEnv = "NOCDEV_DEBUG"

// NewSwitch builds the CLI transport for a switch-class device and wraps it
// in the switch control surface. The connection is not opened; call
// Switch.Connect when ready to talk.
func NewSwitch(config *types.DeviceConfig) (*cisco.Switch, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.Class != "" && config.Class != types.DeviceClassSwitch {
		return nil, fmt.Errorf("device %s is class %s, not %s", config.Name, config.Class, types.DeviceClassSwitch)
	}
	debugDump(config)

	log := deviceLogger("switch", config.Name)
	driver, err := cli.NewDriver(config, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create cli driver: %w", err)
	}
	return cisco.NewSwitch(driver, config, log), nil
}

// NewPDU builds the SNMP transport for a pdu-class device and wraps it in
// the PDU control surface. The connection is not opened; call PDU.Connect
// when ready to talk.
func NewPDU(config *types.DeviceConfig) (*apc.PDU, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.Class != "" && config.Class != types.DeviceClassPDU {
		return nil, fmt.Errorf("device %s is class %s, not %s", config.Name, config.Class, types.DeviceClassPDU)
	}
	debugDump(config)

	log := deviceLogger("pdu", config.Name)
	driver, err := snmp.NewDriver(config, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create snmp driver: %w", err)
	}
	return apc.NewPDU(driver, config, log), nil
}

// NewDevice dispatches on the device class
func NewDevice(config *types.DeviceConfig) (interface{}, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	switch config.Class {
	case types.DeviceClassSwitch:
		return NewSwitch(config)
	case types.DeviceClassPDU:
		return NewPDU(config)
	default:
		return nil, fmt.Errorf("unsupported device class: %q", config.Class)
	}
}

// deviceLogger tags log lines with class and inventory name
func deviceLogger(class, name string) types.Logger {
	if name == "" {
		return types.YLogger{Module: class}
	}
	return types.YLogger{Module: class + "." + name}
}

func debugDump(config *types.DeviceConfig) {
	if os.Getenv(debugEnv) == "" {
		return
	}
	// Secrets stay out of the dump
	redacted := *config
	redacted.Password = "<redacted>"
	redacted.EnableSecret = "<redacted>"
	redacted.WriteCommunity = "<redacted>"
	fmt.Fprintf(os.Stderr, "nocdev: wiring %# v\n", pretty.Formatter(redacted))
}
