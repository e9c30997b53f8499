// Package nocdev controls the rack hardware a NOC touches day to day:
// Ethernet switches over an interactive CLI session and rack PDUs over SNMP.
// The root package re-exports the types sub-package so callers can stay on
// nocdev.DeviceConfig, nocdev.MACEntry and friends.
package nocdev

import (
	"github.com/nocware/nocdev/types"
)

// Type aliases for the types sub-package
type (
	DeviceClass    = types.DeviceClass
	DeviceConfig   = types.DeviceConfig
	CLIConn        = types.CLIConn
	SNMPConn       = types.SNMPConn
	Logger         = types.Logger
	MACEntry       = types.MACEntry
	IPDTEntry      = types.IPDTEntry
	PoEPortStatus  = types.PoEPortStatus
	VLANMembership = types.VLANMembership
	PoECapability  = types.PoECapability
	OutletState    = types.OutletState
	OutletOp       = types.OutletOp

	ConnectionError = types.ConnectionError
	ParseError      = types.ParseError
	ArgumentError   = types.ArgumentError
)

// Re-export constants
const (
	DeviceClassSwitch = types.DeviceClassSwitch
	DeviceClassPDU    = types.DeviceClassPDU

	PoEYes     = types.PoEYes
	PoENo      = types.PoENo
	PoEUnknown = types.PoEUnknown

	OutletOn      = types.OutletOn
	OutletOff     = types.OutletOff
	OutletUnknown = types.OutletUnknown

	OutletOpOn     = types.OutletOpOn
	OutletOpOff    = types.OutletOpOff
	OutletOpReboot = types.OutletOpReboot
)
