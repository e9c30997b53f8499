package types

// MACEntry is one row of a switch MAC address table.
// Interface is always in shorthand notation (e.g. Gi1/0/48).
type MACEntry struct {
	// MAC is the station address in colon-separated form
	MAC string

	// Interface is the physical port the station was learned on
	Interface string
}

// IPDTEntry is one row of the IP device tracking table.
// Only bindings in ACTIVE state are surfaced; anything else is a stale
// binding for a station that has likely been unplugged.
type IPDTEntry struct {
	// IP is the tracked station address
	IP string

	// MAC is the station address in colon-separated form
	MAC string

	// Interface is the physical port the binding belongs to
	Interface string
}

// PoEPortStatus is the inline-power state of a single switch port
type PoEPortStatus struct {
	// Interface is the port in shorthand notation
	Interface string

	// Admin is the configured inline-power mode (auto, static, never)
	Admin string

	// Oper is the operational power state (on, off, faulty)
	Oper string

	// MaxMilliwatts is the configured power ceiling for the port
	MaxMilliwatts int
}

// VLANMembership is one VLAN row of the VLAN summary table
type VLANMembership struct {
	// ID is the VLAN ID (1-4094)
	ID int

	// Status is the VLAN state as reported by the device (active, act/lshut)
	Status string

	// Ports are the member ports in shorthand notation
	Ports []string
}

// PoECapability reports whether a port delivers inline power
type PoECapability string

const (
	PoEYes     PoECapability = "yes"
	PoENo      PoECapability = "no"
	PoEUnknown PoECapability = "unknown"
)

// OutletState is the observed state of a switched PDU outlet
type OutletState string

const (
	OutletOn      OutletState = "on"
	OutletOff     OutletState = "off"
	OutletUnknown OutletState = "unknown"
)

// OutletOp is a control operation on a switched PDU outlet
type OutletOp string

const (
	OutletOpOn     OutletOp = "on"
	OutletOpOff    OutletOp = "off"
	OutletOpReboot OutletOp = "reboot"
)
