package types

import (
	"context"
	"time"
)

// DeviceClass represents the kind of managed NOC hardware
type DeviceClass string

const (
	DeviceClassSwitch DeviceClass = "switch"
	DeviceClassPDU    DeviceClass = "pdu"
)

// DeviceConfig contains configuration for one managed device
type DeviceConfig struct {
	// Name is a unique identifier for this device in the inventory
	Name string

	// Class is the device class (switch, pdu)
	Class DeviceClass

	// Address is the management IP/hostname
	Address string

	// Port is the management port (if not default)
	Port int

	// Username for CLI authentication
	Username string

	// Password for CLI authentication
	Password string

	// EnableSecret is the privilege-escalation password, when the device
	// drops CLI logins into user EXEC mode
	EnableSecret string

	// ReadCommunity is the SNMP community used for GET operations
	ReadCommunity string

	// WriteCommunity is the SNMP community used for SET operations
	WriteCommunity string

	// Timeout for transport operations
	Timeout time.Duration
}

// CLIConn is the contract the switch adapter requires from the CLI transport.
// One connection drives one device; exchanges are strictly sequential and the
// transport must never be shared across concurrent callers.
type CLIConn interface {
	// Connect establishes the SSH session and detects the privilege level
	Connect(ctx context.Context) error

	// Enable escalates a user EXEC session to privileged EXEC.
	// No-op when the session is already privileged or not connected.
	Enable(ctx context.Context, secret string) error

	// Disconnect tears the session down; safe to call repeatedly
	Disconnect() error

	// IsConnected reports session liveness with an active probe, not a
	// cached handle check - the remote side can die asynchronously
	IsConnected() bool

	// Run executes a single exec-mode command and returns its raw output
	Run(ctx context.Context, command string) (string, error)

	// RunConfig enters configuration mode, executes the given lines in
	// order and leaves configuration mode
	RunConfig(ctx context.Context, lines []string) error
}

// SNMPConn is the contract the PDU adapter requires from the SNMP transport
type SNMPConn interface {
	// Connect opens the SNMP socket(s)
	Connect() error

	// Disconnect closes the SNMP socket(s); safe to call repeatedly
	Disconnect() error

	// IsConnected reports whether the transport is usable
	IsConnected() bool

	// GetString performs an SNMP GET and coerces the result to a string
	GetString(oid string) (string, error)

	// GetInt performs an SNMP GET and coerces the result to an int
	GetInt(oid string) (int, error)

	// Set performs an SNMP SET with a string or integer value
	Set(oid string, value interface{}) error
}
