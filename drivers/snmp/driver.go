package snmp

import (
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/nocware/nocdev/types"
	"github.com/nocware/nocdev/vendors/common"
)

// Driver implements types.SNMPConn on top of gosnmp. PDUs gate reads and
// writes behind different community strings, so the driver keeps two
// clients: one bound to the read community, one to the write community.
type Driver struct {
	config *types.DeviceConfig
	log    types.Logger
	getter *gosnmp.GoSNMP
	setter *gosnmp.GoSNMP
}

// NewDriver creates a new SNMP driver. It does not connect.
func NewDriver(config *types.DeviceConfig, log types.Logger) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if log == nil {
		log = types.NopLogger{}
	}

	if config.Port == 0 {
		config.Port = 161
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.ReadCommunity == "" {
		config.ReadCommunity = "public"
	}
	if config.WriteCommunity == "" {
		config.WriteCommunity = config.ReadCommunity
	}

	return &Driver{
		config: config,
		log:    log,
	}, nil
}

func (d *Driver) newClient(community string) *gosnmp.GoSNMP {
	port := d.config.Port
	if port < 0 || port > 65535 {
		port = 161
	}
	return &gosnmp.GoSNMP{
		Target:    d.config.Address,
		Port:      uint16(port), //nolint:gosec // validated above
		Community: community,
		Version:   gosnmp.Version2c,
		Timeout:   d.config.Timeout,
		Retries:   2,
	}
}

// Connect opens both community-bound sockets
func (d *Driver) Connect() error {
	if d.getter != nil {
		return nil
	}

	getter := d.newClient(d.config.ReadCommunity)
	if err := getter.Connect(); err != nil {
		return &types.ConnectionError{Device: d.config.Address, Err: err}
	}

	setter := d.newClient(d.config.WriteCommunity)
	if err := setter.Connect(); err != nil {
		getter.Conn.Close()
		return &types.ConnectionError{Device: d.config.Address, Err: err}
	}

	d.getter = getter
	d.setter = setter
	d.log.Infof("snmp transport to %s ready", d.config.Address)

	return nil
}

// Disconnect closes both sockets; safe to call repeatedly
func (d *Driver) Disconnect() error {
	var err error
	if d.getter != nil {
		err = d.getter.Conn.Close()
		d.getter = nil
	}
	if d.setter != nil {
		if cerr := d.setter.Conn.Close(); err == nil {
			err = cerr
		}
		d.setter = nil
	}
	return err
}

// IsConnected reports whether the transport is usable. SNMP is datagram
// based, so unlike the CLI transport there is no session to probe.
func (d *Driver) IsConnected() bool {
	return d.getter != nil
}

func (d *Driver) get(oid string) (interface{}, error) {
	if d.getter == nil {
		return nil, fmt.Errorf("not connected")
	}

	result, err := d.getter.Get([]string{oid})
	if err != nil {
		return nil, fmt.Errorf("SNMP GET %s failed: %w", oid, err)
	}
	if len(result.Variables) == 0 {
		return nil, fmt.Errorf("no result for OID %s", oid)
	}

	v := result.Variables[0]
	if v.Type == gosnmp.NoSuchObject || v.Type == gosnmp.NoSuchInstance {
		return nil, fmt.Errorf("OID %s not present on device", oid)
	}

	return v.Value, nil
}

// GetString performs an SNMP GET and coerces the result to a string
func (d *Driver) GetString(oid string) (string, error) {
	value, err := d.get(oid)
	if err != nil {
		return "", err
	}

	if s, ok := common.ParseStringSNMPValue(value); ok {
		return s, nil
	}
	if n, ok := common.ParseIntSNMPValue(value); ok {
		return fmt.Sprintf("%d", n), nil
	}
	return "", fmt.Errorf("OID %s returned non-string value %v", oid, value)
}

// GetInt performs an SNMP GET and coerces the result to an int
func (d *Driver) GetInt(oid string) (int, error) {
	value, err := d.get(oid)
	if err != nil {
		return 0, err
	}

	n, ok := common.ParseIntSNMPValue(value)
	if !ok {
		return 0, fmt.Errorf("OID %s returned non-integer value %v", oid, value)
	}
	return int(n), nil
}

// Set performs an SNMP SET through the write community
func (d *Driver) Set(oid string, value interface{}) error {
	if d.setter == nil {
		return fmt.Errorf("not connected")
	}

	pdu := gosnmp.SnmpPDU{Name: oid}
	switch v := value.(type) {
	case string:
		pdu.Type = gosnmp.OctetString
		pdu.Value = v
	case int:
		pdu.Type = gosnmp.Integer
		pdu.Value = v
	default:
		return fmt.Errorf("unsupported SET value type %T for OID %s", value, oid)
	}

	d.log.Debugf("snmp set %s = %v on %s", oid, value, d.config.Address)
	if _, err := d.setter.Set([]gosnmp.SnmpPDU{pdu}); err != nil {
		return fmt.Errorf("SNMP SET %s failed: %w", oid, err)
	}

	return nil
}

// Ensure Driver implements SNMPConn
var _ types.SNMPConn = (*Driver)(nil)
