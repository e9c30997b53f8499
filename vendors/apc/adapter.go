package apc

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/nocware/nocdev/types"
)

// PDU drives one APC rack power distribution unit over SNMP. Hardware
// identity is immutable for the life of the device, so it is read once at
// connect time and cached; everything else is queried live.
//
// Outlet control follows the act-then-verify pattern: the control command is
// written, then the outlet status is polled until it reports the target
// state or the poll budget runs out. An exhausted poll is an ordinary false
// result - PDUs sequence outlet relays slowly and a delayed transition is an
// expected outcome, not an exception.
type PDU struct {
	config *types.DeviceConfig
	conn   types.SNMPConn
	log    types.Logger
	info   *cache.Cache

	useCentigrade bool

	// Outlet state confirmation budget: fixed delay between polls,
	// bounded total wait
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// Cache keys for the static identity snapshot
const (
	infoIdentification = "identification"
	infoLocation       = "location"
	infoHardwareRev    = "hardware_rev"
	infoFirmwareRev    = "firmware_rev"
	infoManufactured   = "manufacture_date"
	infoModelNumber    = "model_number"
	infoSerialNumber   = "serial_number"
	infoNumOutlets     = "num_outlets"
	infoNumSwitched    = "num_switched_outlets"
	infoNumMetered     = "num_metered_outlets"
	infoMaxCurrent     = "max_current"
	infoPhaseVoltage   = "phase_voltage"
)

// Unit scaling applied to raw SNMP readings
const (
	currentFactor = 10  // tenths of amps
	powerFactor   = 100 // hundredths of kW
	tempFactor    = 10  // tenths of degrees
)

// manufactureDateLayout is the date format the firmware reports
const manufactureDateLayout = "01/02/2006"

// NewPDU wraps an SNMP connection in the PDU control surface
func NewPDU(conn types.SNMPConn, config *types.DeviceConfig, log types.Logger) *PDU {
	if log == nil {
		log = types.NopLogger{}
	}
	return &PDU{
		config:       config,
		conn:         conn,
		log:          log,
		info:         cache.New(cache.NoExpiration, cache.NoExpiration),
		pollInterval: 2 * time.Second,
		pollTimeout:  30 * time.Second,
	}
}

// Host returns the management address of the PDU
func (p *PDU) Host() string {
	return p.config.Address
}

// Connect opens the SNMP transport and snapshots the static identity.
// Identity discovery failure is connection-fatal: a PDU that cannot answer
// its ident table is not usable.
func (p *PDU) Connect() error {
	if err := p.conn.Connect(); err != nil {
		return err
	}

	if err := p.loadIdentity(); err != nil {
		_ = p.conn.Disconnect()
		return &types.ConnectionError{Device: p.config.Address, Err: err}
	}

	p.log.Infof("pdu %s ready: %s outlets=%d", p.config.Address,
		p.ModelNumber(), p.NumOutlets())
	return nil
}

// Disconnect closes the transport and drops the identity snapshot
func (p *PDU) Disconnect() error {
	p.info.Flush()
	return p.conn.Disconnect()
}

// Connected reports whether the SNMP transport is usable
func (p *PDU) Connected() bool {
	return p.conn.IsConnected()
}

func (p *PDU) loadIdentity() error {
	strs := map[string]string{
		infoIdentification: oidIdentName,
		infoLocation:       oidIdentLocation,
		infoHardwareRev:    oidIdentHardwareRev,
		infoFirmwareRev:    oidIdentFirmwareRev,
		infoModelNumber:    oidIdentModelNumber,
		infoSerialNumber:   oidIdentSerialNumber,
	}
	for key, oid := range strs {
		v, err := p.conn.GetString(oid)
		if err != nil {
			return fmt.Errorf("identity discovery (%s): %w", key, err)
		}
		p.info.Set(key, v, cache.NoExpiration)
	}

	ints := map[string]string{
		infoNumOutlets:   oidNumOutlets,
		infoNumSwitched:  oidNumSwitchedOutlets,
		infoNumMetered:   oidNumMeteredOutlets,
		infoMaxCurrent:   oidMaxCurrentRating,
		infoPhaseVoltage: oidPhaseVoltage,
	}
	for key, oid := range ints {
		v, err := p.conn.GetInt(oid)
		if err != nil {
			return fmt.Errorf("identity discovery (%s): %w", key, err)
		}
		p.info.Set(key, v, cache.NoExpiration)
	}

	raw, err := p.conn.GetString(oidIdentDateOfManufact)
	if err != nil {
		return fmt.Errorf("identity discovery (%s): %w", infoManufactured, err)
	}
	date, err := time.Parse(manufactureDateLayout, raw)
	if err != nil {
		return fmt.Errorf("unparseable manufacture date %q: %w", raw, err)
	}
	p.info.Set(infoManufactured, date, cache.NoExpiration)

	return nil
}

func (p *PDU) cachedString(key string) string {
	if v, found := p.info.Get(key); found {
		return v.(string)
	}
	return ""
}

func (p *PDU) cachedInt(key string) int {
	if v, found := p.info.Get(key); found {
		return v.(int)
	}
	return 0
}

// Identification returns the configured PDU name
func (p *PDU) Identification() string { return p.cachedString(infoIdentification) }

// Location returns the configured PDU location
func (p *PDU) Location() string { return p.cachedString(infoLocation) }

// HardwareRevision returns the hardware revision
func (p *PDU) HardwareRevision() string { return p.cachedString(infoHardwareRev) }

// FirmwareRevision returns the firmware revision
func (p *PDU) FirmwareRevision() string { return p.cachedString(infoFirmwareRev) }

// ModelNumber returns the model number
func (p *PDU) ModelNumber() string { return p.cachedString(infoModelNumber) }

// SerialNumber returns the serial number
func (p *PDU) SerialNumber() string { return p.cachedString(infoSerialNumber) }

// DateOfManufacture returns when the unit was built; zero while disconnected
func (p *PDU) DateOfManufacture() time.Time {
	if v, found := p.info.Get(infoManufactured); found {
		return v.(time.Time)
	}
	return time.Time{}
}

// NumOutlets returns the total outlet count
func (p *PDU) NumOutlets() int { return p.cachedInt(infoNumOutlets) }

// NumSwitchedOutlets returns the switched outlet count
func (p *PDU) NumSwitchedOutlets() int { return p.cachedInt(infoNumSwitched) }

// NumMeteredOutlets returns the metered outlet count
func (p *PDU) NumMeteredOutlets() int { return p.cachedInt(infoNumMetered) }

// MaxCurrent returns the maximum current rating in amps
func (p *PDU) MaxCurrent() int { return p.cachedInt(infoMaxCurrent) }

// Voltage returns the phase line voltage in volts
func (p *PDU) Voltage() int { return p.cachedInt(infoPhaseVoltage) }

// LoadState returns the phase load state (lowLoad, normal, nearOverload,
// overload); "unknown" while disconnected
func (p *PDU) LoadState() string {
	if !p.conn.IsConnected() {
		return "unknown"
	}
	v, err := p.conn.GetInt(oidPhaseLoadState)
	if err != nil {
		p.log.Warnf("load state query failed: %v", err)
		return "unknown"
	}
	return lookupName(loadStates, v)
}

// Current returns the phase current draw in amps; 0 while disconnected
func (p *PDU) Current() float64 {
	return p.scaledReading(oidPhaseCurrent, currentFactor)
}

// Power returns the device power draw in kW; 0 while disconnected
func (p *PDU) Power() float64 {
	return p.scaledReading(oidDevicePower, powerFactor)
}

func (p *PDU) scaledReading(oid string, factor float64) float64 {
	if !p.conn.IsConnected() {
		return 0
	}
	v, err := p.conn.GetInt(oid)
	if err != nil {
		p.log.Warnf("reading %s failed: %v", oid, err)
		return 0
	}
	return float64(v) / factor
}

// SensorPresent reports whether a temperature/humidity probe is attached
func (p *PDU) SensorPresent() bool {
	if !p.conn.IsConnected() {
		return false
	}
	v, err := p.conn.GetInt(oidSensorType)
	if err != nil {
		return false
	}
	// 1 = temperatureOnly, 2 = temperatureHumidity; anything else means
	// lost or absent
	return v == 1 || v == 2
}

// SensorType returns the probe type name; "notInstalled" when absent
func (p *PDU) SensorType() string {
	if !p.SensorPresent() {
		return "notInstalled"
	}
	v, err := p.conn.GetInt(oidSensorType)
	if err != nil {
		return "unknown"
	}
	return lookupName(sensorTypes, v)
}

// SensorName returns the configured probe name; "" when absent
func (p *PDU) SensorName() string {
	if !p.SensorPresent() {
		return ""
	}
	v, err := p.conn.GetString(oidSensorName)
	if err != nil {
		p.log.Warnf("sensor name query failed: %v", err)
		return ""
	}
	return v
}

// SetSensorName renames the probe; no-op when no probe is attached
func (p *PDU) SetSensorName(name string) error {
	if !p.SensorPresent() {
		return nil
	}
	return p.conn.Set(oidSensorNameRW, name)
}

// SensorCommStatus returns the probe communication status
func (p *PDU) SensorCommStatus() string {
	if !p.SensorPresent() {
		return "notInstalled"
	}
	v, err := p.conn.GetInt(oidSensorCommStatus)
	if err != nil {
		return "unknown"
	}
	return lookupName(commStatusTypes, v)
}

// UseCentigrade reports the temperature unit selection
func (p *PDU) UseCentigrade() bool { return p.useCentigrade }

// SetUseCentigrade selects Celsius (true) or Fahrenheit (false) readings
func (p *PDU) SetUseCentigrade(v bool) { p.useCentigrade = v }

// SensorSupportsTemperature reports whether the probe measures temperature
func (p *PDU) SensorSupportsTemperature() bool {
	t := p.SensorType()
	return t == "temperatureOnly" || t == "temperatureHumidity"
}

// SensorSupportsHumidity reports whether the probe measures humidity
func (p *PDU) SensorSupportsHumidity() bool {
	return p.SensorType() == "temperatureHumidity"
}

// Temperature returns the probe reading in the selected unit; 0 when the
// probe is absent or temperature-incapable
func (p *PDU) Temperature() float64 {
	if !p.SensorSupportsTemperature() {
		return 0
	}
	oid := oidSensorTempF
	if p.useCentigrade {
		oid = oidSensorTempC
	}
	return p.scaledReading(oid, tempFactor)
}

// TemperatureStatus returns the threshold status of the temperature reading
func (p *PDU) TemperatureStatus() string {
	if !p.SensorSupportsTemperature() {
		return "notPresent"
	}
	v, err := p.conn.GetInt(oidSensorTempStatus)
	if err != nil {
		return "unknown"
	}
	return lookupName(sensorStatusTypes, v)
}

// Humidity returns the relative humidity in percent; 0 when the probe is
// absent or humidity-incapable
func (p *PDU) Humidity() float64 {
	if !p.SensorSupportsHumidity() {
		return 0
	}
	if !p.conn.IsConnected() {
		return 0
	}
	v, err := p.conn.GetInt(oidSensorHumidity)
	if err != nil {
		p.log.Warnf("humidity query failed: %v", err)
		return 0
	}
	return float64(v)
}

// HumidityStatus returns the threshold status of the humidity reading
func (p *PDU) HumidityStatus() string {
	if !p.SensorSupportsHumidity() {
		return "notPresent"
	}
	v, err := p.conn.GetInt(oidSensorHumidityStatus)
	if err != nil {
		return "unknown"
	}
	return lookupName(sensorStatusTypes, v)
}

// validateOutlet rejects indexes that can never reach the transport.
// Outlets are 1-based; the upper bound is only enforceable once the outlet
// count has been discovered.
func (p *PDU) validateOutlet(outlet int) error {
	if outlet < 1 {
		return &types.ArgumentError{Arg: "outlet", Value: outlet, Reason: "outlets are numbered from 1"}
	}
	if n := p.NumOutlets(); n > 0 && outlet > n {
		return &types.ArgumentError{Arg: "outlet", Value: outlet,
			Reason: fmt.Sprintf("device has %d outlets", n)}
	}
	return nil
}

// OutletName returns the configured name of an outlet
func (p *PDU) OutletName(outlet int) (string, error) {
	if err := p.validateOutlet(outlet); err != nil {
		return "", err
	}
	if !p.conn.IsConnected() {
		return "", nil
	}
	return p.conn.GetString(outletOID(oidOutletNameBase, outlet))
}

// SetOutletName renames an outlet
func (p *PDU) SetOutletName(outlet int, name string) error {
	if err := p.validateOutlet(outlet); err != nil {
		return err
	}
	if !p.conn.IsConnected() {
		return nil
	}
	return p.conn.Set(outletOID(oidOutletNameRWBase, outlet), name)
}

// OutletStatus returns the observed state of an outlet; OutletUnknown while
// disconnected
func (p *PDU) OutletStatus(outlet int) (types.OutletState, error) {
	if err := p.validateOutlet(outlet); err != nil {
		return types.OutletUnknown, err
	}
	if !p.conn.IsConnected() {
		return types.OutletUnknown, nil
	}

	v, err := p.conn.GetInt(outletOID(oidOutletStateBase, outlet))
	if err != nil {
		p.log.Warnf("outlet %d status query failed: %v", outlet, err)
		return types.OutletUnknown, nil
	}

	switch lookupName(outletStates, v) {
	case "on":
		return types.OutletOn, nil
	case "off":
		return types.OutletOff, nil
	default:
		return types.OutletUnknown, nil
	}
}

// OutletCommand switches an outlet (on, off, reboot) and confirms the
// transition by polling the outlet status until it reports the target state
// or the poll budget is exhausted. Relay transitions - reboot especially -
// are not instantaneous; an exhausted poll reports false rather than an
// error. The command itself is written exactly once: the poll re-reads
// state, it never re-applies.
func (p *PDU) OutletCommand(outlet int, op types.OutletOp) (bool, error) {
	command, ok := outletCommands[string(op)]
	if !ok {
		return false, &types.ArgumentError{Arg: "operation", Value: op, Reason: "must be on, off or reboot"}
	}
	if err := p.validateOutlet(outlet); err != nil {
		return false, err
	}
	if !p.conn.IsConnected() {
		return false, nil
	}

	if err := p.conn.Set(outletOID(oidOutletCommandBase, outlet), command); err != nil {
		p.log.Warnf("outlet %d command %s failed: %v", outlet, op, err)
		return false, nil
	}

	// A reboot cycles off and back on; the settled state is on
	target := types.OutletOn
	if op == types.OutletOpOff {
		target = types.OutletOff
	}

	deadline := time.Now().Add(p.pollTimeout)
	for {
		state, err := p.OutletStatus(outlet)
		if err != nil {
			return false, err
		}
		if state == target {
			return true, nil
		}
		if time.Now().After(deadline) {
			p.log.Warnf("outlet %d did not reach %s within %s", outlet, target, p.pollTimeout)
			return false, nil
		}
		time.Sleep(p.pollInterval)
	}
}
