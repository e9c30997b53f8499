package apc

import "fmt"

// APC PowerNet-MIB rPDU2 object identifiers (enterprise 318).
// Symbol names from PowerNet-MIB; all scalar-style objects live at the
// first table row (.1), per-outlet objects are indexed by outlet number.

// Static identity (rPDU2IdentEntry)
const (
	oidIdentName            = "1.3.6.1.4.1.318.1.1.26.1.1.1.3.1" // rPDU2IdentName
	oidIdentLocation        = "1.3.6.1.4.1.318.1.1.26.1.1.1.4.1" // rPDU2IdentLocation
	oidIdentHardwareRev     = "1.3.6.1.4.1.318.1.1.26.1.1.1.5.1" // rPDU2IdentHardwareRev
	oidIdentFirmwareRev     = "1.3.6.1.4.1.318.1.1.26.1.1.1.6.1" // rPDU2IdentFirmwareRev
	oidIdentDateOfManufact  = "1.3.6.1.4.1.318.1.1.26.1.1.1.7.1" // rPDU2IdentDateOfManufacture
	oidIdentModelNumber     = "1.3.6.1.4.1.318.1.1.26.1.1.1.8.1" // rPDU2IdentModelNumber
	oidIdentSerialNumber    = "1.3.6.1.4.1.318.1.1.26.1.1.1.9.1" // rPDU2IdentSerialNumber
)

// Device properties (rPDU2DevicePropertiesEntry)
const (
	oidNumOutlets         = "1.3.6.1.4.1.318.1.1.26.4.1.1.4.1" // rPDU2DevicePropertiesNumOutlets
	oidNumSwitchedOutlets = "1.3.6.1.4.1.318.1.1.26.4.1.1.5.1" // rPDU2DevicePropertiesNumSwitchedOutlets
	oidNumMeteredOutlets  = "1.3.6.1.4.1.318.1.1.26.4.1.1.6.1" // rPDU2DevicePropertiesNumMeteredOutlets
	oidMaxCurrentRating   = "1.3.6.1.4.1.318.1.1.26.4.1.1.7.1" // rPDU2DevicePropertiesMaxCurrentRating
)

// Device and phase status
const (
	oidDevicePower      = "1.3.6.1.4.1.318.1.1.26.4.3.1.5.1" // rPDU2DeviceStatusPower (hundredths of kW)
	oidPhaseLoadState   = "1.3.6.1.4.1.318.1.1.26.6.3.1.4.1" // rPDU2PhaseStatusLoadState
	oidPhaseCurrent     = "1.3.6.1.4.1.318.1.1.26.6.3.1.5.1" // rPDU2PhaseStatusCurrent (tenths of A)
	oidPhaseVoltage     = "1.3.6.1.4.1.318.1.1.26.6.3.1.6.1" // rPDU2PhaseStatusVoltage
)

// Temperature/humidity sensor (rPDU2SensorTempHumidityStatusEntry)
const (
	oidSensorName           = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.3.1"  // rPDU2SensorTempHumidityStatusName
	oidSensorType           = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.4.1"  // rPDU2SensorTempHumidityStatusType
	oidSensorCommStatus     = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.5.1"  // rPDU2SensorTempHumidityStatusCommStatus
	oidSensorTempF          = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.6.1"  // rPDU2SensorTempHumidityStatusTempF (tenths)
	oidSensorTempC          = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.7.1"  // rPDU2SensorTempHumidityStatusTempC (tenths)
	oidSensorTempStatus     = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.8.1"  // rPDU2SensorTempHumidityStatusTempStatus
	oidSensorHumidity       = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.9.1"  // rPDU2SensorTempHumidityStatusRelativeHumidity
	oidSensorHumidityStatus = "1.3.6.1.4.1.318.1.1.26.10.2.2.1.10.1" // rPDU2SensorTempHumidityStatusHumidityStatus
	oidSensorNameRW         = "1.3.6.1.4.1.318.1.1.26.10.2.1.1.3.1"  // rPDU2SensorTempHumidityConfigName
)

// Per-outlet objects, indexed by outlet number
const (
	oidOutletNameBase    = "1.3.6.1.4.1.318.1.1.26.9.2.2.1.3" // rPDU2OutletSwitchedStatusName
	oidOutletStateBase   = "1.3.6.1.4.1.318.1.1.26.9.2.2.1.5" // rPDU2OutletSwitchedStatusState
	oidOutletNameRWBase  = "1.3.6.1.4.1.318.1.1.26.9.2.1.1.3" // rPDU2OutletSwitchedConfigName
	oidOutletCommandBase = "1.3.6.1.4.1.318.1.1.26.9.2.3.1.5" // rPDU2OutletSwitchedControlCommand
)

// outletOID appends the outlet index to a per-outlet base OID
func outletOID(base string, outlet int) string {
	return fmt.Sprintf("%s.%d", base, outlet)
}

// Integer-to-name lookups from PowerNet-MIB enumerations. Index 0 is unused;
// the MIB counts from 1.
var (
	loadStates = []string{"", "lowLoad", "normal", "nearOverload", "overload"}

	sensorTypes = []string{"", "temperatureOnly", "temperatureHumidity", "commsLost", "notInstalled"}

	commStatusTypes = []string{"", "notInstalled", "commsOK", "commsLost"}

	sensorStatusTypes = []string{"", "notPresent", "belowMin", "belowLow", "normal", "aboveHigh", "aboveMax"}

	outletStates = []string{"", "off", "on"}
)

// Control command values for rPDU2OutletSwitchedControlCommand
var outletCommands = map[string]int{
	"on":     1,
	"off":    2,
	"reboot": 3,
}

// lookupName resolves a MIB enumeration value against its name table,
// falling back to "unknown" for values outside the table
func lookupName(table []string, value int) string {
	if value < 1 || value >= len(table) {
		return "unknown"
	}
	return table[value]
}
