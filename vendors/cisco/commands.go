package cisco

// Exec-mode queries
const (
	cmdVersion   = "show version"
	cmdMACTable  = "sh mac address-table"
	cmdIPDT      = "sh ip device track all"
	cmdPoEStatus = "show power inline %s"
	cmdVLANBrief = "show vlan brief"
)

// Interface-context configuration commands
const (
	cmdInterface  = "interface %s"
	cmdPowerOn    = "power inline auto"
	cmdPowerOff   = "power inline never"
	cmdPowerLimit = "power inline %s max %d"
	cmdAccessMode = "switchport mode access"
	cmdAccessVLAN = "switchport access vlan %d"
)

// poeLimitModes are the inline-power admin modes that accept a power ceiling
var poeLimitModes = map[string]bool{
	"auto":   true,
	"static": true,
}

// Inline power ceilings accepted by the firmware, in milliwatts
const (
	poeLimitMinMilliwatts = 4000
	poeLimitMaxMilliwatts = 30000
)
