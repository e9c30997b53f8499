package cisco

import "strings"

// portNotation maps long-form interface name prefixes to the shorthand the
// device prints in table output
var portNotation = map[string]string{
	"fastethernet":       "Fa",
	"gigabitethernet":    "Gi",
	"tengigabitethernet": "Ten",
}

// shortPortName maps a long-form interface name (GigabitEthernet1/0/48) to
// shorthand (Gi1/0/48). Names with no known long-form prefix pass through
// unchanged; the empty name stays empty. This is applied on both the command
// path and the parse path so every comparison happens in one notation -
// mixing the two is the classic bug in CLI scraping.
func shortPortName(port string) string {
	if port == "" {
		return ""
	}

	lower := strings.ToLower(port)
	for long, short := range portNotation {
		if strings.HasPrefix(lower, long) {
			return short + port[len(long):]
		}
	}
	return port
}

// isPhysicalPort reports whether a table field names a physical interface
// rather than a pseudo-port like CPU or a port-channel
func isPhysicalPort(port string) bool {
	lower := strings.ToLower(shortPortName(port))
	for _, short := range portNotation {
		if strings.HasPrefix(lower, strings.ToLower(short)) {
			return true
		}
	}
	return false
}
