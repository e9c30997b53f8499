package cisco

import (
	"net"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nocware/nocdev/types"
	"github.com/nocware/nocdev/vendors/common"
)

// Table parsers for IOS show-command output. Each parser is a pure function
// of the raw text: no transport, no adapter state. Field positions were
// reverse-engineered from captured device output and are pinned by the
// fixtures in parse_test.go; a firmware that reorders columns breaks this
// contract and surfaces as a ParseError.
//
// Lines that do not carry the table's structural fingerprint (a dotted MAC
// token, an interface slash) are banner or footer noise and are skipped
// silently. A line that matches the fingerprint but is missing fields is
// fatal - guessing misaligned columns would silently corrupt records.

// versionRe pulls the release token out of the show version banner
var versionRe = regexp.MustCompile(`Version\s+([^,\s]+)`)

// normalizeMAC converts the dotted station address the device prints
// (6cec.eb68.c86f) into canonical colon-separated form
func normalizeMAC(s string) (string, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return "", err
	}
	return hw.String(), nil
}

// parseMACTable converts `sh mac address-table` output into records:
//
//	          Mac Address Table
//	-------------------------------------------
//	Vlan    Mac Address       Type        Ports
//	----    -----------       --------    -----
//	 All    0100.0ccc.cccc    STATIC      CPU
//	 601    000b.7866.5240    DYNAMIC     Gi1/0/48
//	 Total Mac Addresses for this criterion: 59
//
// Entries bound to non-physical ports (CPU) are dropped, as is the optional
// ignorePort (typically the uplink, which would otherwise report every MAC
// behind it). Results are sorted by interface.
func parseMACTable(output, ignorePort string) ([]types.MACEntry, error) {
	ignore := shortPortName(ignorePort)

	var entries []types.MACEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		// Table rows always carry a dotted MAC token
		if !strings.Contains(line, ".") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, &types.ParseError{Table: "mac address-table", Line: line}
		}

		port := shortPortName(fields[3])
		if !isPhysicalPort(port) {
			continue
		}
		if ignore != "" && strings.EqualFold(port, ignore) {
			continue
		}

		mac, err := normalizeMAC(fields[1])
		if err != nil {
			return nil, &types.ParseError{Table: "mac address-table", Line: line}
		}

		entries = append(entries, types.MACEntry{MAC: mac, Interface: port})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Interface != entries[j].Interface {
			return entries[i].Interface < entries[j].Interface
		}
		return entries[i].MAC < entries[j].MAC
	})

	return entries, nil
}

// parseIPDT converts `sh ip device track all` output into records:
//
//	IP Device Tracking = Enabled
//	-----------------------------------------------------------------
//	  IP Address     MAC Address   Vlan  Interface              STATE
//	-----------------------------------------------------------------
//	192.168.1.12     6cec.eb68.c86f  601  GigabitEthernet1/0/14  ACTIVE
//
// Rows in any state other than ACTIVE are stale bindings for stations that
// have likely been unplugged, and are excluded. Results are sorted by
// interface.
func parseIPDT(output string) ([]types.IPDTEntry, error) {
	var entries []types.IPDTEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		if !strings.Contains(line, ".") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, &types.ParseError{Table: "ip device tracking", Line: line}
		}

		if fields[4] != "ACTIVE" {
			continue
		}

		mac, err := normalizeMAC(fields[1])
		if err != nil {
			return nil, &types.ParseError{Table: "ip device tracking", Line: line}
		}

		entries = append(entries, types.IPDTEntry{
			IP:        fields[0],
			MAC:       mac,
			Interface: shortPortName(fields[3]),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Interface != entries[j].Interface {
			return entries[i].Interface < entries[j].Interface
		}
		return entries[i].IP < entries[j].IP
	})

	return entries, nil
}

// parsePoEStatus finds the row for one port in `show power inline <port>`
// output:
//
//	Interface Admin  Oper       Power   Device              Class Max
//	--------- ------ ---------- ------- ------------------- ----- ----
//	Gi1/0/1   auto   on         15.4    Ieee PD             3     30.0
//
// The device column may contain spaces, so Admin/Oper are taken from fixed
// positions at the front and the power ceiling from the final column.
// Returns false when the output has no row for the port.
func parsePoEStatus(output, port string) (types.PoEPortStatus, bool, error) {
	want := shortPortName(port)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "/") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.EqualFold(shortPortName(fields[0]), want) {
			continue
		}
		if len(fields) < 6 {
			return types.PoEPortStatus{}, false, &types.ParseError{Table: "power inline", Line: line}
		}

		// Power-incapable ports print n/a across the row; the ceiling is
		// simply absent, not malformed
		maxWatts, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			maxWatts = 0
		}

		return types.PoEPortStatus{
			Interface:     shortPortName(fields[0]),
			Admin:         strings.ToLower(fields[1]),
			Oper:          strings.ToLower(fields[2]),
			MaxMilliwatts: int(maxWatts * 1000),
		}, true, nil
	}

	return types.PoEPortStatus{}, false, nil
}

// parseVLANTable converts `show vlan brief` output into memberships:
//
//	VLAN Name                             Status    Ports
//	---- -------------------------------- --------- ----------------------
//	701  NET-701                          active    Gi1/0/1, Gi1/0/2
//	704  NET-704                          active    Gi1/0/5, Gi1/0/6,
//	                                                Gi1/0/7
//
// A row starting with a VLAN id is a carrier line; lines below it with no
// id continue the previous carrier's port list. The current carrier is
// explicit fold state threaded through the scan, which keeps the parser
// reentrant.
func parseVLANTable(output string) ([]types.VLANMembership, error) {
	var memberships []types.VLANMembership
	var current *types.VLANMembership

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if id, err := strconv.Atoi(fields[0]); err == nil {
			if len(fields) < 3 {
				return nil, &types.ParseError{Table: "vlan brief", Line: line}
			}
			if current != nil {
				memberships = append(memberships, *current)
			}
			current = &types.VLANMembership{
				ID:     id,
				Status: fields[2],
			}
			if len(fields) > 3 {
				current.Ports = normalizePortList(strings.Join(fields[3:], " "))
			}
			continue
		}

		// Continuation line: ports belonging to the most recent carrier
		if strings.Contains(line, "/") && current != nil {
			current.Ports = append(current.Ports, normalizePortList(line)...)
			continue
		}

		// Header/separator noise
	}

	if current != nil {
		memberships = append(memberships, *current)
	}

	return memberships, nil
}

// normalizePortList splits a comma-separated port list and normalizes each
// name to shorthand
func normalizePortList(s string) []string {
	var ports []string
	for _, p := range common.SplitList(s) {
		ports = append(ports, shortPortName(p))
	}
	return ports
}

// vlanOfPort returns the VLAN a port is a member of, or -1 when the port
// appears nowhere in the table
func vlanOfPort(output, port string) (int, error) {
	memberships, err := parseVLANTable(output)
	if err != nil {
		return -1, err
	}

	want := shortPortName(port)
	for _, m := range memberships {
		for _, p := range m.Ports {
			if strings.EqualFold(p, want) {
				return m.ID, nil
			}
		}
	}

	return -1, nil
}

// verifyVLAN checks whether a port is a member of the wanted VLAN.
// Returns the match verdict together with the VLAN actually observed
// (-1 when the port is in no VLAN).
func verifyVLAN(output, port string, want int) (bool, int, error) {
	actual, err := vlanOfPort(output, port)
	if err != nil {
		return false, -1, err
	}
	return actual != -1 && actual == want, actual, nil
}

// parseVersion pulls the firmware release out of the show version banner.
// Returns "" when the banner carries no recognizable release token.
func parseVersion(output string) string {
	if m := versionRe.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return ""
}
