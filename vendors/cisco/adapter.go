package cisco

import (
	"context"
	"fmt"
	"strings"

	cache "github.com/patrickmn/go-cache"

	"github.com/nocware/nocdev/types"
)

// Switch drives one Catalyst-style Ethernet switch over an interactive CLI
// session. Mutating operations follow a two-phase protocol: apply the
// configuration sequence, then re-query the authoritative table and compare
// against the intended state. The boolean result is the verification
// verdict - a rejected or ignored command is not an error, it is a false.
//
// Operations invoked while disconnected return their documented sentinel
// (nil table, -1, "unknown", false) instead of failing, so callers can probe
// device state without error-driven control flow.
type Switch struct {
	config *types.DeviceConfig
	conn   types.CLIConn
	log    types.Logger
	memo   *cache.Cache
}

// memoVersion keys the memoized firmware version; the fact is immutable for
// the lifetime of a session
const memoVersion = "version"

// NewSwitch wraps a CLI connection in the switch control surface
func NewSwitch(conn types.CLIConn, config *types.DeviceConfig, log types.Logger) *Switch {
	if log == nil {
		log = types.NopLogger{}
	}
	return &Switch{
		config: config,
		conn:   conn,
		log:    log,
		memo:   cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// Host returns the management address of the switch
func (s *Switch) Host() string {
	return s.config.Address
}

// Connect establishes the CLI session and, when an enable secret is
// configured, escalates to privileged mode immediately
func (s *Switch) Connect(ctx context.Context) error {
	if err := s.conn.Connect(ctx); err != nil {
		return err
	}
	if s.config.EnableSecret != "" {
		if err := s.conn.Enable(ctx, s.config.EnableSecret); err != nil {
			return err
		}
	}
	return nil
}

// Enable escalates the session to privileged mode. No-op when the session
// is already privileged or not connected.
func (s *Switch) Enable(ctx context.Context, secret string) error {
	return s.conn.Enable(ctx, secret)
}

// Disconnect tears the session down and invalidates session-scoped memos
func (s *Switch) Disconnect() error {
	s.memo.Flush()
	return s.conn.Disconnect()
}

// Connected reports session liveness via the transport's active probe
func (s *Switch) Connected() bool {
	return s.conn.IsConnected()
}

// Version returns the firmware release, memoized after the first successful
// query. Returns "" while disconnected.
func (s *Switch) Version(ctx context.Context) string {
	if v, found := s.memo.Get(memoVersion); found {
		return v.(string)
	}
	if !s.conn.IsConnected() {
		return ""
	}

	out, err := s.conn.Run(ctx, cmdVersion)
	if err != nil {
		s.log.Warnf("version query failed: %v", err)
		return ""
	}

	version := parseVersion(out)
	if version != "" {
		s.memo.Set(memoVersion, version, cache.NoExpiration)
	}
	return version
}

// MACAddressTable returns the learned stations, sorted by interface.
// ignorePort (typically the uplink) is excluded when non-empty. Returns nil
// while disconnected.
func (s *Switch) MACAddressTable(ctx context.Context, ignorePort string) ([]types.MACEntry, error) {
	if !s.conn.IsConnected() {
		return nil, nil
	}

	out, err := s.conn.Run(ctx, cmdMACTable)
	if err != nil {
		s.log.Warnf("mac address-table query failed: %v", err)
		return nil, nil
	}

	return parseMACTable(out, ignorePort)
}

// IPDT returns the active IP device tracking bindings, sorted by interface.
// Returns nil while disconnected.
func (s *Switch) IPDT(ctx context.Context) ([]types.IPDTEntry, error) {
	if !s.conn.IsConnected() {
		return nil, nil
	}

	out, err := s.conn.Run(ctx, cmdIPDT)
	if err != nil {
		s.log.Warnf("ipdt query failed: %v", err)
		return nil, nil
	}

	return parseIPDT(out)
}

// VLAN returns the VLAN a port belongs to, or -1 when disconnected or when
// the port is in no VLAN
func (s *Switch) VLAN(ctx context.Context, port string) (int, error) {
	if !s.conn.IsConnected() {
		return -1, nil
	}

	out, err := s.conn.Run(ctx, cmdVLANBrief)
	if err != nil {
		s.log.Warnf("vlan query failed: %v", err)
		return -1, nil
	}

	return vlanOfPort(out, port)
}

// PoE reports whether a port delivers inline power. Returns PoEUnknown
// while disconnected.
func (s *Switch) PoE(ctx context.Context, port string) (types.PoECapability, error) {
	if !s.conn.IsConnected() {
		return types.PoEUnknown, nil
	}

	status, found, err := s.poeStatus(ctx, shortPortName(port))
	if err != nil {
		return types.PoEUnknown, err
	}
	if !found || status.Admin == "n/a" {
		return types.PoENo, nil
	}
	return types.PoEYes, nil
}

// PoEOn enables inline power on a port and verifies the admin state took.
// Returns false while disconnected, when the device rejected the command,
// or when the re-queried state does not show auto mode.
func (s *Switch) PoEOn(ctx context.Context, port string) (bool, error) {
	return s.setPoEMode(ctx, port, cmdPowerOn, func(admin string) bool {
		return strings.Contains(admin, "auto")
	})
}

// PoEOff disables inline power on a port and verifies the admin state took
func (s *Switch) PoEOff(ctx context.Context, port string) (bool, error) {
	return s.setPoEMode(ctx, port, cmdPowerOff, func(admin string) bool {
		return !strings.Contains(admin, "auto")
	})
}

// PoELimit caps the inline power of a port at the given ceiling. The mode
// must be one of the limit-capable admin modes; the ceiling must be within
// the firmware's accepted range. Verification checks the chosen mode is the
// observed admin state.
func (s *Switch) PoELimit(ctx context.Context, port, mode string, milliwatts int) (bool, error) {
	if !poeLimitModes[mode] {
		return false, &types.ArgumentError{Arg: "mode", Value: mode, Reason: "must be auto or static"}
	}
	if milliwatts < poeLimitMinMilliwatts || milliwatts > poeLimitMaxMilliwatts {
		return false, &types.ArgumentError{
			Arg:    "milliwatts",
			Value:  milliwatts,
			Reason: fmt.Sprintf("must be within [%d, %d]", poeLimitMinMilliwatts, poeLimitMaxMilliwatts),
		}
	}

	return s.setPoEMode(ctx, port, fmt.Sprintf(cmdPowerLimit, mode, milliwatts), func(admin string) bool {
		return strings.Contains(admin, mode)
	})
}

// ChangeVLAN moves a port into an access VLAN and verifies membership
// against the re-queried VLAN table
func (s *Switch) ChangeVLAN(ctx context.Context, port string, vlan int) (bool, error) {
	if vlan < 1 || vlan > 4094 {
		return false, &types.ArgumentError{Arg: "vlan", Value: vlan, Reason: "must be within [1, 4094]"}
	}
	if !s.conn.IsConnected() {
		return false, nil
	}

	p := shortPortName(port)
	lines := []string{
		fmt.Sprintf(cmdInterface, p),
		cmdAccessMode,
		fmt.Sprintf(cmdAccessVLAN, vlan),
	}
	if err := s.conn.RunConfig(ctx, lines); err != nil {
		s.log.Warnf("vlan change on %s failed: %v", p, err)
		return false, nil
	}

	out, err := s.conn.Run(ctx, cmdVLANBrief)
	if err != nil {
		s.log.Warnf("vlan verification query failed: %v", err)
		return false, nil
	}

	matched, actual, err := verifyVLAN(out, p, vlan)
	if err != nil {
		return false, err
	}
	if !matched {
		s.log.Warnf("vlan change on %s not confirmed: want %d, observed %d", p, vlan, actual)
	}
	return matched, nil
}

// setPoEMode is the shared apply-then-verify path for the inline power
// operations: enter the interface context, set the mode, then re-query the
// power status table and let wantAdmin judge the observed admin state.
func (s *Switch) setPoEMode(ctx context.Context, port, modeLine string, wantAdmin func(admin string) bool) (bool, error) {
	if !s.conn.IsConnected() {
		return false, nil
	}

	p := shortPortName(port)
	lines := []string{
		fmt.Sprintf(cmdInterface, p),
		modeLine,
	}
	if err := s.conn.RunConfig(ctx, lines); err != nil {
		s.log.Warnf("inline power change on %s failed: %v", p, err)
		return false, nil
	}

	status, found, err := s.poeStatus(ctx, p)
	if err != nil {
		return false, err
	}
	if !found {
		s.log.Warnf("inline power change on %s not confirmed: port missing from status table", p)
		return false, nil
	}
	return wantAdmin(status.Admin), nil
}

// poeStatus re-queries the authoritative power state of one port
func (s *Switch) poeStatus(ctx context.Context, port string) (types.PoEPortStatus, bool, error) {
	out, err := s.conn.Run(ctx, fmt.Sprintf(cmdPoEStatus, port))
	if err != nil {
		s.log.Warnf("power status query for %s failed: %v", port, err)
		return types.PoEPortStatus{}, false, nil
	}
	return parsePoEStatus(out, port)
}
