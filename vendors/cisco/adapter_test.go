package cisco

import (
	"context"
	"fmt"
	"testing"

	"github.com/nocware/nocdev/types"
)

// fakeConn is a scripted CLI transport: Run answers from a canned
// command-to-output map and every command and config batch is recorded
type fakeConn struct {
	connected bool
	responses map[string]string
	runErr    error
	configErr error

	runs    []string
	configs [][]string
}

func (f *fakeConn) Connect(ctx context.Context) error {
	f.connected = true
	return nil
}

func (f *fakeConn) Enable(ctx context.Context, secret string) error { return nil }

func (f *fakeConn) Disconnect() error {
	f.connected = false
	return nil
}

func (f *fakeConn) IsConnected() bool { return f.connected }

func (f *fakeConn) Run(ctx context.Context, command string) (string, error) {
	f.runs = append(f.runs, command)
	if f.runErr != nil {
		return "", f.runErr
	}
	return f.responses[command], nil
}

func (f *fakeConn) RunConfig(ctx context.Context, lines []string) error {
	f.configs = append(f.configs, lines)
	return f.configErr
}

var _ types.CLIConn = (*fakeConn)(nil)

func testSwitch(conn *fakeConn) *Switch {
	return NewSwitch(conn, &types.DeviceConfig{
		Name:    "sw-lab-1",
		Address: "192.0.2.10",
	}, nil)
}

func countRuns(conn *fakeConn, command string) int {
	n := 0
	for _, c := range conn.runs {
		if c == command {
			n++
		}
	}
	return n
}

func TestDisconnectedSentinels(t *testing.T) {
	ctx := context.Background()
	sw := testSwitch(&fakeConn{connected: false})

	if v := sw.Version(ctx); v != "" {
		t.Errorf("Version while disconnected = %q, want empty", v)
	}

	entries, err := sw.MACAddressTable(ctx, "")
	if entries != nil || err != nil {
		t.Errorf("MACAddressTable while disconnected = %v, %v, want nil, nil", entries, err)
	}

	bindings, err := sw.IPDT(ctx)
	if bindings != nil || err != nil {
		t.Errorf("IPDT while disconnected = %v, %v, want nil, nil", bindings, err)
	}

	vlan, err := sw.VLAN(ctx, "Gi1/0/1")
	if vlan != -1 || err != nil {
		t.Errorf("VLAN while disconnected = %d, %v, want -1, nil", vlan, err)
	}

	poe, err := sw.PoE(ctx, "Gi1/0/1")
	if poe != types.PoEUnknown || err != nil {
		t.Errorf("PoE while disconnected = %v, %v, want unknown, nil", poe, err)
	}

	ok, err := sw.PoEOn(ctx, "Gi1/0/1")
	if ok || err != nil {
		t.Errorf("PoEOn while disconnected = %v, %v, want false, nil", ok, err)
	}

	ok, err = sw.ChangeVLAN(ctx, "Gi1/0/1", 701)
	if ok || err != nil {
		t.Errorf("ChangeVLAN while disconnected = %v, %v, want false, nil", ok, err)
	}
}

func TestVersionMemoized(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{
		connected: true,
		responses: map[string]string{
			cmdVersion: "Cisco IOS Software, Version 15.2(7)E3, RELEASE SOFTWARE",
		},
	}
	sw := testSwitch(conn)

	if v := sw.Version(ctx); v != "15.2(7)E3" {
		t.Fatalf("Version = %q, want 15.2(7)E3", v)
	}
	if v := sw.Version(ctx); v != "15.2(7)E3" {
		t.Fatalf("Second Version = %q, want 15.2(7)E3", v)
	}
	if n := countRuns(conn, cmdVersion); n != 1 {
		t.Errorf("Expected a single version query, device saw %d", n)
	}

	// Disconnect invalidates the memo
	if err := sw.Disconnect(); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if v := sw.Version(ctx); v != "" {
		t.Errorf("Version after disconnect = %q, want empty", v)
	}
}

func TestPoECapability(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{
		connected: true,
		responses: map[string]string{
			fmt.Sprintf(cmdPoEStatus, "Gi1/0/1"): poeFixture,
			fmt.Sprintf(cmdPoEStatus, "Gi1/0/9"): `Interface Admin  Oper       Power   Device              Class Max
--------- ------ ---------- ------- ------------------- ----- ----
Gi1/0/9   n/a    n/a        0.0     n/a                 n/a   n/a
`,
		},
	}
	sw := testSwitch(conn)

	poe, err := sw.PoE(ctx, "GigabitEthernet1/0/1")
	if err != nil {
		t.Fatalf("PoE failed: %v", err)
	}
	if poe != types.PoEYes {
		t.Errorf("PoE(Gi1/0/1) = %v, want yes", poe)
	}

	// Port present in the table but not power-capable
	poe, err = sw.PoE(ctx, "Gi1/0/9")
	if err != nil {
		t.Fatalf("PoE failed: %v", err)
	}
	if poe != types.PoENo {
		t.Errorf("PoE(Gi1/0/9) = %v, want no", poe)
	}

	// Port absent from the table entirely
	poe, err = sw.PoE(ctx, "Gi1/0/40")
	if err != nil {
		t.Fatalf("PoE failed: %v", err)
	}
	if poe != types.PoENo {
		t.Errorf("PoE(Gi1/0/40) = %v, want no", poe)
	}
}

func TestPoEOnVerified(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{
		connected: true,
		responses: map[string]string{
			fmt.Sprintf(cmdPoEStatus, "Gi1/0/1"): poeFixture,
		},
	}
	sw := testSwitch(conn)

	ok, err := sw.PoEOn(ctx, "GigabitEthernet1/0/1")
	if err != nil {
		t.Fatalf("PoEOn failed: %v", err)
	}
	if !ok {
		t.Error("Expected verification to confirm auto mode")
	}

	if len(conn.configs) != 1 {
		t.Fatalf("Expected one config batch, got %d", len(conn.configs))
	}
	batch := conn.configs[0]
	if len(batch) != 2 || batch[0] != "interface Gi1/0/1" || batch[1] != cmdPowerOn {
		t.Errorf("Unexpected config batch: %v", batch)
	}
}

func TestPoEOffNotConfirmed(t *testing.T) {
	ctx := context.Background()
	// Device still reports admin auto after the off command: mismatch
	conn := &fakeConn{
		connected: true,
		responses: map[string]string{
			fmt.Sprintf(cmdPoEStatus, "Gi1/0/1"): poeFixture,
		},
	}
	sw := testSwitch(conn)

	ok, err := sw.PoEOff(ctx, "Gi1/0/1")
	if err != nil {
		t.Fatalf("PoEOff failed: %v", err)
	}
	if ok {
		t.Error("Expected verification mismatch, not success")
	}
}

func TestPoELimitArgumentValidation(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{connected: true}
	sw := testSwitch(conn)

	tests := []struct {
		name       string
		mode       string
		milliwatts int
	}{
		{"bad mode", "never", 15000},
		{"below range", "auto", 3999},
		{"above range", "static", 30001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := sw.PoELimit(ctx, "Gi1/0/1", tt.mode, tt.milliwatts)
			if ok {
				t.Error("Expected false result")
			}
			if !types.IsArgumentError(err) {
				t.Errorf("Expected ArgumentError, got %v", err)
			}
		})
	}

	// Rejected arguments must never reach the device
	if len(conn.configs) != 0 || len(conn.runs) != 0 {
		t.Errorf("Device saw traffic for invalid arguments: runs=%v configs=%v", conn.runs, conn.configs)
	}
}

func TestPoELimitVerified(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{
		connected: true,
		responses: map[string]string{
			fmt.Sprintf(cmdPoEStatus, "Gi1/0/7"): `Interface Admin  Oper       Power   Device              Class Max
--------- ------ ---------- ------- ------------------- ----- ----
Gi1/0/7   static on         12.9    Ieee PD             3     25.5
`,
		},
	}
	sw := testSwitch(conn)

	ok, err := sw.PoELimit(ctx, "Gi1/0/7", "static", 25500)
	if err != nil {
		t.Fatalf("PoELimit failed: %v", err)
	}
	if !ok {
		t.Error("Expected verification to confirm static mode")
	}

	batch := conn.configs[0]
	if batch[1] != "power inline static max 25500" {
		t.Errorf("Unexpected limit command: %q", batch[1])
	}
}

func TestChangeVLANVerified(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{
		connected: true,
		responses: map[string]string{
			cmdVLANBrief: vlanBriefFixture,
		},
	}
	sw := testSwitch(conn)

	ok, err := sw.ChangeVLAN(ctx, "GigabitEthernet1/0/1", 701)
	if err != nil {
		t.Fatalf("ChangeVLAN failed: %v", err)
	}
	if !ok {
		t.Error("Expected verification to confirm membership in VLAN 701")
	}

	batch := conn.configs[0]
	want := []string{"interface Gi1/0/1", cmdAccessMode, "switchport access vlan 701"}
	if len(batch) != len(want) {
		t.Fatalf("Unexpected config batch: %v", batch)
	}
	for i := range want {
		if batch[i] != want[i] {
			t.Errorf("Config line %d = %q, want %q", i, batch[i], want[i])
		}
	}
}

func TestChangeVLANMismatch(t *testing.T) {
	ctx := context.Background()
	// Table still shows the port in 701 after asking for 1
	conn := &fakeConn{
		connected: true,
		responses: map[string]string{
			cmdVLANBrief: vlanBriefFixture,
		},
	}
	sw := testSwitch(conn)

	ok, err := sw.ChangeVLAN(ctx, "Gi1/0/1", 1)
	if err != nil {
		t.Fatalf("ChangeVLAN failed: %v", err)
	}
	if ok {
		t.Error("Expected verification mismatch, not success")
	}
}

func TestChangeVLANArgumentValidation(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{connected: true}
	sw := testSwitch(conn)

	for _, vlan := range []int{0, -5, 4095} {
		ok, err := sw.ChangeVLAN(ctx, "Gi1/0/1", vlan)
		if ok {
			t.Errorf("ChangeVLAN(%d): expected false result", vlan)
		}
		if !types.IsArgumentError(err) {
			t.Errorf("ChangeVLAN(%d): expected ArgumentError, got %v", vlan, err)
		}
	}
	if len(conn.configs) != 0 {
		t.Errorf("Device saw config for invalid VLAN ids: %v", conn.configs)
	}
}

func TestMACAddressTableRunFailureSoft(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{connected: true, runErr: fmt.Errorf("session dropped")}
	sw := testSwitch(conn)

	entries, err := sw.MACAddressTable(ctx, "")
	if entries != nil || err != nil {
		t.Errorf("Expected nil, nil on transport failure, got %v, %v", entries, err)
	}
}
