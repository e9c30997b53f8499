package cli

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/nocware/nocdev/types"
)

// Driver owns the single logical CLI connection to one device: SSH client,
// expect session and privilege state. It implements types.CLIConn.
//
// A Driver is not safe for concurrent use. The underlying session is a
// single-owner stateful resource; callers needing parallelism must use one
// Driver per goroutine.
type Driver struct {
	config  *types.DeviceConfig
	log     types.Logger
	client  *ssh.Client
	session *ExpectSession
}

// NewDriver creates a new CLI driver. It does not connect.
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
		config.Port = 22
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
		log:    log,
	}, nil
}

// Connect establishes the SSH session and detects the privilege level the
// device dropped the login into. Failures are fatal to the caller and are
// never retried here.
func (d *Driver) Connect(ctx context.Context) error {
	if d.session != nil {
		return nil
	}

	// Some devices want keyboard-interactive instead of plain password auth
	keyboardInteractive := ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = d.config.Password
		}
		return answers, nil
	})

	sshConfig := &ssh.ClientConfig{
		User: d.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.config.Password),
			keyboardInteractive,
		},
		Timeout:         d.config.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // NOC management networks pin no host keys
	}

	target := fmt.Sprintf("%s:%d", d.config.Address, d.config.Port)

	client, err := ssh.Dial("tcp", target, sshConfig)
	if err != nil {
		return &types.ConnectionError{Device: d.config.Address, Err: err}
	}

	session, err := NewExpectSession(ExpectSessionConfig{
		SSHClient: client,
		Timeout:   d.config.Timeout,
	})
	if err != nil {
		client.Close()
		return &types.ConnectionError{Device: d.config.Address, Err: err}
	}

	d.client = client
	d.session = session
	d.log.Infof("connected to %s (privileged=%v)", d.config.Address, session.Privileged())

	return nil
}

// Enable escalates to privileged EXEC. No-op when not connected or when the
// login already landed in privileged mode.
func (d *Driver) Enable(ctx context.Context, secret string) error {
	if d.session == nil || d.session.Privileged() {
		return nil
	}

	if err := d.session.Enable(secret); err != nil {
		return &types.ConnectionError{Device: d.config.Address, Err: err}
	}
	d.log.Infof("privilege escalation on %s succeeded", d.config.Address)

	return nil
}

// Disconnect releases the transport unconditionally; safe to call repeatedly
func (d *Driver) Disconnect() error {
	if d.session != nil {
		_ = d.session.Close()
		d.session = nil
	}
	if d.client != nil {
		err := d.client.Close()
		d.client = nil
		d.log.Infof("disconnected from %s", d.config.Address)
		return err
	}
	return nil
}

// IsConnected reports liveness with an active prompt round-trip. The remote
// session can die asynchronously, so a non-nil handle proves nothing.
func (d *Driver) IsConnected() bool {
	if d.session == nil {
		return false
	}
	if !d.session.Probe() {
		d.log.Warnf("liveness probe to %s failed", d.config.Address)
		return false
	}
	return true
}

// Run executes a single exec-mode command
func (d *Driver) Run(ctx context.Context, command string) (string, error) {
	if d.session == nil {
		return "", fmt.Errorf("not connected to device")
	}

	d.log.Debugf("run %q on %s", command, d.config.Address)
	output, err := d.session.Execute(command)
	if err != nil {
		return output, fmt.Errorf("command failed: %w", err)
	}

	return output, nil
}

// RunConfig executes a configuration-mode command sequence. Requires a
// privileged session; configuration from user EXEC is rejected up front
// instead of half-applying.
func (d *Driver) RunConfig(ctx context.Context, lines []string) error {
	if d.session == nil {
		return fmt.Errorf("not connected to device")
	}
	if !d.session.Privileged() {
		return fmt.Errorf("config commands require enable mode")
	}

	d.log.Debugf("run config %v on %s", lines, d.config.Address)
	if err := d.session.ExecuteConfig(lines); err != nil {
		return fmt.Errorf("config sequence failed: %w", err)
	}

	return nil
}

// Ensure Driver implements CLIConn
var _ types.CLIConn = (*Driver)(nil)
