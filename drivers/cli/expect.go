package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	expect "github.com/google/goexpect"
	"golang.org/x/crypto/ssh"

	"github.com/nocware/nocdev/vendors/common"
)

// Prompt patterns for IOS-style CLI sessions. The trailing prompt character
// encodes the privilege level: ">" is user EXEC, "#" is privileged EXEC.
var (
	execPrompt     = regexp.MustCompile(`(?m)[\w.\-]+[#>]\s*$`)
	privPrompt     = regexp.MustCompile(`(?m)[\w.\-]+#\s*$`)
	configPrompt   = regexp.MustCompile(`(?m)[\w.\-]+\(config[\w\-]*\)#\s*$`)
	passwordPrompt = regexp.MustCompile(`(?i)password:?\s*$`)
)

// pagerOffCommand disables output pagination so table dumps arrive in one
// read instead of a --More-- dialogue the parsers would trip over
const pagerOffCommand = "terminal length 0"

// probeTimeout bounds the liveness round-trip so IsConnected stays cheap
const probeTimeout = 5 * time.Second

// ExpectSession drives one interactive CLI session over an SSH channel.
// All exchanges are strictly sequential: send a command, block until the
// prompt reappears, only then send the next one.
type ExpectSession struct {
	expecter   *expect.GExpect
	timeout    time.Duration
	privileged bool
}

// ExpectSessionConfig holds configuration for creating an expect session
type ExpectSessionConfig struct {
	SSHClient *ssh.Client
	Timeout   time.Duration
}

// NewExpectSession spawns an interactive session, waits for the initial
// prompt and records the privilege level the device dropped us into.
func NewExpectSession(cfg ExpectSessionConfig) (*ExpectSession, error) {
	if cfg.SSHClient == nil {
		return nil, fmt.Errorf("SSH client is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	exp, _, err := expect.SpawnSSH(cfg.SSHClient, cfg.Timeout,
		expect.Verbose(false),
		expect.CheckDuration(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn SSH expect session: %w", err)
	}

	out, _, err := exp.Expect(execPrompt, cfg.Timeout)
	if err != nil {
		exp.Close()
		return nil, fmt.Errorf("failed to detect initial prompt: %w", err)
	}

	s := &ExpectSession{
		expecter:   exp,
		timeout:    cfg.Timeout,
		privileged: strings.HasSuffix(strings.TrimSpace(common.StripANSI(out)), "#"),
	}

	// Non-fatal: a device that rejects it will simply page long output
	_, _ = s.Execute(pagerOffCommand)

	return s, nil
}

// Privileged reports whether the session is in privileged EXEC mode
func (s *ExpectSession) Privileged() bool {
	return s.privileged
}

// Execute sends a single exec-mode command and returns its cleaned output
func (s *ExpectSession) Execute(command string) (string, error) {
	if s.expecter == nil {
		return "", fmt.Errorf("expect session not initialized")
	}

	if err := s.expecter.Send(command + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	output, _, err := s.expecter.Expect(execPrompt, s.timeout)
	if err != nil {
		return output, fmt.Errorf("timeout waiting for prompt after command %q: %w", command, err)
	}

	return cleanOutput(output, command), nil
}

// ExecuteConfig enters configuration mode, runs the given lines in order and
// returns to exec mode. Disconnecting with a sequence half sent leaves the
// device in config mode, so errors are returned immediately and the caller
// is expected to verify device state afterwards rather than retry blindly.
func (s *ExpectSession) ExecuteConfig(lines []string) error {
	if s.expecter == nil {
		return fmt.Errorf("expect session not initialized")
	}

	if err := s.expecter.Send("configure terminal\n"); err != nil {
		return fmt.Errorf("failed to enter config mode: %w", err)
	}
	if _, _, err := s.expecter.Expect(configPrompt, s.timeout); err != nil {
		return fmt.Errorf("no config prompt: %w", err)
	}

	for _, line := range lines {
		if err := s.expecter.Send(line + "\n"); err != nil {
			return fmt.Errorf("failed to send config line %q: %w", line, err)
		}
		if _, _, err := s.expecter.Expect(configPrompt, s.timeout); err != nil {
			return fmt.Errorf("no prompt after config line %q: %w", line, err)
		}
	}

	if err := s.expecter.Send("end\n"); err != nil {
		return fmt.Errorf("failed to leave config mode: %w", err)
	}
	if _, _, err := s.expecter.Expect(privPrompt, s.timeout); err != nil {
		return fmt.Errorf("no exec prompt after config: %w", err)
	}

	return nil
}

// Enable escalates a user EXEC session to privileged EXEC
func (s *ExpectSession) Enable(secret string) error {
	if s.expecter == nil {
		return fmt.Errorf("expect session not initialized")
	}
	if s.privileged {
		return nil
	}

	if err := s.expecter.Send("enable\n"); err != nil {
		return fmt.Errorf("failed to send enable: %w", err)
	}
	if _, _, err := s.expecter.Expect(passwordPrompt, s.timeout); err != nil {
		return fmt.Errorf("no enable password prompt: %w", err)
	}
	if err := s.expecter.Send(secret + "\n"); err != nil {
		return fmt.Errorf("failed to send enable secret: %w", err)
	}
	if _, _, err := s.expecter.Expect(privPrompt, s.timeout); err != nil {
		return fmt.Errorf("privilege escalation rejected: %w", err)
	}

	s.privileged = true
	return nil
}

// Probe performs an active liveness round-trip: an empty line must echo a
// prompt back within probeTimeout. A dead peer fails the round-trip even
// when the local handle still looks healthy.
func (s *ExpectSession) Probe() bool {
	if s.expecter == nil {
		return false
	}
	if err := s.expecter.Send("\n"); err != nil {
		return false
	}
	_, _, err := s.expecter.Expect(execPrompt, probeTimeout)
	return err == nil
}

// Close closes the expect session
func (s *ExpectSession) Close() error {
	if s.expecter != nil {
		return s.expecter.Close()
	}
	return nil
}

// cleanOutput removes ANSI noise, the command echo and trailing prompt lines
func cleanOutput(output, command string) string {
	output = common.StripANSI(output)

	lines := strings.Split(output, "\n")
	var cleaned []string

	for i, line := range lines {
		if i == 0 && strings.Contains(line, command) {
			continue
		}
		if execPrompt.MatchString(strings.TrimSpace(line)) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
