package cli

import "testing"

func TestPromptPatterns(t *testing.T) {
	tests := []struct {
		name string
		line string
		exec bool
		priv bool
	}{
		{"user exec", "sw-lab-1>", true, false},
		{"privileged exec", "sw-lab-1#", true, true},
		{"hostname with dots", "sw-lab-1.example.net#", true, true},
		{"trailing space", "sw-lab-1# ", true, true},
		{"table row", " 601    000b.7866.5240    DYNAMIC     Gi1/0/48", false, false},
		{"banner", "Press RETURN to get started.", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := execPrompt.MatchString(tt.line); got != tt.exec {
				t.Errorf("execPrompt.MatchString(%q) = %v, want %v", tt.line, got, tt.exec)
			}
			if got := privPrompt.MatchString(tt.line); got != tt.priv {
				t.Errorf("privPrompt.MatchString(%q) = %v, want %v", tt.line, got, tt.priv)
			}
		})
	}
}

func TestConfigPromptPattern(t *testing.T) {
	for _, line := range []string{"sw-lab-1(config)#", "sw-lab-1(config-if)#"} {
		if !configPrompt.MatchString(line) {
			t.Errorf("configPrompt should match %q", line)
		}
	}
	if configPrompt.MatchString("sw-lab-1#") {
		t.Error("configPrompt must not match a plain exec prompt")
	}
}

func TestCleanOutput(t *testing.T) {
	raw := "show vlan brief\r\nVLAN Name                             Status    Ports\r\n701  NET-701                          active    Gi1/0/1\r\nsw-lab-1#"
	got := cleanOutput(raw, "show vlan brief")

	if want := "VLAN Name                             Status    Ports\r\n701  NET-701                          active    Gi1/0/1"; got != want {
		t.Errorf("cleanOutput mismatch:\ngot  %q\nwant %q", got, want)
	}
}
