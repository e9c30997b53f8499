package cisco

import "testing"

func TestShortPortName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fast ethernet", "FastEthernet0/14", "Fa0/14"},
		{"gigabit ethernet", "GigabitEthernet1/0/14", "Gi1/0/14"},
		{"ten gigabit ethernet", "TenGigabitEthernet1/1/1", "Ten1/1/1"},
		{"lowercase input", "gigabitethernet1/0/2", "Gi1/0/2"},
		{"already short", "Gi1/0/14", "Gi1/0/14"},
		{"unknown prefix passthrough", "Port-channel1", "Port-channel1"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortPortName(tt.in); got != tt.want {
				t.Errorf("shortPortName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShortPortNameIdempotent(t *testing.T) {
	once := shortPortName("TenGigabitEthernet1/1/4")
	twice := shortPortName(once)
	if once != twice {
		t.Errorf("Normalization not idempotent: %q then %q", once, twice)
	}
}

func TestIsPhysicalPort(t *testing.T) {
	tests := []struct {
		port string
		want bool
	}{
		{"Gi1/0/14", true},
		{"GigabitEthernet1/0/14", true},
		{"Fa0/1", true},
		{"Ten1/1/1", true},
		{"CPU", false},
		{"Vl601", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isPhysicalPort(tt.port); got != tt.want {
			t.Errorf("isPhysicalPort(%q) = %v, want %v", tt.port, got, tt.want)
		}
	}
}
