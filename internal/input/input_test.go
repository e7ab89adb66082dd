package input

import (
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"explicit yes", "y\n", false, true},
		{"full yes", "yes\n", false, true},
		{"uppercase yes", "YES\n", false, true},
		{"explicit no", "n\n", true, false},
		{"empty uses default no", "\n", false, false},
		{"empty uses default yes", "\n", true, true},
		{"garbage is no", "maybe\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetReader(strings.NewReader(tt.input))
			if got := Confirm("Proceed?", tt.defaultYes); got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	SetReader(strings.NewReader("my-answer\n"))
	if got := Prompt("Name", "fallback"); got != "my-answer" {
		t.Errorf("Prompt = %q, want my-answer", got)
	}

	SetReader(strings.NewReader("\n"))
	if got := Prompt("Name", "fallback"); got != "fallback" {
		t.Errorf("Prompt = %q, want the default", got)
	}

	SetReader(strings.NewReader("  spaced  \n"))
	if got := Prompt("Name", ""); got != "spaced" {
		t.Errorf("Prompt = %q, want trimmed input", got)
	}
}
