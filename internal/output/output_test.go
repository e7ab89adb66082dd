package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetWriter(&buf)
	t.Cleanup(func() { SetWriter(os.Stdout) })
	fn()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string)
		want string
	}{
		{"success", Success, "done"},
		{"error", Error, "broke"},
		{"warn", Warn, "careful"},
		{"info", Info, "fyi"},
		{"step", Step, "npm install"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := capture(t, func() { tt.fn(tt.want) })
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestVerbose(t *testing.T) {
	SetVerbose(false)
	t.Cleanup(func() { SetVerbose(false) })

	out := capture(t, func() { Verbose("hidden") })
	if out != "" {
		t.Errorf("verbose output should be suppressed, got %q", out)
	}

	SetVerbose(true)
	out = capture(t, func() { Verbose("shown") })
	if !strings.Contains(out, "shown") {
		t.Errorf("verbose output missing, got %q", out)
	}
}
