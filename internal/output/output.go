// Package output provides styled terminal output for the fsd CLI.
//
// All commands use this package for consistent messaging. Functions use
// lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
	writer      io.Writer = os.Stdout
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// SetWriter redirects output, primarily for tests.
func SetWriter(w io.Writer) {
	writer = w
}

// Success prints a success message in green.
// Use this for completed operations.
func Success(msg string) {
	fmt.Fprintln(writer, successStyle.Render("✔ "+msg))
}

// Error prints an error message in red.
// Use this for failures that need user attention.
func Error(msg string) {
	fmt.Fprintln(writer, errorStyle.Render("✖ "+msg))
}

// Warn prints a warning message in yellow.
// Use this for recoverable problems the user should know about.
func Warn(msg string) {
	fmt.Fprintln(writer, warnStyle.Render("⚠ "+msg))
}

// Info prints an informational message in cyan.
// Use this for status updates or explanations.
func Info(msg string) {
	fmt.Fprintln(writer, infoStyle.Render("ℹ "+msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd myapp")
//	output.Step("npm install")
func Step(msg string) {
	fmt.Fprintln(writer, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(writer, stepStyle.Render("· "+msg))
	}
}
