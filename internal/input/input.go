// Package input provides interactive terminal input for the fsd CLI.
//
// The migration core never prompts directly; commands build confirmation
// callbacks from these helpers and hand them to the migrator.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	reader io.Reader = os.Stdin
)

// SetReader redirects input, primarily for tests.
func SetReader(r io.Reader) {
	reader = r
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
func Prompt(message, defaultValue string) string {
	r := bufio.NewReader(reader)

	if defaultValue != "" {
		fmt.Print(promptStyle.Render(message) + " " +
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue)) + ": ")
	} else {
		fmt.Print(promptStyle.Render(message) + ": ")
	}

	line, err := r.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}

	return line
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true. Otherwise, returns false.
//
// Example:
//
//	if input.Confirm("Proceed with migration?", false) {
//	    // User said yes
//	}
//	// Displays: Proceed with migration? [y/N]: _
func Confirm(message string, defaultYes bool) bool {
	r := bufio.NewReader(reader)

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Print(promptStyle.Render(message) + " " +
		hintStyle.Render(hint) + ": ")

	line, err := r.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return defaultYes
	}

	return line == "y" || line == "yes"
}
