package snapdiff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

// Render formats a report for terminal display, one file per line with a
// git-style status prefix.
func Render(r *Report, snapshotID string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Changes since %s", snapshotID)) + "\n\n")

	if r.Empty() {
		b.WriteString("No changes.\n")
		return b.String()
	}

	for _, path := range r.Modified {
		b.WriteString(modifiedStyle.Render("M "+path) + "\n")
	}
	for _, path := range r.Added {
		b.WriteString(addedStyle.Render("A "+path) + "\n")
	}
	for _, path := range r.Removed {
		b.WriteString(removedStyle.Render("D "+path) + "\n")
	}

	b.WriteString(fmt.Sprintf("\n%d modified, %d added, %d removed\n",
		len(r.Modified), len(r.Added), len(r.Removed)))

	return b.String()
}
