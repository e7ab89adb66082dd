package snapdiff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// pagerThreshold is the line count above which Show opens a full-screen
// pager instead of printing inline.
const pagerThreshold = 30

// Show displays a rendered report, paging it through a viewport when it
// is too long for inline output.
func Show(r *Report, snapshotID string) error {
	rendered := Render(r, snapshotID)

	if strings.Count(rendered, "\n") <= pagerThreshold {
		fmt.Print(rendered)
		return nil
	}

	model := viewerModel{title: fmt.Sprintf("Changes since %s", snapshotID), content: rendered}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}

// viewerModel is the BubbleTea model for the diff pager.
type viewerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			m.viewport.LineUp(1)

		case "down", "j":
			m.viewport.LineDown(1)

		case "pgup", "b":
			m.viewport.ViewUp()

		case "pgdown", "f", "space":
			m.viewport.ViewDown()
		}

	case tea.WindowSizeMsg:
		verticalMargin := 3 // title + footer
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(footerStyle.Render(" [↑/↓] Scroll    [q] Quit "))
	return b.String()
}
