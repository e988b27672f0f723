// TUI progress bar for batch transcription runs, grounded on the bubbletea
// model/update/view shape used throughout go-sequence's tui package.
package progress

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd7ff"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

// TickMsg carries a fraction in [0, 1] into the TUI's update loop.
type TickMsg float64

// DoneMsg signals the batch has finished, with the total elapsed item count.
type DoneMsg struct{ Completed, Total int }

// Model is a bubbletea model rendering a single progress bar plus a label.
type Model struct {
	Label    string
	Total    int
	fraction float64
	done     bool
	Updates  <-chan float64
}

// NewModel returns a Model that listens on updates for fraction values and
// renders them against a bar labeled for the given batch.
func NewModel(label string, total int, updates <-chan float64) Model {
	return Model{Label: label, Total: total, Updates: updates}
}

func listenForUpdates(updates <-chan float64) tea.Cmd {
	return func() tea.Msg {
		frac, ok := <-updates
		if !ok {
			return DoneMsg{}
		}
		return TickMsg(frac)
	}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.Updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.fraction = float64(msg)
		return m, listenForUpdates(m.Updates)
	case DoneMsg:
		m.done = true
		m.fraction = 1
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	const width = 30
	filled := int(m.fraction * float64(width))
	if filled > width {
		filled = width
	}
	bar := barFilledStyle.Render(strings.Repeat("#", filled)) +
		barEmptyStyle.Render(strings.Repeat("-", width-filled))

	label := labelStyle.Render(fmt.Sprintf("%s  %3.0f%%", m.Label, m.fraction*100))
	return fmt.Sprintf("\n%s\n%s\n", bar, label)
}
