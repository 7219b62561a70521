package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hourlog/hourlog/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render(m.day.Format("Mon 2006-01-02"))
	if count := len(m.notes); count > 0 {
		header += dimStyle.Render(fmt.Sprintf("  %d notes", count))
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		m.viewNotes(),
		"",
		m.help.View(m.keys),
	))
}

func (m Model) viewNotes() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("could not read notes: %v", m.err))
	}
	if len(m.notes) == 0 {
		return dimStyle.Render("No notes recorded.")
	}

	lines := make([]string, 0, len(m.notes))
	end := m.offset + m.visibleLines()
	if end > len(m.notes) {
		end = len(m.notes)
	}
	for _, n := range m.notes[m.offset:end] {
		stamp := timeStyle.Render("[" + n.Time.In(m.loc).Format(constants.TimeFormat) + "]")
		lines = append(lines, stamp+" "+n.Text)
	}
	if end < len(m.notes) {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("… %d more", len(m.notes)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
