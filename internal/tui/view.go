package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/errors"
	"github.com/julianstephens/presently/internal/utils"
)

func (m Model) View() string {
	switch m.state {
	case constants.StateExited:
		return ""
	case constants.StateConfirmExit:
		return docStyle.Render(m.form.View())
	case constants.StateMilestone:
		return m.viewMilestone()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		"",
		m.editor.View(),
		"",
		m.viewStatus(),
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewHeader() string {
	date := m.ctrl.Date()
	title := dateStyle.Render(utils.DisplayDate(date, m.today))
	if m.ctrl.ReadOnly() {
		title += statusStyle.Render("  (read-only)")
	} else if m.ctrl.IsDirty() {
		title += dirtyStyle.Render("  ● unsaved")
	}
	quote := quoteStyle
	if m.width > 0 {
		quote = quote.Width(max(m.width-4, 20))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		quote.Render("“"+m.quote+"”"),
		"",
		headingStyle.Render(utils.Heading(date, m.today)),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render(errors.Format(m.err))
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewMilestone() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		celebrateStyle.Render(m.form.View()),
	)
}
