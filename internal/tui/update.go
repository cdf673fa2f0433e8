package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/logger"
	"github.com/julianstephens/presently/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.editor.SetWidth(max(msg.Width-4, 20))
		m.editor.SetHeight(max(msg.Height-10, 3))
		return m, nil

	case timerFiredMsg:
		msg.fire()
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)
	}

	switch m.state {
	case constants.StateConfirmExit:
		return m.updateConfirmExit(msg)
	case constants.StateMilestone:
		return m.updateMilestone(msg)
	case constants.StateExited:
		return m, tea.Quit
	}

	return m.updateEditing(msg)
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
			return m.requestExit()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Save):
			if m.ctrl.ReadOnly() {
				return m, nil
			}
			m.status = "Saving..."
			return m, m.save(false)
		case key.Matches(msg, m.keys.Prompt):
			if m.ctrl.Affordance() == constants.AffordancePrompt {
				m.editor.Placeholder = m.prompts.Next()
			}
			return m, nil
		case key.Matches(msg, m.keys.Share):
			link, err := m.ctrl.Share()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.status = link
			return m, nil
		}

		if m.ctrl.ReadOnly() {
			return m, nil
		}
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		if err := m.ctrl.Edit(after); err != nil {
			m.err = err
			if errors.Is(err, session.ErrSchedulerFailed) || errors.Is(err, session.ErrSessionExited) {
				m.state = constants.StateExited
				return m, tea.Quit
			}
		}
		m.status = ""
	}
	return m, cmd
}

func (m Model) requestExit() (tea.Model, tea.Cmd) {
	decision, err := m.ctrl.RequestExit()
	if err != nil {
		m.err = err
		return m, nil
	}

	switch decision {
	case session.PromptConfirm:
		m.state = constants.StateConfirmExit
		m.exitForm = &ExitFormModel{Choice: choiceSaveAndExit}
		m.form = newExitForm(m.exitForm)
		return m, m.form.Init()
	default:
		m.state = constants.StateExited
		return m, tea.Quit
	}
}

func (m Model) updateConfirmExit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m.resolveExit(choiceKeepEditing)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.resolveExit(m.exitForm.Choice)
	case huh.StateAborted:
		return m.resolveExit(choiceKeepEditing)
	}
	return m, cmd
}

// resolveExit applies the answer to the unsaved changes prompt.
func (m Model) resolveExit(choice exitChoice) (tea.Model, tea.Cmd) {
	switch choice {
	case choiceSaveAndExit:
		m.status = "Saving..."
		return m, m.save(true)
	case choiceDiscard:
		if err := m.ctrl.ConfirmDiscard(); err != nil {
			m.err = err
			return m, nil
		}
		m.state = constants.StateExited
		return m, tea.Quit
	default:
		if err := m.ctrl.CancelExit(); err != nil {
			m.err = err
		}
		m.form = nil
		m.state = constants.StateEditing
		return m, m.editor.Focus()
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Warn("Save from editor failed", "day", m.ctrl.Day(), "error", msg.err)
		m.err = msg.err
		m.status = ""
		if msg.exit && m.ctrl.State() == session.ConfirmPending {
			// Ask again so the user can retry or discard
			m.exitForm = &ExitFormModel{Choice: choiceSaveAndExit}
			m.form = newExitForm(m.exitForm)
			return m, m.form.Init()
		}
		return m, nil
	}

	m.err = nil
	m.status = fmt.Sprintf("✓ Saved %s", m.ctrl.Day())
	if msg.milestone != nil {
		m.milestone = msg.milestone
		m.state = constants.StateMilestone
		m.shareForm = &ShareFormModel{Share: true}
		m.form = newMilestoneForm(m.milestone, m.shareForm)
		return m, m.form.Init()
	}
	return m.leave()
}

// leave closes the editor once a save has gone through. Text typed while the
// write was in flight sends the user to the discard prompt instead.
func (m Model) leave() (tea.Model, tea.Cmd) {
	if m.ctrl.State() == session.Exited {
		m.state = constants.StateExited
		return m, tea.Quit
	}
	return m.requestExit()
}

func (m Model) updateMilestone(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m.dismissMilestone(false)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.dismissMilestone(m.shareForm.Share)
	case huh.StateAborted:
		return m.dismissMilestone(false)
	}
	return m, cmd
}

// dismissMilestone closes the celebration and leaves the editor. The share
// link, when asked for, is kept on the model for the caller to print.
func (m Model) dismissMilestone(share bool) (tea.Model, tea.Cmd) {
	m.milestone = nil
	m.form = nil
	if share {
		link, err := m.buildShareLink()
		if err != nil {
			logger.Warn("Could not build share link", "day", m.ctrl.Day(), "error", err)
			m.err = err
		} else {
			m.shareLink = link
			m.status = link
		}
	}
	return m.leave()
}
