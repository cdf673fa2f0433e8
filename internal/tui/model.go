package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/milestone"
	"github.com/julianstephens/presently/internal/prompts"
	"github.com/julianstephens/presently/internal/session"
	"github.com/julianstephens/presently/internal/sharelink"
	"github.com/julianstephens/presently/internal/utils"
)

type exitChoice int

const (
	choiceKeepEditing exitChoice = iota
	choiceSaveAndExit
	choiceDiscard
)

type ExitFormModel struct {
	Choice exitChoice
}

type ShareFormModel struct {
	Share bool
}

// savedMsg reports the result of a save started from the editor.
type savedMsg struct {
	milestone *milestone.Milestone
	err       error
	exit      bool
}

type Model struct {
	ctrl  *session.Controller
	ctx   context.Context
	today time.Time

	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	editor    textarea.Model
	prompts   *prompts.Cycle
	form      *huh.Form
	exitForm  *ExitFormModel
	shareForm *ShareFormModel
	milestone *milestone.Milestone
	quote     string
	shareLink string

	status string
	err    error
	width  int
	height int
}

// NewModel hosts ctrl in a full screen editor. today decides the wording of
// the heading and placeholder.
func NewModel(ctx context.Context, ctrl *session.Controller, today time.Time) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Placeholder = prompts.Default(utils.FormatDay(ctrl.Date()) == utils.FormatDay(today))
	ta.SetValue(ctrl.Content())
	if !ctrl.ReadOnly() {
		ta.Focus()
	}

	return Model{
		ctrl:    ctrl,
		ctx:     ctx,
		today:   today,
		state:   constants.StateEditing,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		editor:  ta,
		prompts: &prompts.Cycle{},
		quote:   prompts.Quote(ctrl.Date()),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Back, m.keys.Help}
	if !m.ctrl.ReadOnly() {
		keys = append([]key.Binding{m.keys.Save}, keys...)
	}
	switch m.ctrl.Affordance() {
	case constants.AffordanceShare:
		keys = append(keys, m.keys.Share)
	case constants.AffordancePrompt:
		keys = append(keys, m.keys.Prompt)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// State is the screen currently shown.
func (m Model) State() constants.SessionState {
	return m.state
}

// ShareLink is the link chosen from the milestone dialog, if any. It stays
// available after the session exits so the caller can print it.
func (m Model) ShareLink() string {
	return m.shareLink
}

// buildShareLink encodes the live buffer without going through the session,
// which may already have exited after Save & exit.
func (m Model) buildShareLink() (string, error) {
	return sharelink.Build(m.ctrl.Date(), m.ctrl.Content())
}

func (m Model) save(exit bool) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		var (
			ms  *milestone.Milestone
			err error
		)
		if exit {
			ms, err = ctrl.SaveAndExit(ctx)
		} else {
			ms, err = ctrl.Save(ctx)
		}
		return savedMsg{milestone: ms, err: err, exit: exit}
	}
}

func newExitForm(fm *ExitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[exitChoice]().
				Title("You have unsaved changes").
				Options(
					huh.NewOption("Save & exit", choiceSaveAndExit),
					huh.NewOption("Discard changes", choiceDiscard),
					huh.NewOption("Keep editing", choiceKeepEditing),
				).
				Value(&fm.Choice),
		),
	).WithTheme(huh.ThemeDracula())
}

func newMilestoneForm(ms *milestone.Milestone, fm *ShareFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("🎉 That's your %s entry!", ms.Ordinal)).
				Description("Share your achievement?").
				Affirmative("Share").
				Negative("Not now").
				Value(&fm.Share),
		),
	).WithTheme(huh.ThemeDracula())
}
