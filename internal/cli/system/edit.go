package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/lock"
	"github.com/julianstephens/presently/internal/logger"
	"github.com/julianstephens/presently/internal/tui"
	"github.com/julianstephens/presently/internal/utils"
)

// EditCmd opens the full screen editor for one day.
type EditCmd struct {
	Date     string `help:"Entry date (YYYY-MM-DD, today or yesterday)." default:"today"`
	ReadOnly bool   `help:"View the entry without editing it."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	if !c.ReadOnly {
		l, err := lock.Acquire(ctx.LockDir(), utils.FormatDay(date))
		if err != nil {
			return err
		}
		defer l.Release()
	}

	sched := tui.NewScheduler()
	bg := context.Background()
	ctrl, _, err := ctx.OpenSession(bg, date, c.ReadOnly, sched)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	p := tea.NewProgram(tui.NewModel(bg, ctrl, ctx.Today()), tea.WithAltScreen())
	sched.Bind(p.Send)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	logger.Debug("Editor closed", "day", ctrl.Day(), "state", ctrl.State())

	if m, ok := final.(tui.Model); ok && m.ShareLink() != "" {
		ctx.Println(m.ShareLink())
	}
	return nil
}
