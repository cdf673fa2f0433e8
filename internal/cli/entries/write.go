package entries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/lock"
	"github.com/julianstephens/presently/internal/session"
	"github.com/julianstephens/presently/internal/utils"
)

// WriteCmd runs a full editing session without the TUI.
type WriteCmd struct {
	Date    string  `help:"Entry date (YYYY-MM-DD, today or yesterday)." default:"today"`
	Content *string `help:"Entry text. Read from stdin when omitted."`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	content, err := c.readContent(ctx)
	if err != nil {
		return err
	}

	l, err := lock.Acquire(ctx.LockDir(), utils.FormatDay(date))
	if err != nil {
		return err
	}
	defer l.Release()

	// Logical clock: the edit settles deterministically instead of waiting out the debounce
	clock := session.NewManualClock(ctx.Today())
	bg := context.Background()
	ctrl, _, err := ctx.OpenSession(bg, date, false, clock)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if err := ctrl.Edit(content); err != nil {
		return err
	}
	clock.Advance(constants.DebounceWindow)

	display := utils.DisplayDate(date, ctx.Today())
	if !ctrl.IsDirty() {
		if err := finishSession(ctrl); err != nil {
			return err
		}
		ctx.Printf("No changes to the entry for %s.\n", display)
		return nil
	}

	m, err := ctrl.Save(bg)
	if err != nil {
		return err
	}
	if content == "" {
		ctx.Printf("✓ Cleared the entry for %s\n", display)
	} else {
		ctx.Printf("✓ Saved the entry for %s\n", display)
	}
	if m != nil {
		ctx.Printf("🎉 That's your %s entry!\n", m.Ordinal)
	}

	return finishSession(ctrl)
}

// finishSession exits a settled session. Anything other than an immediate exit
// means changes would be left behind.
func finishSession(ctrl *session.Controller) error {
	decision, err := ctrl.RequestExit()
	if err != nil {
		return fmt.Errorf("session did not exit cleanly: %w", err)
	}
	if decision != session.ExitNow {
		return fmt.Errorf("session did not exit cleanly: %s", decision)
	}
	return nil
}

func (c *WriteCmd) readContent(ctx *cli.Context) (string, error) {
	if c.Content != nil {
		return *c.Content, nil
	}

	in := ctx.Stdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no content: pass --content or pipe text on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
