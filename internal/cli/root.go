package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/milestone"
	"github.com/julianstephens/presently/internal/models"
	"github.com/julianstephens/presently/internal/session"
	"github.com/julianstephens/presently/internal/storage"
	"github.com/julianstephens/presently/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store     storage.Provider
	ConfigDir string

	Out io.Writer
	In  io.Reader
	Now func() time.Time
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Stdin returns the command's input stream.
func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Today is the current local date at midnight.
func (c *Context) Today() time.Time {
	if c.Now == nil {
		return utils.Today()
	}
	return utils.Midnight(c.Now())
}

// ParseDate resolves a --date flag value against Today.
func (c *Context) ParseDate(s string) (time.Time, error) {
	return utils.ParseDay(s, c.Today())
}

// LockDir is where per-day edit locks live.
func (c *Context) LockDir() string {
	return filepath.Join(c.ConfigDir, constants.LockDirName)
}

// OpenSession starts an editing session configured from the stored settings.
// A nil scheduler uses the wall clock.
func (c *Context) OpenSession(ctx context.Context, date time.Time, readOnly bool, sched session.Scheduler) (*session.Controller, models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	ctrl, err := session.Begin(ctx, c.Store, date, session.Options{
		ReadOnly:        readOnly,
		PromptThreshold: settings.PromptThreshold,
		Policy:          milestone.PolicyFromSettings(settings),
		Scheduler:       sched,
	})
	if err != nil {
		return nil, models.Settings{}, err
	}
	return ctrl, settings, nil
}
