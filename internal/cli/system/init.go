package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/storage/diskv"
	"github.com/julianstephens/presently/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing local storage before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized presently storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

// reset removes local storage. PostgreSQL databases are never dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	var remove func(string) error
	switch ctx.Store.(type) {
	case *sqlite.Store:
		remove = os.Remove
	case *diskv.Store:
		remove = os.RemoveAll
	default:
		return fmt.Errorf("--force is only supported for local storage, not %s", ctx.Store.GetConfigPath())
	}

	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		// Close first to release file handles
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		if err := remove(path); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		ctx.Printf("Deleted existing storage at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	return nil
}
