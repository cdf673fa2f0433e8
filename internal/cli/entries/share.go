package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/session"
	"github.com/julianstephens/presently/internal/utils"
)

// ShareCmd prints the presently://sharing link for an entry.
type ShareCmd struct {
	Date string `help:"Entry date (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *ShareCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	ctrl, _, err := ctx.OpenSession(context.Background(), date, true, nil)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	link, err := ctrl.Share()
	if errors.Is(err, session.ErrEmptyContent) {
		return fmt.Errorf("no entry for %s to share", utils.DisplayDate(date, ctx.Today()))
	}
	if err != nil {
		return err
	}
	ctx.Println(link)
	return nil
}
