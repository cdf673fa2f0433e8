package entries

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/utils"
)

var (
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ShowCmd prints one entry through a read-only session.
type ShowCmd struct {
	Date string `help:"Entry date (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	ctrl, _, err := ctx.OpenSession(context.Background(), date, true, nil)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	today := ctx.Today()
	ctx.Println(dateStyle.Render(utils.DisplayDate(date, today)))
	ctx.Println(headingStyle.Render(utils.Heading(date, today)))
	if content := ctrl.Content(); content != "" {
		ctx.Println(content)
	} else {
		ctx.Println(emptyStyle.Render("(no entry)"))
	}
	return nil
}
