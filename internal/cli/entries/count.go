package entries

import (
	"fmt"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/milestone"
)

// CountCmd reports how many entries have been written and the next milestone.
type CountCmd struct{}

func (c *CountCmd) Run(ctx *cli.Context) error {
	count, err := ctx.Store.CountEntries()
	if err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	noun := "entries"
	if count == 1 {
		noun = "entry"
	}
	ctx.Printf("%d %s written\n", count, noun)

	if next, ok := milestone.NewEvaluator(milestone.PolicyFromSettings(settings)).Next(count); ok {
		ctx.Printf("Next milestone: your %s entry (%d to go)\n", milestone.Ordinal(next), next-count)
	}
	return nil
}
