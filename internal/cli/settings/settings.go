package settings

import (
	"fmt"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/storage"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	MilestoneStep   *int    `help:"Celebrate every Nth entry (0 disables)."`
	Milestones      *string `help:"Comma separated entry counts that are always celebrated, e.g. 1,10,100."`
	PromptThreshold *int    `help:"Offer writing prompts on blank entries when greater than 0."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		milestones := storage.FormatMilestones(settings.Milestones)
		if milestones == "" {
			milestones = "(none)"
		}
		ctx.Println("Current Settings:")
		ctx.Printf("  Milestone Step:    %d\n", settings.MilestoneStep)
		ctx.Printf("  Milestones:        %s\n", milestones)
		ctx.Printf("  Prompt Threshold:  %d\n", settings.PromptThreshold)
		return nil
	}

	updated := false
	if c.MilestoneStep != nil {
		settings.MilestoneStep = *c.MilestoneStep
		updated = true
	}
	if c.Milestones != nil {
		milestones, err := storage.ParseMilestones(*c.Milestones)
		if err != nil {
			return err
		}
		settings.Milestones = milestones
		updated = true
	}
	if c.PromptThreshold != nil {
		settings.PromptThreshold = *c.PromptThreshold
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
