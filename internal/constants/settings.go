package constants

const (
	// Settings keys
	SettingMilestoneStep   = "milestone_step"
	SettingMilestones      = "milestones"
	SettingPromptThreshold = "prompt_threshold"

	// Default Settings Values
	DefaultMilestoneStep   = 4
	DefaultPromptThreshold = 4
)

// DefaultMilestones are celebrated regardless of the step.
var DefaultMilestones = []int{1}
