package models

// Settings represents application-wide settings
type Settings struct {
	MilestoneStep   int   `json:"milestone_step"`   // every Nth saved entry is celebrated, 0 disables
	Milestones      []int `json:"milestones"`       // explicit counts that are always celebrated
	PromptThreshold int   `json:"prompt_threshold"` // blank entries offer a writing prompt when > 0
}
