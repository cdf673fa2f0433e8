package storage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/models"
)

// DefaultSettings returns the settings written by Init.
func DefaultSettings() models.Settings {
	milestones := make([]int, len(constants.DefaultMilestones))
	copy(milestones, constants.DefaultMilestones)
	return models.Settings{
		MilestoneStep:   constants.DefaultMilestoneStep,
		Milestones:      milestones,
		PromptThreshold: constants.DefaultPromptThreshold,
	}
}

// FormatMilestones renders a milestone list as a comma separated string for key/value tables.
func FormatMilestones(milestones []int) string {
	parts := make([]string, len(milestones))
	for i, m := range milestones {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

// ParseMilestones parses the output of FormatMilestones. The result is sorted and deduplicated.
func ParseMilestones(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	seen := make(map[int]bool)
	var milestones []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid milestone %q: %w", part, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("invalid milestone %d: must be at least 1", n)
		}
		if !seen[n] {
			seen[n] = true
			milestones = append(milestones, n)
		}
	}
	sort.Ints(milestones)
	return milestones, nil
}

// ValidateSettings checks settings before they are persisted.
func ValidateSettings(s models.Settings) error {
	if s.MilestoneStep < 0 {
		return fmt.Errorf("milestone step must not be negative")
	}
	if s.PromptThreshold < 0 {
		return fmt.Errorf("prompt threshold must not be negative")
	}
	for _, m := range s.Milestones {
		if m < 1 {
			return fmt.Errorf("invalid milestone %d: must be at least 1", m)
		}
	}
	return nil
}

// SettingPair is one row of a key/value settings table.
type SettingPair struct {
	Key   string
	Value string
}

// SettingsPairs flattens settings into key/value rows for the SQL backends.
func SettingsPairs(s models.Settings) []SettingPair {
	return []SettingPair{
		{Key: constants.SettingMilestoneStep, Value: strconv.Itoa(s.MilestoneStep)},
		{Key: constants.SettingMilestones, Value: FormatMilestones(s.Milestones)},
		{Key: constants.SettingPromptThreshold, Value: strconv.Itoa(s.PromptThreshold)},
	}
}

// ApplySetting sets the field named by key from its stored string value.
// Unknown keys are ignored so older binaries can read newer tables.
func ApplySetting(s *models.Settings, key, value string) error {
	switch key {
	case constants.SettingMilestoneStep:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		s.MilestoneStep = n
	case constants.SettingMilestones:
		milestones, err := ParseMilestones(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		s.Milestones = milestones
	case constants.SettingPromptThreshold:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		s.PromptThreshold = n
	}
	return nil
}
