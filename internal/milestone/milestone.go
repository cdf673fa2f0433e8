// Package milestone decides when a saved entry count deserves a celebration.
package milestone

import (
	"slices"
	"strconv"

	"github.com/julianstephens/presently/internal/models"
)

// Policy is the data that drives evaluation. A zero Step disables the periodic rule.
type Policy struct {
	Step       int
	Thresholds []int
}

// PolicyFromSettings builds a Policy from persisted settings.
func PolicyFromSettings(s models.Settings) Policy {
	return Policy{Step: s.MilestoneStep, Thresholds: slices.Clone(s.Milestones)}
}

// Milestone is an achieved entry count.
type Milestone struct {
	Count   int
	Ordinal string
}

// Evaluator applies a Policy to post-save entry counts.
type Evaluator struct {
	policy Policy
}

func NewEvaluator(p Policy) *Evaluator {
	return &Evaluator{policy: p}
}

// Evaluate reports whether count is a milestone. Non-positive counts never are.
func (e *Evaluator) Evaluate(count int) (Milestone, bool) {
	if count <= 0 {
		return Milestone{}, false
	}
	hit := slices.Contains(e.policy.Thresholds, count) ||
		(e.policy.Step > 0 && count%e.policy.Step == 0)
	if !hit {
		return Milestone{}, false
	}
	return Milestone{Count: count, Ordinal: Ordinal(count)}, true
}

// Next returns the first milestone count above count, if the policy has one.
func (e *Evaluator) Next(count int) (int, bool) {
	if count < 0 {
		count = 0
	}
	next, ok := 0, false
	for _, t := range e.policy.Thresholds {
		if t > count && (!ok || t < next) {
			next, ok = t, true
		}
	}
	if e.policy.Step > 0 {
		step := (count/e.policy.Step + 1) * e.policy.Step
		if !ok || step < next {
			next, ok = step, true
		}
	}
	return next, ok
}

// Ordinal renders n as an English ordinal: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
