// Package prompts supplies the placeholder questions shown in an empty editor.
package prompts

var list = []string{
	"What made you smile?",
	"Who helped you out?",
	"What is something small you enjoyed?",
	"What went better than expected?",
	"What is a place you love being in?",
	"Which conversation stayed with you?",
	"What did you learn?",
	"What is something you are looking forward to?",
}

// Default is the placeholder shown before any prompt is requested.
func Default(isToday bool) string {
	if isToday {
		return "What are you grateful for?"
	}
	return "What were you grateful for?"
}

// Cycle walks the prompt list in order, wrapping at the end.
type Cycle struct {
	next int
}

// Next returns the following prompt. It never returns the default placeholder.
func (c *Cycle) Next() string {
	p := list[c.next%len(list)]
	c.next = (c.next + 1) % len(list)
	return p
}

// Len is the number of distinct prompts.
func Len() int {
	return len(list)
}
