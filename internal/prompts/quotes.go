package prompts

import "time"

var quotes = []string{
	"Gratitude turns what we have into enough.",
	"Joy is the simplest form of gratitude.",
	"Enjoy the little things, for one day you may look back and realize they were the big things.",
	"The more grateful I am, the more beauty I see.",
	"Gratitude is the healthiest of all human emotions.",
	"When I started counting my blessings, my whole life turned around.",
	"Wear gratitude like a cloak, and it will feed every corner of your life.",
	"Be thankful for what you have; you'll end up having more.",
	"Acknowledging the good that you already have in your life is the foundation for all abundance.",
	"Gratitude makes sense of our past, brings peace for today, and creates a vision for tomorrow.",
}

// Quote is the inspiration shown above the editor. The same day always gets
// the same quote.
func Quote(day time.Time) string {
	y, m, d := day.Date()
	n := y*372 + int(m)*31 + d
	return quotes[n%len(quotes)]
}

// Quotes is the number of distinct quotes.
func Quotes() int {
	return len(quotes)
}
