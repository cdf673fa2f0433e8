package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/presently/internal/constants"
)

// Today returns the current local date at midnight.
func Today() time.Time {
	return Midnight(time.Now())
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses a YYYY-MM-DD string. "today" and "yesterday" are accepted as shortcuts.
func ParseDay(s string, today time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return Midnight(today), nil
	case "yesterday":
		return Midnight(today).AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FormatDay renders the storage key for a date.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DisplayDate renders a date relative to today: "Today", "Yesterday" or "March 22, 2019".
func DisplayDate(date, today time.Time) string {
	d, t := Midnight(date), Midnight(today)
	switch {
	case sameDay(d, t):
		return "Today"
	case sameDay(d, t.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return date.Format(constants.ShareDateLayout)
	}
}

// Heading is the editor title for a date.
func Heading(date, today time.Time) string {
	if sameDay(Midnight(date), Midnight(today)) {
		return "I am grateful for"
	}
	return "I was grateful for"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
