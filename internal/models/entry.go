package models

import (
	"strings"
	"time"
)

// Entry is a single day's journal text. Day is the natural key.
type Entry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBlank reports whether the entry holds no text worth counting.
func (e Entry) IsBlank() bool {
	return strings.TrimSpace(e.Content) == ""
}
