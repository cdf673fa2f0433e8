package storage

import "github.com/julianstephens/presently/internal/models"

// EntryStore is the persistence contract the editor session relies on.
//
// GetEntry returns ErrNotFound (wrapped or bare) when no entry exists for the
// day. SaveEntry upserts by day and must accept empty content, which is how an
// entry is cleared. CountEntries counts entries whose content is not blank.
type EntryStore interface {
	GetEntry(day string) (models.Entry, error)
	SaveEntry(models.Entry) error
	CountEntries() (int, error)
}

// Provider is a complete storage backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Entries
	EntryStore

	// Utils
	GetConfigPath() string
}
