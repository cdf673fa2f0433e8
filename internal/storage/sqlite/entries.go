package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/models"
	"github.com/julianstephens/presently/internal/storage"
)

func (s *Store) GetEntry(day string) (models.Entry, error) {
	if s.db == nil {
		return models.Entry{}, storage.ErrNotLoaded
	}

	row := s.db.QueryRow(`
		SELECT id, day, content, created_at, updated_at
		FROM entries WHERE day = ?`, day)

	var e models.Entry
	var createdAt, updatedAt string
	if err := row.Scan(&e.ID, &e.Day, &e.Content, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{Day: day}, storage.ErrNotFound
		}
		return models.Entry{}, err
	}

	var err error
	e.CreatedAt, err = time.Parse(constants.TimestampFormat, createdAt)
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	e.UpdatedAt, err = time.Parse(constants.TimestampFormat, updatedAt)
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return e, nil
}

// SaveEntry upserts the entry for its day in a single statement.
func (s *Store) SaveEntry(entry models.Entry) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if _, err := time.Parse(constants.DateFormat, entry.Day); err != nil {
		return fmt.Errorf("invalid entry day %q: %w", entry.Day, err)
	}

	now := time.Now().UTC()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO entries (id, day, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at`,
		entry.ID, entry.Day, entry.Content,
		entry.CreatedAt.Format(constants.TimestampFormat), entry.UpdatedAt.Format(constants.TimestampFormat))

	return err
}

func (s *Store) CountEntries() (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotLoaded
	}

	var count int
	err := s.db.QueryRow(`SELECT count(*) FROM entries WHERE trim(content, char(32, 9, 10, 13)) <> ''`).Scan(&count)
	return count, err
}
