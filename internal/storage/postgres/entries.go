package postgres

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

	var e models.Entry
	err := s.db.QueryRow(`
		SELECT id, day, content, created_at, updated_at
		FROM entries WHERE day = $1`, day).
		Scan(&e.ID, &e.Day, &e.Content, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{Day: day}, storage.ErrNotFound
		}
		return models.Entry{}, err
	}
	return e, nil
}

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

	_, err := s.db.Exec(`
		INSERT INTO entries (id, day, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (day) DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at`,
		entry.ID, entry.Day, entry.Content, entry.CreatedAt, now)
	return err
}

func (s *Store) CountEntries() (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotLoaded
	}

	var count int
	err := s.db.QueryRow(`SELECT count(*) FROM entries WHERE btrim(content, E' \t\r\n') <> ''`).Scan(&count)
	return count, err
}
