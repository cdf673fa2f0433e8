// Package diskv stores one JSON document per day in a plain directory tree.
package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/logger"
	"github.com/julianstephens/presently/internal/models"
	"github.com/julianstephens/presently/internal/storage"
)

const (
	entryPrefix = "entries/"
	settingsKey = "meta/settings"
)

type Store struct {
	basePath string
	d        *diskv.Diskv
}

// New accepts either a bare directory or a diskv:// location.
func New(location string) *Store {
	return &Store{basePath: strings.TrimPrefix(location, constants.DiskvPrefix)}
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:          s.basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
		// Writes go through a temp file and rename
		TempDir: filepath.Join(s.basePath, ".tmp"),
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.basePath, 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()

	if !s.d.Has(settingsKey) {
		if err := s.SaveSettings(storage.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if _, err := os.Stat(filepath.Join(s.basePath, "meta", "settings")); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", storage.ErrNotInitialized, s.basePath)
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func (s *Store) GetSettings() (models.Settings, error) {
	if s.d == nil {
		return models.Settings{}, storage.ErrNotLoaded
	}
	val, err := s.d.Read(settingsKey)
	if err != nil {
		return models.Settings{}, fmt.Errorf("settings not found: %w", err)
	}
	var settings models.Settings
	if err := json.Unmarshal(val, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if settings.Milestones == nil {
		settings.Milestones = []int{}
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if err := storage.ValidateSettings(settings); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.d.Write(settingsKey, data)
}

func (s *Store) GetEntry(day string) (models.Entry, error) {
	if s.d == nil {
		return models.Entry{}, storage.ErrNotLoaded
	}
	key := entryPrefix + day
	if !s.d.Has(key) {
		return models.Entry{Day: day}, storage.ErrNotFound
	}
	return s.read(key)
}

func (s *Store) read(key string) (models.Entry, error) {
	val, err := s.d.Read(key)
	if err != nil {
		return models.Entry{}, err
	}
	var e models.Entry
	if err := json.Unmarshal(val, &e); err != nil {
		return models.Entry{}, fmt.Errorf("%s: %w", key, err)
	}
	return e, nil
}

func (s *Store) SaveEntry(entry models.Entry) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if _, err := time.Parse(constants.DateFormat, entry.Day); err != nil {
		return fmt.Errorf("invalid entry day %q: %w", entry.Day, err)
	}

	now := time.Now().UTC()
	existing, err := s.GetEntry(entry.Day)
	switch {
	case err == nil:
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	case errors.Is(err, storage.ErrNotFound):
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
	default:
		return err
	}
	entry.UpdatedAt = now

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.d.Write(entryPrefix+entry.Day, data)
}

func (s *Store) CountEntries() (int, error) {
	if s.d == nil {
		return 0, storage.ErrNotLoaded
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	count := 0
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, entryPrefix) {
			continue
		}
		e, err := s.read(key)
		if err != nil {
			logger.Warn("Skipping unreadable entry", "key", key, "error", err)
			continue
		}
		if !e.IsBlank() {
			count++
		}
	}
	return count, nil
}

func (s *Store) GetConfigPath() string {
	return s.basePath
}

func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), "/")
}
