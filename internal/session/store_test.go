package session

import (
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/presently/internal/models"
	"github.com/julianstephens/presently/internal/storage"
)

// memStore is an in-memory storage.EntryStore.
type memStore struct {
	mu      sync.Mutex
	entries map[string]models.Entry
	saves   int

	getErr   error
	saveErr  error
	countErr error

	// When set, SaveEntry signals started and then waits for release.
	started chan struct{}
	release chan struct{}
}

var _ storage.EntryStore = (*memStore)(nil)

func newMemStore(entries ...models.Entry) *memStore {
	s := &memStore{entries: make(map[string]models.Entry)}
	for _, e := range entries {
		s.entries[e.Day] = e
	}
	return s
}

func (s *memStore) GetEntry(day string) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return models.Entry{}, s.getErr
	}
	e, ok := s.entries[day]
	if !ok {
		return models.Entry{Day: day}, storage.ErrNotFound
	}
	return e, nil
}

func (s *memStore) SaveEntry(e models.Entry) error {
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries[e.Day] = e
	return nil
}

func (s *memStore) CountEntries() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	n := 0
	for _, e := range s.entries {
		if strings.TrimSpace(e.Content) != "" {
			n++
		}
	}
	return n, nil
}

func (s *memStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *memStore) content(day string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[day].Content
}

var (
	testDate  = time.Date(2019, time.March, 22, 0, 0, 0, 0, time.UTC)
	testDay   = "2019-03-22"
	testStart = time.Date(2019, time.March, 22, 9, 0, 0, 0, time.UTC)
)

// settleLog records settle notifications in order.
type settleLog struct {
	mu     sync.Mutex
	values []bool
}

func (l *settleLog) record(dirty bool) {
	l.mu.Lock()
	l.values = append(l.values, dirty)
	l.mu.Unlock()
}

func (l *settleLog) all() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.values...)
}
