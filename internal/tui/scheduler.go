package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/presently/internal/session"
)

// timerFiredMsg carries a debounce callback onto the Update loop.
type timerFiredMsg struct {
	fire func()
}

// Scheduler delivers session timers as tea messages so dirty tracking
// settles on the same goroutine that renders the editor.
type Scheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Bind routes fired timers to send, normally (*tea.Program).Send.
func (s *Scheduler) Bind(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) (session.Timer, error) {
	return time.AfterFunc(d, func() { s.post(f) }), nil
}

func (s *Scheduler) post(f func()) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()

	// Unbound: no program is running, so nothing else touches the model
	if send == nil {
		f()
		return
	}
	send(timerFiredMsg{fire: f})
}
