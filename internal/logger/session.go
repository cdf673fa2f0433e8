package logger

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Session logs on behalf of one editing session. Every record carries the
// session id and entry day, so interleaved sessions can be told apart.
// The zero value discards everything.
type Session struct {
	l  *log.Logger
	ID string
}

// ForSession binds a logger to the session editing day.
func ForSession(day string, readOnly bool) Session {
	id := uuid.NewString()[:8]
	return Session{
		l:  With("session", id, "day", day, "read_only", readOnly),
		ID: id,
	}
}

func (s Session) Debug(msg string, keyvals ...interface{}) {
	if s.l != nil {
		s.l.Debug(msg, keyvals...)
	}
}

func (s Session) Info(msg string, keyvals ...interface{}) {
	if s.l != nil {
		s.l.Info(msg, keyvals...)
	}
}

func (s Session) Warn(msg string, keyvals ...interface{}) {
	if s.l != nil {
		s.l.Warn(msg, keyvals...)
	}
}

func (s Session) Error(msg string, keyvals ...interface{}) {
	if s.l != nil {
		s.l.Error(msg, keyvals...)
	}
}
