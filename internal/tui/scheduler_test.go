package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSchedulerUnboundRunsDirectly(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{})

	if _, err := s.AfterFunc(time.Millisecond, func() { close(done) }); err != nil {
		t.Fatalf("AfterFunc() error = %v", err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

func TestSchedulerBoundPostsMessage(t *testing.T) {
	s := NewScheduler()
	msgs := make(chan tea.Msg, 1)
	s.Bind(func(msg tea.Msg) { msgs <- msg })

	ran := false
	if _, err := s.AfterFunc(time.Millisecond, func() { ran = true }); err != nil {
		t.Fatalf("AfterFunc() error = %v", err)
	}

	select {
	case msg := <-msgs:
		fired, ok := msg.(timerFiredMsg)
		if !ok {
			t.Fatalf("posted %T, want timerFiredMsg", msg)
		}
		if ran {
			t.Error("callback ran before the message was handled")
		}
		fired.fire()
		if !ran {
			t.Error("callback did not run")
		}
	case <-time.After(time.Second):
		t.Fatal("no message posted")
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler()
	msgs := make(chan tea.Msg, 1)
	s.Bind(func(msg tea.Msg) { msgs <- msg })

	timer, err := s.AfterFunc(50*time.Millisecond, func() {})
	if err != nil {
		t.Fatalf("AfterFunc() error = %v", err)
	}
	if !timer.Stop() {
		t.Error("Stop() = false for a pending timer")
	}
	select {
	case <-msgs:
		t.Error("stopped timer still posted")
	case <-time.After(100 * time.Millisecond):
	}
}
