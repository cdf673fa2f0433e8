package session

import (
	"testing"
	"time"
)

func TestManualClockFiresInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(testStart)

	var order []string
	clock.AfterFunc(300*time.Millisecond, func() { order = append(order, "b") })
	clock.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(time.Second, func() { order = append(order, "c") })

	clock.Advance(500 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("fired %v, want [a b]", order)
	}
	if got := clock.Now(); !got.Equal(testStart.Add(500 * time.Millisecond)) {
		t.Errorf("Now() = %v", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", clock.Pending())
	}
}

func TestManualClockStop(t *testing.T) {
	clock := NewManualClock(testStart)

	fired := false
	timer, err := clock.AfterFunc(time.Second, func() { fired = true })
	if err != nil {
		t.Fatalf("AfterFunc() error = %v", err)
	}
	if !timer.Stop() {
		t.Error("Stop() on pending timer = false")
	}
	if timer.Stop() {
		t.Error("second Stop() = true")
	}

	clock.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestManualClockChainedCallbacks(t *testing.T) {
	clock := NewManualClock(testStart)

	fired := 0
	clock.AfterFunc(100*time.Millisecond, func() {
		fired++
		clock.AfterFunc(100*time.Millisecond, func() { fired++ })
	})

	clock.Advance(250 * time.Millisecond)
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
}

func TestManualClockError(t *testing.T) {
	clock := NewManualClock(testStart)
	clock.SetError(errBoom)

	if _, err := clock.AfterFunc(time.Second, func() {}); err != errBoom {
		t.Errorf("AfterFunc() error = %v, want %v", err, errBoom)
	}

	clock.SetError(nil)
	if _, err := clock.AfterFunc(time.Second, func() {}); err != nil {
		t.Errorf("AfterFunc() after recovery error = %v", err)
	}
}

func TestWallClock(t *testing.T) {
	done := make(chan struct{})
	if _, err := (WallClock{}).AfterFunc(time.Millisecond, func() { close(done) }); err != nil {
		t.Fatalf("AfterFunc() error = %v", err)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("wall clock callback never ran")
	}
}
