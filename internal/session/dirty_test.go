package session

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/presently/internal/constants"
)

var errBoom = errors.New("boom")

func newTestTracker(baseline string) (*DirtyTracker, *ManualClock, *settleLog) {
	clock := NewManualClock(testStart)
	tracker := NewDirtyTracker(clock, baseline, 0)
	log := &settleLog{}
	tracker.OnSettle(log.record)
	return tracker, clock, log
}

func TestDebounceWindowIsExact(t *testing.T) {
	tracker, clock, log := newTestTracker("")

	if err := tracker.Changed("a"); err != nil {
		t.Fatalf("Changed() error = %v", err)
	}
	clock.Advance(constants.DebounceWindow - time.Millisecond)
	if got := log.all(); len(got) != 0 {
		t.Fatalf("settled early: %v", got)
	}

	clock.Advance(time.Millisecond)
	if got := log.all(); !reflect.DeepEqual(got, []bool{true}) {
		t.Errorf("settles = %v, want [true]", got)
	}
}

func TestDebounceCoalescesBurst(t *testing.T) {
	tracker, clock, log := newTestTracker("baseline")

	tracker.Changed("b")
	clock.Advance(300 * time.Millisecond)
	tracker.Changed("ba")
	clock.Advance(549 * time.Millisecond)
	if got := log.all(); len(got) != 0 {
		t.Fatalf("settled inside the burst: %v", got)
	}
	// The burst ends back on the baseline
	tracker.Changed("baseline")
	clock.Advance(10 * time.Second)

	if got := log.all(); !reflect.DeepEqual(got, []bool{false}) {
		t.Errorf("settles = %v, want exactly one reflecting the last edit", got)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after settle", clock.Pending())
	}
}

func TestDirtyRoundTrip(t *testing.T) {
	tracker, clock, log := newTestTracker("A")

	tracker.Changed("B")
	clock.Advance(constants.DebounceWindow)
	if !tracker.Dirty() {
		t.Error("Dirty() = false after settling on different content")
	}

	tracker.Changed("A")
	clock.Advance(constants.DebounceWindow)
	if tracker.Dirty() {
		t.Error("Dirty() = true after returning to the baseline")
	}

	if got := log.all(); !reflect.DeepEqual(got, []bool{true, false}) {
		t.Errorf("settles = %v, want [true false]", got)
	}
}

func TestResetEmitsCleanImmediately(t *testing.T) {
	tracker, clock, log := newTestTracker("")

	tracker.Changed("draft")
	tracker.Reset("draft")
	if got := log.all(); !reflect.DeepEqual(got, []bool{false}) {
		t.Fatalf("settles after Reset = %v, want [false]", got)
	}

	clock.Advance(time.Second)
	if got := log.all(); len(got) != 1 {
		t.Errorf("pending window fired after Reset: %v", got)
	}

	tracker.Changed("draft")
	clock.Advance(constants.DebounceWindow)
	if tracker.Dirty() {
		t.Error("content equal to the new baseline should be clean")
	}
}

func TestFlushSettlesPendingWindow(t *testing.T) {
	tracker, clock, log := newTestTracker("A")

	tracker.Changed("B")
	if !tracker.Pending() {
		t.Fatal("Pending() = false after Changed()")
	}
	if !tracker.Flush() {
		t.Error("Flush() = false for unsettled dirty content")
	}
	if got := log.all(); !reflect.DeepEqual(got, []bool{true}) {
		t.Errorf("settles = %v, want [true]", got)
	}

	clock.Advance(time.Second)
	if got := log.all(); len(got) != 1 {
		t.Errorf("cancelled window still fired: %v", got)
	}

	// Nothing pending: report without emitting again
	if !tracker.Flush() {
		t.Error("second Flush() = false")
	}
	if got := log.all(); len(got) != 1 {
		t.Errorf("idle Flush() emitted: %v", got)
	}
}

func TestStopDropsLateCallbacks(t *testing.T) {
	tracker, clock, log := newTestTracker("")

	tracker.Changed("x")
	tracker.Stop()
	clock.Advance(time.Second)

	if got := log.all(); len(got) != 0 {
		t.Errorf("settled after Stop(): %v", got)
	}
	if err := tracker.Changed("y"); !errors.Is(err, ErrSessionExited) {
		t.Errorf("Changed() after Stop() = %v, want ErrSessionExited", err)
	}
}

func TestStaleGenerationIsDropped(t *testing.T) {
	tracker, _, log := newTestTracker("")

	// A callback from a superseded window that raced its Stop()
	tracker.Changed("old")
	staleGen := tracker.gen
	tracker.Changed("new")
	tracker.settle(staleGen)

	if got := log.all(); len(got) != 0 {
		t.Errorf("stale callback emitted: %v", got)
	}
}

func TestSchedulerFailure(t *testing.T) {
	tracker, clock, _ := newTestTracker("")

	var failed error
	tracker.OnFailure(func(err error) { failed = err })
	clock.SetError(errBoom)

	err := tracker.Changed("x")
	if !errors.Is(err, ErrSchedulerFailed) {
		t.Errorf("Changed() error = %v, want ErrSchedulerFailed", err)
	}
	if !errors.Is(failed, ErrSchedulerFailed) {
		t.Errorf("OnFailure got %v, want ErrSchedulerFailed", failed)
	}

	clock.SetError(nil)
	if err := tracker.Changed("y"); !errors.Is(err, ErrSessionExited) {
		t.Errorf("tracker kept running after failure: %v", err)
	}
}
