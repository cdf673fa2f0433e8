package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/presently/internal/constants"
)

// DirtyTracker turns a burst of content changes into one settled dirty/clean
// signal per pause in typing.
type DirtyTracker struct {
	mu        sync.Mutex
	scheduler Scheduler
	window    time.Duration

	baseline string
	latest   string
	dirty    bool

	timer   Timer
	gen     uint64
	stopped bool

	onSettle  func(bool)
	onFailure func(error)
}

// NewDirtyTracker starts clean against baseline. A zero window means constants.DebounceWindow.
func NewDirtyTracker(s Scheduler, baseline string, window time.Duration) *DirtyTracker {
	if s == nil {
		s = WallClock{}
	}
	if window <= 0 {
		window = constants.DebounceWindow
	}
	return &DirtyTracker{
		scheduler: s,
		window:    window,
		baseline:  baseline,
		latest:    baseline,
		onSettle:  func(bool) {},
		onFailure: func(error) {},
	}
}

// OnSettle registers the settle callback. It runs without the tracker's lock held.
func (t *DirtyTracker) OnSettle(f func(dirty bool)) {
	t.mu.Lock()
	t.onSettle = f
	t.mu.Unlock()
}

// OnFailure registers the callback for scheduler errors.
func (t *DirtyTracker) OnFailure(f func(error)) {
	t.mu.Lock()
	t.onFailure = f
	t.mu.Unlock()
}

// Changed records content and restarts the debounce window.
func (t *DirtyTracker) Changed(content string) error {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return ErrSessionExited
	}

	t.latest = content
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	gen := t.gen

	timer, err := t.scheduler.AfterFunc(t.window, func() { t.settle(gen) })
	if err != nil {
		t.stopped = true
		onFailure := t.onFailure
		t.mu.Unlock()

		err = fmt.Errorf("%w: %v", ErrSchedulerFailed, err)
		onFailure(err)
		return err
	}
	t.timer = timer
	t.mu.Unlock()
	return nil
}

// settle runs when a debounce window elapses. Callbacks from superseded windows are dropped.
func (t *DirtyTracker) settle(gen uint64) {
	t.mu.Lock()
	if t.stopped || gen != t.gen || t.timer == nil {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.dirty = t.latest != t.baseline
	dirty, onSettle := t.dirty, t.onSettle
	t.mu.Unlock()

	onSettle(dirty)
}

// Reset adopts baseline as saved content and emits a clean settle immediately.
func (t *DirtyTracker) Reset(baseline string) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.cancelLocked()
	t.baseline = baseline
	t.latest = baseline
	t.dirty = false
	onSettle := t.onSettle
	t.mu.Unlock()

	onSettle(false)
}

// Flush settles a pending window now and returns the dirty value against the latest content.
func (t *DirtyTracker) Flush() bool {
	t.mu.Lock()
	if t.stopped {
		dirty := t.dirty
		t.mu.Unlock()
		return dirty
	}

	pending := t.timer != nil
	t.cancelLocked()
	t.dirty = t.latest != t.baseline
	dirty, onSettle := t.dirty, t.onSettle
	t.mu.Unlock()

	if pending {
		onSettle(dirty)
	}
	return dirty
}

// Dirty returns the last settled value.
func (t *DirtyTracker) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// Pending reports whether a debounce window is open.
func (t *DirtyTracker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Stop cancels any pending window. The tracker ignores everything afterwards.
func (t *DirtyTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.stopped = true
}

func (t *DirtyTracker) cancelLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}
