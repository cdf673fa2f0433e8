// Package session implements the lifecycle of editing one dated journal entry:
// loading, debounced dirty tracking, guarded exit, save with milestone
// evaluation and share links.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/logger"
	"github.com/julianstephens/presently/internal/milestone"
	"github.com/julianstephens/presently/internal/models"
	"github.com/julianstephens/presently/internal/sharelink"
	"github.com/julianstephens/presently/internal/storage"
)

// ExitDecision tells the caller what to do with a back/exit request.
type ExitDecision int

const (
	ExitNow ExitDecision = iota
	PromptConfirm
	AlreadyExited
)

func (d ExitDecision) String() string {
	switch d {
	case ExitNow:
		return "exit-now"
	case PromptConfirm:
		return "prompt-confirm"
	case AlreadyExited:
		return "already-exited"
	default:
		return "unknown"
	}
}

// Options configure a session. The zero value is an editable session on the
// wall clock with the default debounce window and no milestones.
type Options struct {
	ReadOnly        bool
	PromptThreshold int
	Policy          milestone.Policy
	Scheduler       Scheduler
	DebounceWindow  time.Duration
}

// Controller owns one editing session. All methods are safe for concurrent
// use; callbacks never run with the controller's lock held.
type Controller struct {
	mu sync.Mutex

	store     storage.EntryStore
	evaluator *milestone.Evaluator
	tracker   *DirtyTracker
	guard     ExitGuard

	date      time.Time
	day       string
	original  string
	current   string
	dirty     bool
	readOnly  bool
	threshold int
	saving    bool
	failure   error

	onSettle func(bool)
	log      logger.Session
}

// Begin loads the entry for date and starts a session on it. A missing entry
// starts an empty session.
func Begin(ctx context.Context, store storage.EntryStore, date time.Time, opts Options) (*Controller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	day := date.Format(constants.DateFormat)
	entry, err := store.GetEntry(day)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: loading %s: %w", ErrPersistence, day, err)
	}

	c := &Controller{
		store:     store,
		evaluator: milestone.NewEvaluator(opts.Policy),
		date:      date,
		day:       day,
		original:  entry.Content,
		current:   entry.Content,
		readOnly:  opts.ReadOnly,
		threshold: opts.PromptThreshold,
		onSettle:  func(bool) {},
		log:       logger.ForSession(day, opts.ReadOnly),
	}

	if !c.readOnly {
		c.tracker = NewDirtyTracker(opts.Scheduler, entry.Content, opts.DebounceWindow)
		c.tracker.OnSettle(c.settled)
		c.tracker.OnFailure(c.fail)
	}

	c.log.Debug("Session started", "has_content", entry.Content != "")
	return c, nil
}

// OnSettle registers an observer for settled dirty values.
func (c *Controller) OnSettle(f func(dirty bool)) {
	c.mu.Lock()
	c.onSettle = f
	c.mu.Unlock()
}

func (c *Controller) settled(dirty bool) {
	c.mu.Lock()
	if c.guard.State() == Exited {
		c.mu.Unlock()
		return
	}
	c.dirty = dirty
	c.guard.Fire(Settled(dirty))
	observer := c.onSettle
	c.mu.Unlock()

	observer(dirty)
}

// fail tears the session down after the tracker lost its scheduler.
func (c *Controller) fail(err error) {
	c.mu.Lock()
	c.failure = err
	c.guard.state = Exited
	c.mu.Unlock()

	c.log.Error("Session torn down", "error", err)
}

func (c *Controller) exitedErrLocked() error {
	if c.failure != nil {
		return fmt.Errorf("%w: %w", ErrSessionExited, c.failure)
	}
	return ErrSessionExited
}

// Edit replaces the live buffer.
func (c *Controller) Edit(content string) error {
	c.mu.Lock()
	if c.guard.State() == Exited {
		err := c.exitedErrLocked()
		c.mu.Unlock()
		return err
	}
	if c.readOnly {
		c.mu.Unlock()
		return ErrReadOnly
	}
	c.current = content
	tracker := c.tracker
	c.mu.Unlock()

	return tracker.Changed(content)
}

// Save writes the live buffer. On success it returns the milestone reached,
// if any. On failure the buffer and dirty state are left as they were.
func (c *Controller) Save(ctx context.Context) (*milestone.Milestone, error) {
	c.mu.Lock()
	if c.guard.State() == Exited {
		err := c.exitedErrLocked()
		c.mu.Unlock()
		return nil, err
	}
	if c.readOnly {
		c.mu.Unlock()
		return nil, ErrReadOnly
	}
	if c.saving {
		c.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	c.saving = true
	snapshot := c.current
	wasCounted := strings.TrimSpace(c.original) != ""
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		c.finishSave("", false)
		return nil, err
	}

	if err := c.store.SaveEntry(models.Entry{Day: c.day, Content: snapshot}); err != nil {
		c.finishSave("", false)
		c.log.Warn("Save failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	current := c.finishSave(snapshot, true)
	c.tracker.Reset(snapshot)
	if current != snapshot {
		// Typing continued while the write was in flight
		if err := c.tracker.Changed(current); err != nil {
			return nil, err
		}
	}
	c.log.Debug("Entry saved", "length", len(snapshot))

	if wasCounted || strings.TrimSpace(snapshot) == "" {
		return nil, nil
	}

	count, err := c.store.CountEntries()
	if err != nil {
		// The entry is committed; only the celebration is lost
		c.log.Warn("Could not count entries after save", "error", err)
		return nil, nil
	}
	if m, ok := c.evaluator.Evaluate(count); ok {
		c.log.Info("Milestone reached", "count", m.Count)
		return &m, nil
	}
	return nil, nil
}

func (c *Controller) finishSave(saved string, ok bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false
	if ok {
		c.original = saved
	}
	return c.current
}

// RequestExit settles any pending edit and decides whether the caller may leave.
// It refuses with ErrSaveInProgress while a write is in flight.
func (c *Controller) RequestExit() (ExitDecision, error) {
	c.mu.Lock()
	if c.guard.State() == Exited {
		c.mu.Unlock()
		return AlreadyExited, nil
	}
	if c.readOnly {
		c.guard.state = Exited
		c.mu.Unlock()
		return ExitNow, nil
	}
	if c.saving {
		c.mu.Unlock()
		return PromptConfirm, ErrSaveInProgress
	}
	tracker := c.tracker
	c.mu.Unlock()

	dirty := tracker.Flush()

	c.mu.Lock()
	if c.guard.State() == Exited {
		c.mu.Unlock()
		return AlreadyExited, nil
	}
	c.dirty = dirty
	c.guard.Fire(Settled(dirty))
	effect := c.guard.Fire(ExitRequested)
	c.mu.Unlock()

	switch effect {
	case EffectExit:
		tracker.Stop()
		c.log.Debug("Session exited", "dirty", false)
		return ExitNow, nil
	case EffectPrompt:
		return PromptConfirm, nil
	default:
		return AlreadyExited, nil
	}
}

// CancelExit dismisses a pending confirmation and resumes editing.
func (c *Controller) CancelExit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.confirmingLocked(); err != nil {
		return err
	}
	c.guard.Fire(Cancel)
	c.guard.Fire(Settled(c.dirty))
	return nil
}

// ConfirmDiscard abandons unsaved changes and exits without writing.
func (c *Controller) ConfirmDiscard() error {
	c.mu.Lock()
	if err := c.confirmingLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInProgress
	}
	c.guard.Fire(ConfirmDiscard)
	tracker := c.tracker
	c.mu.Unlock()

	tracker.Stop()
	c.log.Debug("Session exited", "discarded", true)
	return nil
}

// SaveAndExit saves, then exits. If the save fails the confirmation stays pending.
func (c *Controller) SaveAndExit(ctx context.Context) (*milestone.Milestone, error) {
	c.mu.Lock()
	if err := c.confirmingLocked(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.saving {
		c.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	_, effect := Transition(c.guard.State(), SaveAndExit)
	c.mu.Unlock()

	if effect != EffectSave {
		return nil, ErrNotConfirming
	}

	m, err := c.Save(ctx)
	if err != nil {
		c.mu.Lock()
		if c.guard.State() == ConfirmPending {
			c.guard.Fire(SaveFailed)
		}
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.guard.Fire(SaveAndExit)
	c.mu.Unlock()
	c.tracker.Stop()
	c.log.Debug("Session exited", "saved", true)
	return m, nil
}

func (c *Controller) confirmingLocked() error {
	switch c.guard.State() {
	case Exited:
		return c.exitedErrLocked()
	case ConfirmPending:
		return nil
	default:
		return ErrNotConfirming
	}
}

// Share builds the deep link for the live buffer.
func (c *Controller) Share() (string, error) {
	c.mu.Lock()
	if c.guard.State() == Exited {
		err := c.exitedErrLocked()
		c.mu.Unlock()
		return "", err
	}
	date, content := c.date, c.current
	c.mu.Unlock()

	link, err := sharelink.Build(date, content)
	if errors.Is(err, sharelink.ErrEmptyContent) {
		return "", ErrEmptyContent
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}
	return link, nil
}

// Affordance picks the secondary action shown beside the editor.
func (c *Controller) Affordance() constants.Affordance {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.readOnly:
		return constants.AffordanceNone
	case strings.TrimSpace(c.original) != "":
		return constants.AffordanceShare
	case c.threshold > 0:
		return constants.AffordancePrompt
	default:
		return constants.AffordanceShare
	}
}

// Close ends the session without a decision. It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	c.guard.state = Exited
	tracker := c.tracker
	c.mu.Unlock()

	if tracker != nil {
		tracker.Stop()
	}
}

func (c *Controller) Date() time.Time { return c.date }

func (c *Controller) Day() string { return c.day }

func (c *Controller) ReadOnly() bool { return c.readOnly }

// Content returns the live buffer.
func (c *Controller) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Original returns the last loaded or saved content.
func (c *Controller) Original() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.original
}

// IsDirty returns the last settled dirty value.
func (c *Controller) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

func (c *Controller) State() GuardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.guard.State()
}
