package session

import (
	"errors"
	"fmt"

	"github.com/julianstephens/presently/internal/sharelink"
)

var (
	// ErrInvalidOperation covers calls the session's current state does not allow
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrSessionExited is returned for any event delivered after exit
	ErrSessionExited = fmt.Errorf("%w: session has exited", ErrInvalidOperation)
	// ErrReadOnly is returned when editing a read-only session
	ErrReadOnly = fmt.Errorf("%w: session is read-only", ErrInvalidOperation)
	// ErrSaveInProgress is returned when a save is requested while another is writing
	ErrSaveInProgress = fmt.Errorf("%w: a save is already in progress", ErrInvalidOperation)
	// ErrNotConfirming is returned by confirmation answers with no pending prompt
	ErrNotConfirming = fmt.Errorf("%w: no exit confirmation is pending", ErrInvalidOperation)
	// ErrEmptyContent is returned when sharing an empty entry
	ErrEmptyContent = fmt.Errorf("%w: %w", ErrInvalidOperation, sharelink.ErrEmptyContent)

	// ErrPersistence wraps every entry store failure
	ErrPersistence = errors.New("failed to persist entry")
	// ErrSchedulerFailed means dirty tracking broke and the session was torn down
	ErrSchedulerFailed = errors.New("debounce scheduler failed")
)
