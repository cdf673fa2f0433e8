package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/presently/internal/keyring"
	"github.com/julianstephens/presently/internal/lock"
	"github.com/julianstephens/presently/internal/logger"
	"github.com/julianstephens/presently/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
// followed by a hint line when the error is one the user can act on.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\n  hint: %s", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a short remediation for well-known failures, or "".
func Hint(err error) string {
	switch {
	case errors.Is(err, storage.ErrNotInitialized):
		return "run 'presently init' first"
	case errors.Is(err, lock.ErrLocked):
		return "another presently window is editing this day; close it or wait for it to exit"
	case errors.Is(err, keyring.ErrKeyringUnavailable):
		return "set PRESENTLY_DB_CONNECTION or use a .pgpass file instead of the OS keyring"
	case errors.Is(err, storage.ErrEmbeddedCredentials):
		return "pass passwords through 'presently keyring set', PRESENTLY_DB_CONNECTION or .pgpass, never --config"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
