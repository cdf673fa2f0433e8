// Package lock keeps two presently processes from editing the same day at once.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/logger"
)

// ErrLocked is returned when another live process holds the day's lock.
var ErrLocked = errors.New("entry is being edited in another presently process")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held per-day edit lock.
type Lock struct {
	path string
}

// Path returns the lockfile location for a day.
func Path(dir, day string) string {
	return filepath.Join(dir, constants.LockfilePrefix+day+constants.LockfileSuffix)
}

// Acquire takes the lock for day under dir, reclaiming it if the recorded owner is gone.
func Acquire(dir, day string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	path := Path(dir, day)
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d|%s", getpidFunc(), executableName())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, held := holder(path)
		if held {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		logger.Debug("Reclaiming stale edit lock", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lost race for %s", ErrLocked, path)
}

// Release removes the lockfile. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// holder reports whether the lockfile names a running process with the same executable.
func holder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, false
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	// Linux reports the 15 byte comm name, so compare by prefix
	exe := process.Executable()
	return pid, exe != "" && strings.HasPrefix(parts[1], exe)
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return constants.AppName
	}
	return filepath.Base(exe)
}
