package lock

import (
	"errors"
	"os"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubProcesses(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = old })
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir, "2019-03-22")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, err := os.Stat(Path(dir, "2019-03-22")); err != nil {
		t.Fatalf("lockfile missing after Acquire(): %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir, "2019-03-22")); !os.IsNotExist(err) {
		t.Errorf("lockfile still present after Release(): %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir, "2019-03-22"), []byte("4242|presently"), 0o600); err != nil {
		t.Fatal(err)
	}
	stubProcesses(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "presently"}, nil
	})

	if _, err := Acquire(dir, "2019-03-22"); !errors.Is(err, ErrLocked) {
		t.Errorf("Acquire() error = %v, want ErrLocked", err)
	}
}

func TestAcquireReclaimsStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		process ps.Process
	}{
		{"process gone", "4242|presently", nil},
		{"pid reused by other program", "4242|presently", &mockProcess{pid: 4242, executable: "bash"}},
		{"malformed", "garbage", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir, "2019-03-22"), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			stubProcesses(t, func(int) (ps.Process, error) { return tt.process, nil })

			l, err := Acquire(dir, "2019-03-22")
			if err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			defer l.Release()
		})
	}
}

func TestLocksArePerDay(t *testing.T) {
	dir := t.TempDir()

	a, err := Acquire(dir, "2019-03-22")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer a.Release()

	b, err := Acquire(dir, "2019-03-23")
	if err != nil {
		t.Fatalf("Acquire() for another day error = %v", err)
	}
	defer b.Release()
}
