package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/keyring"
	"github.com/julianstephens/presently/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.Printf("✓ %s: OK\n", name)
	}

	// Check 1: storage reachable
	dbErr := ctx.Store.Load()
	report("Storage reachable", dbErr)

	// Checks 2 and 3 need a loaded store
	if dbErr == nil {
		report("Migrations complete", checkMigrationsComplete(ctx))
		report("Settings valid", checkSettings(ctx))
	} else {
		ctx.Printf("⊘ Migrations complete: SKIPPED (storage not reachable)\n")
		ctx.Printf("⊘ Settings valid: SKIPPED (storage not reachable)\n")
	}

	// Check 4: edit locks can be taken
	report("Lock directory writable", checkLockDir(ctx))

	// Check 5: clock/timezone sanity
	report("Clock/timezone", checkClockTimezone())

	// Check 6: keyring (informational only)
	if keyring.Default().Available() {
		ctx.Printf("✓ OS keyring: available\n")
	} else {
		ctx.Printf("⚠ OS keyring: WARNING\n")
		ctx.Printf("   not available; use %s or .pgpass for PostgreSQL\n", constants.EnvDBConnection)
	}

	ctx.Println()
	if hasError {
		ctx.Println("Some checks failed.")
		return errors.New("diagnostics failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("%d pending migration(s); run 'presently migrate'", len(st.Pending))
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	return storage.ValidateSettings(settings)
}

func checkLockDir(ctx *cli.Context) error {
	dir := ctx.LockDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock reports %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return errors.New("no local timezone")
	}
	return nil
}
