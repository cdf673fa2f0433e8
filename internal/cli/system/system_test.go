package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/models"
	"github.com/julianstephens/presently/internal/storage/diskv"
	"github.com/julianstephens/presently/internal/storage/sqlite"
)

func setupTestContext(t *testing.T, init bool) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	store := sqlite.NewStore(dbPath)
	if init {
		if err := store.Init(); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, ConfigDir: dir, Out: out}, out, dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, out, dbPath := setupTestContext(t, false)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized presently storage at: "+dbPath) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := setupTestContext(t, false)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := ctx.Store.SaveEntry(models.Entry{Day: "2019-03-22", Content: "kept"}); err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	e, err := ctx.Store.GetEntry("2019-03-22")
	if err != nil || e.Content != "kept" {
		t.Errorf("second init lost data: %+v, %v", e, err)
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, out, _ := setupTestContext(t, true)
	if err := ctx.Store.SaveEntry(models.Entry{Day: "2019-03-22", Content: "gone"}); err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing storage") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if _, err := ctx.Store.GetEntry("2019-03-22"); err == nil {
		t.Error("entry survived init --force")
	}
}

func TestInitCmd_ForceDiskv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	store := diskv.New("diskv://" + dir)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.SaveEntry(models.Entry{Day: "2019-03-22", Content: "gone"}); err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}

	ctx := &cli.Context{Store: store, Out: &bytes.Buffer{}}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	count, err := store.CountEntries()
	if err != nil {
		t.Fatalf("CountEntries() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountEntries() = %d after reset, want 0", count)
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, out, _ := setupTestContext(t, true)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMigrateCmd_Status(t *testing.T) {
	ctx, out, _ := setupTestContext(t, true)

	if err := (&MigrateCmd{Status: true}).Run(ctx); err != nil {
		t.Fatalf("migrate --status failed: %v", err)
	}
	if !strings.Contains(out.String(), "Schema version:") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMigrateCmd_AppliesPending(t *testing.T) {
	ctx, out, _ := setupTestContext(t, true)

	db := ctx.Store.(*sqlite.Store).GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to reset schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (0)"); err != nil {
		t.Fatalf("failed to reset schema version: %v", err)
	}
	// Re-running the schema must be harmless
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Successfully applied") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMigrateCmd_NoSchema(t *testing.T) {
	store := diskv.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	out := &bytes.Buffer{}
	if err := (&MigrateCmd{}).Run(&cli.Context{Store: store, Out: out}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "no schema") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, out, _ := setupTestContext(t, true)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on a healthy database: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "✓ Storage reachable: OK") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	ctx, out, _ := setupTestContext(t, false)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when storage was never initialized")
	}
	if !strings.Contains(out.String(), "SKIPPED") {
		t.Errorf("dependent checks were not skipped: %q", out.String())
	}
}

func TestDoctorCmd_PendingMigrations(t *testing.T) {
	ctx, out, _ := setupTestContext(t, true)

	db := ctx.Store.(*sqlite.Store).GetDB()
	if _, err := db.Exec("UPDATE schema_version SET version = 0"); err != nil {
		t.Fatalf("failed to reset schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail with pending migrations")
	}
	if !strings.Contains(out.String(), "❌ Migrations complete: FAIL") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
