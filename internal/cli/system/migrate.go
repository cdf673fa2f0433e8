package system

import (
	"fmt"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/logger"
	"github.com/julianstephens/presently/internal/migration"
)

// migrator is implemented by the SQL backends.
type migrator interface {
	Migrate() (int, error)
	MigrationStatus() (migration.Status, error)
}

type MigrateCmd struct {
	Status bool `help:"Show pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		ctx.Println("This storage backend has no schema to migrate.")
		return nil
	}

	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	if c.Status {
		ctx.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		for _, p := range st.Pending {
			ctx.Printf("  pending %03d_%s\n", p.Version, p.Name)
		}
		return nil
	}

	count, err := m.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		logger.Info("Applied migrations", "count", count, "from", st.Current, "to", st.Latest)
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
