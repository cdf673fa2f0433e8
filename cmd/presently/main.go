package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/presently/internal/cli"
	"github.com/julianstephens/presently/internal/cli/entries"
	"github.com/julianstephens/presently/internal/cli/settings"
	"github.com/julianstephens/presently/internal/cli/system"
	"github.com/julianstephens/presently/internal/constants"
	"github.com/julianstephens/presently/internal/errors"
	"github.com/julianstephens/presently/internal/keyring"
	"github.com/julianstephens/presently/internal/logger"
	"github.com/julianstephens/presently/internal/storage"
	"github.com/julianstephens/presently/internal/storage/diskv"
	"github.com/julianstephens/presently/internal/storage/postgres"
	"github.com/julianstephens/presently/internal/storage/sqlite"
	"github.com/julianstephens/presently/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"SQLite path, diskv:// directory or PostgreSQL connection string. PostgreSQL passwords must NOT be passed here; use the OS keyring, PRESENTLY_DB_CONNECTION or .pgpass instead."`
	ConfigDir string `help:"Directory for logs and edit locks." env:"PRESENTLY_CONFIG_DIR" default:"~/.config/presently" type:"path"`
	Debug     bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize presently storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Edit     system.EditCmd       `cmd:"" help:"Open the journal editor." default:"1"`
	Write    entries.WriteCmd     `cmd:"" help:"Write an entry without the editor."`
	Show     entries.ShowCmd      `cmd:"" help:"Print the entry for a day."`
	Share    entries.ShareCmd     `cmd:"" help:"Print a share link for a day's entry."`
	Count    entries.CountCmd     `cmd:"" help:"Show how many entries you have written."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the database connection stored in the OS keyring."`
}

// Commands that must run before, or without, a loaded store.
var skipLoad = map[string]bool{
	"init":    true,
	"keyring": true,
	"doctor":  true,
}

func main() {
	// A missing .env is normal
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A gratitude journal, one entry a day"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON,
			filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName),
			filepath.Join(".", "."+constants.AppName+".json"),
		),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: CLI.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := openStore()
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:     store,
		ConfigDir: CLI.ConfigDir,
	}

	command := strings.Fields(ctx.Command())[0]
	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// openStore picks a backend from the resolved connection setting.
func openStore() (storage.Provider, error) {
	location, source := keyring.Default().ResolveConnection(CLI.Config)
	logger.Debug("Resolved storage location", "source", source)

	if storage.IsPostgres(location) || (source != keyring.SourceNone && strings.Contains(location, "host=")) {
		// Only the flag ends up in shell history and config files
		if source == keyring.SourceFlag {
			if err := postgres.ValidateConnString(location); err != nil {
				return nil, err
			}
		}
		return postgres.New(location), nil
	}

	if location == "" {
		location = constants.DefaultConfigPath
	}
	path, err := utils.ExpandPath(strings.TrimPrefix(location, constants.DiskvPrefix))
	if err != nil {
		return nil, err
	}
	if storage.IsDiskv(location) {
		return diskv.New(path), nil
	}
	return sqlite.NewStore(path), nil
}
