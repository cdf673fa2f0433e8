package constants

import "time"

// SessionState represents the current state of the TUI editor screen
type SessionState int

// Affordance is the secondary action offered next to the editor
type Affordance string

const (
	AppName            = "presently"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/presently"
	DefaultConfigPath  = DefaultConfigDir + "/presently.db"
	ConfigFileName     = "config.json"
	Version            = "v0.1.0"

	// Environment variables
	EnvDBConnection = "PRESENTLY_DB_CONNECTION"
	EnvConfigDir    = "PRESENTLY_CONFIG_DIR"

	// DebounceWindow is how long the editor waits after the last keystroke
	// before deciding whether the entry has unsaved changes.
	DebounceWindow = 550 * time.Millisecond

	// Share link shape: <scheme>://<host>/<date>/<content>
	ShareScheme     = "presently"
	ShareHost       = "sharing"
	ShareDateLayout = "January 2, 2006"

	// Storage prefixes
	PostgresPrefix   = "postgres://"
	PostgresqlPrefix = "postgresql://"
	DiskvPrefix      = "diskv://"

	// Lock constants
	LockfilePrefix = "presently-"
	LockfileSuffix = ".lock"
	LockDirName    = "locks"

	// Affordances
	AffordanceNone   Affordance = "none"
	AffordanceShare  Affordance = "share"
	AffordancePrompt Affordance = "prompt"
)

// Session States
const (
	StateEditing SessionState = iota
	StateConfirmExit
	StateMilestone
	StateExited
)
