// Package keyring keeps the PostgreSQL connection string out of config files and shell history.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/presently/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source names where a resolved connection string came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceNone    Source = "none"
)

// Credentials addresses one secret in the OS keyring.
type Credentials struct {
	Service string
	User    string
}

// Default returns the entry presently reads its database connection from.
func Default() Credentials {
	return Credentials{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (c Credentials) Get() (string, error) {
	secret, err := keyring.Get(c.Service, c.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (c Credentials) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(c.Service, c.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (c Credentials) Delete() error {
	if err := keyring.Delete(c.Service, c.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available is a best-effort probe; a missing secret still means the keyring works.
func (c Credentials) Available() bool {
	_, err := keyring.Get(c.Service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// ResolveConnection picks the database location in precedence order:
// explicit flag, then PRESENTLY_DB_CONNECTION, then the keyring.
// An unavailable keyring is not an error; the caller falls back to SQLite.
func (c Credentials) ResolveConnection(flagValue string) (string, Source) {
	if flagValue != "" {
		return flagValue, SourceFlag
	}
	if v := os.Getenv(constants.EnvDBConnection); v != "" {
		return v, SourceEnv
	}
	if v, err := c.Get(); err == nil && v != "" {
		return v, SourceKeyring
	}
	return "", SourceNone
}
