package storage

import (
	"net/url"
	"strings"

	"github.com/julianstephens/presently/internal/constants"
)

// IsPostgres reports whether the configured location is a PostgreSQL connection string.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, constants.PostgresPrefix) || strings.HasPrefix(config, constants.PostgresqlPrefix)
}

// IsDiskv reports whether the configured location selects the directory store.
func IsDiskv(config string) bool {
	return strings.HasPrefix(config, constants.DiskvPrefix)
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string (URL or DSN) carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgres(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			// Unparseable URLs are rejected later by the driver
			return false
		}
		_, isSet := u.User.Password()
		return isSet
	}

	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}
