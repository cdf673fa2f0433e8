package storage

import "errors"

var (
	// ErrNotFound is returned when no entry exists for a day
	ErrNotFound = errors.New("entry not found")
	// ErrNotInitialized is returned by Load when the backing store was never created
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrEmbeddedCredentials is returned for PostgreSQL connection strings carrying a password
	ErrEmbeddedCredentials = errors.New("connection string must not contain a password")
)
