package store

import "errors"

var (
	// ErrLocked is returned by Open when another process holds the data directory.
	ErrLocked = errors.New("catalog is in use by another crunchlist process")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
