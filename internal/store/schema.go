package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// migrations[i] moves the database from version i to version i+1.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

// schemaVersion is the version a fully migrated database reports.
var schemaVersion = len(migrations)

// currentVersion reads the recorded version. A database without the
// schema_version table is version 0.
func currentVersion(ctx context.Context, q *sql.DB) (int, error) {
	var version int
	err := q.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == nil:
		return version, nil
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	}

	var tables int
	if countErr := q.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'",
	).Scan(&tables); countErr != nil {
		return 0, fmt.Errorf("inspect schema: %w", countErr)
	}
	if tables == 0 {
		return 0, nil
	}
	return 0, fmt.Errorf("read schema version: %w", err)
}

// migrate brings the database up to schemaVersion in a single transaction.
// Databases written by a newer build are refused rather than downgraded.
func (s *Store) migrate(ctx context.Context) error {
	version, err := currentVersion(ctx, s.db)
	if err != nil {
		return err
	}
	if version > schemaVersion {
		return fmt.Errorf("%w: database has version %d, this build understands %d (export a backup and delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	if version == schemaVersion {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}
	for i := version; i < schemaVersion; i++ {
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("reset schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}
