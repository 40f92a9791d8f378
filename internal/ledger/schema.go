package ledger

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the version written by schema.sql. Changing the schema
// means bumping it and adding the step from the previous version to
// migrations, so ledgers from older builds keep their run history.
const schemaVersion = 2

// migrations upgrades a ledger from version key to key+1.
var migrations = map[int]string{
	// Resume looks up earlier runs by output root.
	1: `CREATE INDEX IF NOT EXISTS idx_runs_output_root ON runs(output_root, started_at);`,
}

// ErrSchemaMismatch indicates a ledger that this build cannot read: one
// written by a newer build, or an older one with no migration path.
var ErrSchemaMismatch = errors.New("schema version mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("%w: ledger %s has version %d, newer than supported version %d",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
	return s.migrate(ctx, version)
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// migrate applies every step from version up to schemaVersion in a single
// transaction, leaving the ledger untouched if any step fails.
func (s *Store) migrate(ctx context.Context, version int) error {
	for v := version; v < schemaVersion; v++ {
		if _, ok := migrations[v]; !ok {
			return fmt.Errorf("%w: ledger %s has version %d with no upgrade to %d (delete it to start a fresh ledger)",
				ErrSchemaMismatch, s.path, version, schemaVersion)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for v := version; v < schemaVersion; v++ {
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			return fmt.Errorf("migrate ledger to version %d: %w", v+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "UPDATE schema_version SET version = ?", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
