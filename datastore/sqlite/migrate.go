/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/registry"
)

// Schema version tracking:
// 0 - empty database
// 1 - one table per registered collection
// 2 - updated_at index on every collection table
const SchemaVersion = 2

type migration struct {
	version int
	apply   func(ctx context.Context, tx *sql.Tx, collections []registry.Collection) error
}

var migrations = []migration{
	{version: 1, apply: createTables},
	{version: 2, apply: createIndexes},
}

// migrate brings db to SchemaVersion inside one transaction. Every step uses
// IF NOT EXISTS so re-running it never touches existing rows.
func (s *Store) migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var version int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("%w: on disk %d, supported %d", errors.ErrSchemaTooNew, version, SchemaVersion)
	}

	// Steps are idempotent and already-recorded ones are re-applied, so a
	// collection registered after the file was created still gets its table.
	collections := s.reg.Collections()
	for _, m := range migrations {
		if err := m.apply(ctx, tx, collections); err != nil {
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		if m.version > version {
			s.log.Info().Int("version", m.version).Str("path", s.path).Msg("applied local schema migration")
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return tx.Commit()
}

func createTables(ctx context.Context, tx *sql.Tx, collections []registry.Collection) error {
	for _, c := range collections {
		q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			record TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`, quoteIdent(string(c)))
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table %s: %w", c, err)
		}
	}
	return nil
}

func createIndexes(ctx context.Context, tx *sql.Tx, collections []registry.Collection) error {
	for _, c := range collections {
		q := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(updated_at)",
			quoteIdent("idx_"+string(c)+"_updated_at"), quoteIdent(string(c)))
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create index on %s: %w", c, err)
		}
	}
	return nil
}

func userVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return v, nil
}
