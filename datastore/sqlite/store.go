/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/rs/zerolog"

	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/keys"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// Store is the embedded local tier. One Store owns one database handle, opened
// lazily on first use and shared by all callers.
type Store struct {
	path        string
	reg         *registry.Registry
	log         zerolog.Logger
	now         func() time.Time
	busyTimeout time.Duration

	mu sync.Mutex
	db *sql.DB
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for migration and close diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithClock overrides the clock used for updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.busyTimeout = d
	}
}

// New returns a Store for the database file at path. Nothing is opened until
// Init or the first operation.
func New(path string, reg *registry.Registry, opts ...Option) *Store {
	if reg == nil {
		reg = registry.Default()
	}
	s := &Store{
		path:        path,
		reg:         reg,
		log:         zerolog.Nop(),
		now:         time.Now,
		busyTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Init opens the database and brings its schema up to SchemaVersion. It is
// idempotent; concurrent callers observe the same handle.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.handle(ctx)
	return err
}

func (s *Store) handle(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, errors.NewLocalError("init", "", err)
	}
	s.db = db
	return db, nil
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serializes writers and avoids SQLITE_BUSY between them.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := s.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func (s *Store) applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", s.busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Ready reports whether the database handle is open.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// Version returns the schema version stamped in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return 0, err
	}
	v, err := userVersion(ctx, db)
	if err != nil {
		return 0, errors.NewLocalError("version", "", err)
	}
	return v, nil
}

// Close checkpoints the WAL and closes the handle. A later operation reopens it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("failed to checkpoint WAL")
	}

	err := s.db.Close()
	s.db = nil
	if err != nil {
		return errors.NewLocalError("close", "", err)
	}
	return nil
}

func (s *Store) schema(c registry.Collection) (registry.Schema, error) {
	schema, ok := s.reg.Schema(c)
	if !ok {
		return registry.Schema{}, errors.NewUnknownCollectionError(string(c))
	}
	return schema, nil
}

// Get returns the record stored under the normalized key. A miss is a
// NotFoundError.
func (s *Store) Get(ctx context.Context, c registry.Collection, key string) (storagemodels.Record, error) {
	if _, err := s.schema(c); err != nil {
		return nil, err
	}
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	var raw string
	q := fmt.Sprintf("SELECT record FROM %s WHERE key = ?", quoteIdent(string(c)))
	err = db.QueryRowContext(ctx, q, keys.Normalize(key)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(string(c), key)
	}
	if err != nil {
		return nil, errors.NewLocalError("get", string(c), err)
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, errors.NewLocalError("get", string(c), err)
	}
	return rec, nil
}

// Put upserts rec under its normalized key. The record body is stored as given.
func (s *Store) Put(ctx context.Context, c registry.Collection, rec storagemodels.Record) error {
	schema, err := s.schema(c)
	if err != nil {
		return err
	}
	key, ok := rec.KeyValue(schema.KeyPath)
	if !ok {
		return errors.NewKeyMissingError(string(c), schema.KeyPath)
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return errors.NewValidationError("", fmt.Sprintf("record is not encodable: %v", err))
	}

	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`INSERT INTO %s (key, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		quoteIdent(string(c)))
	stamp := strfmt.DateTime(s.now().UTC()).String()
	if _, err := db.ExecContext(ctx, q, keys.Normalize(key), string(body), stamp); err != nil {
		return errors.NewLocalError("put", string(c), err)
	}
	return nil
}

// GetAll returns every record in c ordered by key.
func (s *Store) GetAll(ctx context.Context, c registry.Collection) ([]storagemodels.Record, error) {
	if _, err := s.schema(c); err != nil {
		return nil, err
	}
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT record FROM %s ORDER BY key", quoteIdent(string(c))))
	if err != nil {
		return nil, errors.NewLocalError("getAll", string(c), err)
	}
	defer rows.Close()

	out := []storagemodels.Record{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.NewLocalError("getAll", string(c), err)
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, errors.NewLocalError("getAll", string(c), err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewLocalError("getAll", string(c), err)
	}
	return out, nil
}

// Delete removes the record under the normalized key. An absent key is not an error.
func (s *Store) Delete(ctx context.Context, c registry.Collection, key string) error {
	if _, err := s.schema(c); err != nil {
		return err
	}
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	q := fmt.Sprintf("DELETE FROM %s WHERE key = ?", quoteIdent(string(c)))
	if _, err := db.ExecContext(ctx, q, keys.Normalize(key)); err != nil {
		return errors.NewLocalError("delete", string(c), err)
	}
	return nil
}

// Clear removes every record in c.
func (s *Store) Clear(ctx context.Context, c registry.Collection) error {
	if _, err := s.schema(c); err != nil {
		return err
	}
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", quoteIdent(string(c)))); err != nil {
		return errors.NewLocalError("clear", string(c), err)
	}
	return nil
}

func decodeRecord(raw string) (storagemodels.Record, error) {
	var rec storagemodels.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
