/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/suparena/dualstore/connectivity"
	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/keys"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

var errNoClient = stderrors.New("no PostgreSQL connection configured")

// Store implements datastore.RemoteStore on PostgreSQL through GORM. Each
// synced collection maps to a table of the same name whose columns are the
// collection's allow-list.
type Store struct {
	db     *gorm.DB
	signal connectivity.Signal
	reg    *registry.Registry
}

// Option configures a Store.
type Option func(*Store)

// WithSignal sets the connectivity signal consulted by Active.
func WithSignal(sig connectivity.Signal) Option {
	return func(s *Store) {
		s.signal = sig
	}
}

// WithRegistry sets the registry used to order scans by key column.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Store) {
		s.reg = reg
	}
}

// Open connects to dsn. GORM's own logging is silenced; failures surface as errors.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return New(db, opts...), nil
}

// New returns a Store over db. A nil db yields a Store that is never active.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, signal: connectivity.Always, reg: registry.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Active reports whether a connection exists and the signal is online.
func (s *Store) Active() bool {
	return s.db != nil && s.signal != nil && s.signal.Online()
}

// FetchOne selects the row whose key column matches key case-insensitively.
func (s *Store) FetchOne(ctx context.Context, c registry.Collection, keyColumn, key string) (storagemodels.Record, error) {
	if s.db == nil {
		return nil, errors.NewRemoteError("fetch", string(c), errNoClient)
	}

	rows, err := fetchQuery(s.db.WithContext(ctx), c, keyColumn, key).Rows()
	if err != nil {
		return nil, errors.NewRemoteError("fetch", string(c), err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.NewRemoteError("fetch", string(c), err)
		}
		return nil, nil
	}

	rec, err := scanRecord(rows)
	if err != nil {
		return nil, errors.NewRemoteError("fetch", string(c), err)
	}
	return rec, nil
}

// Upsert inserts rec or updates every non-key column on key conflict.
func (s *Store) Upsert(ctx context.Context, c registry.Collection, keyColumn string, rec storagemodels.Record) error {
	if s.db == nil {
		return errors.NewRemoteError("upsert", string(c), errNoClient)
	}
	if _, ok := rec.KeyValue(keyColumn); !ok {
		return errors.NewRemoteError("upsert", string(c), errors.NewKeyMissingError(string(c), keyColumn))
	}

	row, err := encodeRow(rec)
	if err != nil {
		return errors.NewRemoteError("upsert", string(c), err)
	}

	if err := upsertQuery(s.db.WithContext(ctx), c, keyColumn, row).Error; err != nil {
		return errors.NewRemoteError("upsert", string(c), err)
	}
	return nil
}

// DeleteOne removes rows whose key column matches key case-insensitively.
func (s *Store) DeleteOne(ctx context.Context, c registry.Collection, keyColumn, key string) error {
	if s.db == nil {
		return errors.NewRemoteError("delete", string(c), errNoClient)
	}
	if err := deleteQuery(s.db.WithContext(ctx), c, keyColumn, key).Error; err != nil {
		return errors.NewRemoteError("delete", string(c), err)
	}
	return nil
}

// Key columns may be integer or uuid typed, so they are cast to text before
// lower() is applied.
func fetchQuery(tx *gorm.DB, c registry.Collection, keyColumn, key string) *gorm.DB {
	return tx.Table(string(c)).
		Where("lower(CAST(? AS text)) = ?", clause.Column{Name: keyColumn}, keys.Normalize(key)).
		Limit(1)
}

func upsertQuery(tx *gorm.DB, c registry.Collection, keyColumn string, row map[string]any) *gorm.DB {
	updates := make([]string, 0, len(row))
	for col := range row {
		if col != keyColumn {
			updates = append(updates, col)
		}
	}
	sort.Strings(updates)

	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: keyColumn}}}
	if len(updates) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(updates)
	}
	return tx.Table(string(c)).Clauses(onConflict).Create(row)
}

func deleteQuery(tx *gorm.DB, c registry.Collection, keyColumn, key string) *gorm.DB {
	return tx.Exec("DELETE FROM ? WHERE lower(CAST(? AS text)) = ?",
		clause.Table{Name: string(c)}, clause.Column{Name: keyColumn}, keys.Normalize(key))
}

func pageQuery(tx *gorm.DB, c registry.Collection, keyColumn string, offset, limit int) *gorm.DB {
	return tx.Table(string(c)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: keyColumn}}).
		Offset(offset).
		Limit(limit)
}

// encodeRow turns nested values into JSON text so they fit json, jsonb or text columns.
func encodeRow(rec storagemodels.Record) (map[string]any, error) {
	row := make(map[string]any, len(rec))
	for k, v := range rec {
		switch v.(type) {
		case map[string]any, []any, []map[string]any, []string, storagemodels.Record:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to encode column %s: %w", k, err)
			}
			row[k] = string(raw)
		default:
			row[k] = v
		}
	}
	return row, nil
}

// scanRecord reads the current row, decoding json and jsonb columns and
// rendering timestamps as strfmt date-times.
func scanRecord(rows *sql.Rows) (storagemodels.Record, error) {
	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	rec := make(storagemodels.Record, len(cols))
	for i, col := range cols {
		v, err := decodeValue(col.DatabaseTypeName(), vals[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name(), err)
		}
		rec[col.Name()] = v
	}
	return rec, nil
}

func decodeValue(dbType string, v any) (any, error) {
	isJSON := strings.EqualFold(dbType, "json") || strings.EqualFold(dbType, "jsonb")

	switch t := v.(type) {
	case []byte:
		if isJSON {
			var out any
			if err := json.Unmarshal(t, &out); err != nil {
				return nil, err
			}
			return out, nil
		}
		return string(t), nil
	case string:
		if isJSON {
			var out any
			if err := json.Unmarshal([]byte(t), &out); err != nil {
				return nil, err
			}
			return out, nil
		}
		return t, nil
	case time.Time:
		return strfmt.DateTime(t.UTC()).String(), nil
	default:
		return t, nil
	}
}

func isTransient(err error) bool {
	return stderrors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
