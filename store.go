/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dualstore

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/rs/zerolog"

	"github.com/suparena/dualstore/datastore"
	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/keys"
	"github.com/suparena/dualstore/naming"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// DefaultRemoteTimeout bounds every single remote call.
const DefaultRemoteTimeout = 15 * time.Second

// lastSyncedColumn is stamped on outgoing payloads when a collection allows it.
const lastSyncedColumn = "last_synced_at"

var (
	errRemoteInactive = stderrors.New("remote store inactive")
	errLocalOnly      = stderrors.New("collection is local-only")
)

// Store coordinates the local and remote tiers. The local tier is
// authoritative; the remote tier is consulted on local misses and receives
// best-effort copies of writes.
type Store struct {
	local         datastore.LocalStore
	remote        datastore.RemoteStore
	reg           *registry.Registry
	logger        zerolog.Logger
	remoteTimeout time.Duration
	now           func() time.Time

	// pending counts background remote deletes; idle is broadcast when it
	// drops to zero.
	mu      sync.Mutex
	idle    *sync.Cond
	pending int
}

// Option configures a Store
type Option func(*Store)

// WithRemote attaches the hosted tier. Without it every operation is local.
func WithRemote(remote datastore.RemoteStore) Option {
	return func(s *Store) {
		s.remote = remote
	}
}

// WithRegistry replaces registry.Default
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Store) {
		if reg != nil {
			s.reg = reg
		}
	}
}

// WithLogger sets the logger used for absorbed failures
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithRemoteTimeout bounds each remote call. Non-positive values are ignored.
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.remoteTimeout = d
		}
	}
}

// WithClock overrides time.Now for last_synced_at stamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store over local
func New(local datastore.LocalStore, opts ...Option) *Store {
	s := &Store{
		local:         local,
		reg:           registry.Default(),
		logger:        zerolog.Nop(),
		remoteTimeout: DefaultRemoteTimeout,
		now:           time.Now,
	}
	s.idle = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the registry the store routes by
func (s *Store) Registry() *registry.Registry {
	return s.reg
}

// syncedSchema returns the schema of c when its writes and misses go remote
// right now.
func (s *Store) syncedSchema(c registry.Collection) (registry.Schema, bool) {
	schema, ok := s.reg.Schema(c)
	if !ok || !schema.IsSynced() || s.remote == nil {
		return registry.Schema{}, false
	}
	if !s.remote.Active() {
		return registry.Schema{}, false
	}
	return schema, true
}

// Get returns the record stored under key, case-insensitively. A local miss
// falls back to the remote tier and hydrates the local tier on a hit. Every
// failure on the way is logged and reported as a miss.
func (s *Store) Get(ctx context.Context, c registry.Collection, key string) (storagemodels.Record, bool) {
	rec, err := s.local.Get(ctx, c, key)
	if err == nil {
		return rec, true
	}
	if !errors.IsNotFound(err) {
		s.logger.Warn().Str("collection", string(c)).Str("op", "get").Str("key", key).Err(err).
			Msg("local read failed, treating as miss")
	}

	schema, ok := s.syncedSchema(c)
	if !ok {
		return nil, false
	}

	rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	row, err := s.remote.FetchOne(rctx, c, naming.SnakeCase(schema.KeyPath), keys.Normalize(key))
	if err != nil {
		s.remoteFailed(c, "fetch", key, err)
		return nil, false
	}
	if row == nil {
		return nil, false
	}

	rec = prepare(schema, naming.RecordToApplication(row))
	if err := s.local.Put(ctx, c, rec); err != nil {
		s.logger.Warn().Str("collection", string(c)).Str("op", "hydrate").Str("key", key).Err(err).
			Msg("local hydration failed")
	}
	return rec, true
}

// Put writes rec locally and, for synced collections while the remote tier is
// active, sends the allow-listed fields upstream. Only local failures are
// returned.
func (s *Store) Put(ctx context.Context, c registry.Collection, rec storagemodels.Record) error {
	schema, ok := s.reg.Schema(c)
	if !ok {
		return errors.NewUnknownCollectionError(string(c))
	}
	if rec == nil {
		return errors.NewValidationError("", "record is nil")
	}
	key, ok := rec.KeyValue(schema.KeyPath)
	if !ok {
		return errors.NewKeyMissingError(string(c), schema.KeyPath)
	}

	rec = prepare(schema, rec.Clone())
	if err := s.local.Put(ctx, c, rec); err != nil {
		return err
	}

	synced, ok := s.syncedSchema(c)
	if !ok {
		return nil
	}

	payload := synced.Remote.Filter(naming.RecordToStorage(rec))
	if synced.Remote.Has(lastSyncedColumn) && payload[lastSyncedColumn] == nil {
		payload[lastSyncedColumn] = strfmt.DateTime(s.now().UTC()).String()
	}

	rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	if err := s.remote.Upsert(rctx, c, naming.SnakeCase(synced.KeyPath), payload); err != nil {
		s.remoteFailed(c, "upsert", key, err)
	}
	return nil
}

// Delete removes key locally and returns once that is done. The remote
// delete runs in the background; its outcome is only logged.
func (s *Store) Delete(ctx context.Context, c registry.Collection, key string) error {
	if err := s.local.Delete(ctx, c, key); err != nil {
		return err
	}

	schema, ok := s.syncedSchema(c)
	if !ok {
		return nil
	}

	keyColumn := naming.SnakeCase(schema.KeyPath)
	normalized := keys.Normalize(key)
	dctx := context.WithoutCancel(ctx)

	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
	go func() {
		defer s.deleteDone()

		rctx, cancel := context.WithTimeout(dctx, s.remoteTimeout)
		defer cancel()

		if err := s.remote.DeleteOne(rctx, c, keyColumn, normalized); err != nil {
			s.remoteFailed(c, "delete", key, err)
		}
	}()
	return nil
}

// GetAll returns every local record of c. It never consults the remote tier
// and never fails; errors are logged and yield an empty slice.
func (s *Store) GetAll(ctx context.Context, c registry.Collection) []storagemodels.Record {
	recs, err := s.local.GetAll(ctx, c)
	if err != nil {
		s.logger.Error().Str("collection", string(c)).Str("op", "getAll").Err(err).Msg("local scan failed")
		return []storagemodels.Record{}
	}
	if recs == nil {
		return []storagemodels.Record{}
	}
	return recs
}

// ClearStore empties c in the local tier only.
func (s *Store) ClearStore(ctx context.Context, c registry.Collection) error {
	return s.local.Clear(ctx, c)
}

// VerifyIntegrity opens (or migrates) the local tier and reports whether it is
// usable.
func (s *Store) VerifyIntegrity(ctx context.Context) bool {
	if err := s.local.Init(ctx); err != nil {
		s.logger.Error().Str("op", "init").Err(err).Msg("local store failed to open")
		return false
	}
	return s.local.Ready()
}

// Pull copies every remote row of c into the local tier. Rows the remote tier
// fails to deliver are logged and counted; a local write failure stops the
// pull and is returned.
func (s *Store) Pull(ctx context.Context, c registry.Collection, opts ...storagemodels.ScanOption) (storagemodels.PullStats, error) {
	var stats storagemodels.PullStats

	schema, ok := s.reg.Schema(c)
	if !ok {
		return stats, errors.NewUnknownCollectionError(string(c))
	}
	if !schema.IsSynced() {
		return stats, errors.NewRemoteError("pull", string(c), errLocalOnly)
	}
	if s.remote == nil || !s.remote.Active() {
		return stats, errors.NewRemoteError("pull", string(c), errRemoteInactive)
	}

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for result := range s.remote.Scan(sctx, c, opts...) {
		if result.Error != nil {
			stats.RemoteErrors++
			s.remoteFailed(c, "scan", "", result.Error)
			continue
		}
		stats.Fetched++

		rec := naming.RecordToApplication(result.Record)
		if _, ok := rec.KeyValue(schema.KeyPath); !ok {
			stats.Skipped++
			continue
		}
		if err := s.local.Put(ctx, c, prepare(schema, rec)); err != nil {
			return stats, err
		}
		stats.Hydrated++
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	s.logger.Info().Str("collection", string(c)).Int("fetched", stats.Fetched).
		Int("hydrated", stats.Hydrated).Int("remote_errors", stats.RemoteErrors).Msg("pull complete")
	return stats, nil
}

func (s *Store) deleteDone() {
	s.mu.Lock()
	s.pending--
	if s.pending == 0 {
		s.idle.Broadcast()
	}
	s.mu.Unlock()
}

// Wait blocks until every background remote delete has finished. It is safe
// to call while other goroutines are still issuing deletes.
func (s *Store) Wait() {
	s.mu.Lock()
	for s.pending > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

// Close waits for background work and closes the local tier.
func (s *Store) Close() error {
	s.Wait()
	return s.local.Close()
}

func (s *Store) remoteFailed(c registry.Collection, op, key string, err error) {
	s.logger.Warn().Str("collection", string(c)).Str("op", op).Str("key", key).Err(err).
		Msg("remote operation failed")
}

// prepare lower-cases the key field in place for collections that store it
// normalized.
func prepare(schema registry.Schema, rec storagemodels.Record) storagemodels.Record {
	if !schema.NormalizeKeyField {
		return rec
	}
	if key, ok := rec.KeyValue(schema.KeyPath); ok {
		rec[schema.KeyPath] = keys.Normalize(key)
	}
	return rec
}
