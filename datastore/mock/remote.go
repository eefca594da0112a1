/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of the datastore interfaces for testing
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/keys"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// Remote operation names recorded in Call.Op.
const (
	OpFetch  = "fetch"
	OpUpsert = "upsert"
	OpDelete = "delete"
	OpScan   = "scan"
)

// Call records one invocation of a Remote method.
type Call struct {
	Op         string
	Collection registry.Collection
	KeyColumn  string
	Key        string
	Record     storagemodels.Record
}

// Remote is a mock implementation of datastore.RemoteStore that records every
// call and can be told to fail or stall.
type Remote struct {
	mu        sync.Mutex
	active    bool
	rows      map[registry.Collection]map[string]storagemodels.Record
	calls     []Call
	fetchErr  error
	upsertErr error
	deleteErr error
	scanErr   error
	delay     time.Duration
}

// NewRemote creates an active, empty mock remote store
func NewRemote() *Remote {
	return &Remote{
		active: true,
		rows:   make(map[registry.Collection]map[string]storagemodels.Record),
	}
}

// SetActive flips the connectivity state reported by Active
func (m *Remote) SetActive(active bool) *Remote {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = active
	return m
}

// WithFetchError makes FetchOne return err
func (m *Remote) WithFetchError(err error) *Remote {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
	return m
}

// WithUpsertError makes Upsert return err
func (m *Remote) WithUpsertError(err error) *Remote {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertErr = err
	return m
}

// WithDeleteError makes DeleteOne return err
func (m *Remote) WithDeleteError(err error) *Remote {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
	return m
}

// WithScanError makes Scan emit err before any row
func (m *Remote) WithScanError(err error) *Remote {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanErr = err
	return m
}

// WithDelay stalls every operation for d, or until the context ends
func (m *Remote) WithDelay(d time.Duration) *Remote {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// Seed stores rec under key without recording a call
func (m *Remote) Seed(c registry.Collection, key string, rec storagemodels.Record) *Remote {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table(c)[keys.Normalize(key)] = rec.Clone()
	return m
}

// Active reports the state set by SetActive
func (m *Remote) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// FetchOne returns the row whose key matches case-insensitively
func (m *Remote) FetchOne(ctx context.Context, c registry.Collection, keyColumn, key string) (storagemodels.Record, error) {
	delay, injected := m.record(Call{Op: OpFetch, Collection: c, KeyColumn: keyColumn, Key: key}, func() error { return m.fetchErr })
	if err := wait(ctx, delay, OpFetch, c); err != nil {
		return nil, err
	}
	if injected != nil {
		return nil, injected
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.table(c)[keys.Normalize(key)]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

// Upsert stores rec under the value of its key column
func (m *Remote) Upsert(ctx context.Context, c registry.Collection, keyColumn string, rec storagemodels.Record) error {
	key, _ := rec.KeyValue(keyColumn)
	delay, injected := m.record(Call{Op: OpUpsert, Collection: c, KeyColumn: keyColumn, Key: key, Record: rec.Clone()}, func() error { return m.upsertErr })
	if err := wait(ctx, delay, OpUpsert, c); err != nil {
		return err
	}
	if injected != nil {
		return injected
	}
	if key == "" {
		return errors.NewRemoteError(OpUpsert, string(c), errors.NewKeyMissingError(string(c), keyColumn))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.table(c)[keys.Normalize(key)] = rec.Clone()
	return nil
}

// DeleteOne removes the row whose key matches case-insensitively
func (m *Remote) DeleteOne(ctx context.Context, c registry.Collection, keyColumn, key string) error {
	delay, injected := m.record(Call{Op: OpDelete, Collection: c, KeyColumn: keyColumn, Key: key}, func() error { return m.deleteErr })
	if err := wait(ctx, delay, OpDelete, c); err != nil {
		return err
	}
	if injected != nil {
		return injected
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.table(c), keys.Normalize(key))
	return nil
}

// Scan streams every row of c in key order
func (m *Remote) Scan(ctx context.Context, c registry.Collection, opts ...storagemodels.ScanOption) <-chan storagemodels.ScanResult {
	options := storagemodels.ApplyScanOptions(opts...)
	delay, scanErr := m.record(Call{Op: OpScan, Collection: c}, func() error { return m.scanErr })

	m.mu.Lock()
	table := m.table(c)
	ordered := make([]string, 0, len(table))
	for k := range table {
		ordered = append(ordered, k)
	}
	sort.Strings(ordered)
	rows := make([]storagemodels.Record, 0, len(ordered))
	for _, k := range ordered {
		rows = append(rows, table[k].Clone())
	}
	m.mu.Unlock()

	resultChan := make(chan storagemodels.ScanResult, options.BufferSize)

	go func() {
		defer close(resultChan)

		if err := wait(ctx, delay, OpScan, c); err != nil {
			return
		}

		if scanErr != nil {
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.ScanResult{Error: scanErr, Meta: storagemodels.ScanMeta{PageNumber: 1, Timestamp: time.Now()}}:
			}
		}

		for i, rec := range rows {
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.ScanResult{
				Record: rec,
				Meta: storagemodels.ScanMeta{
					Index:      int64(i),
					PageNumber: i/int(options.PageSize) + 1,
					Timestamp:  time.Now(),
				},
			}:
			}
		}
	}()

	return resultChan
}

// Helper methods for testing

// Calls returns a copy of the call log
func (m *Remote) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times op was invoked
func (m *Remote) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Upserts returns the payloads passed to Upsert, in call order
func (m *Remote) Upserts() []storagemodels.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storagemodels.Record
	for _, c := range m.calls {
		if c.Op == OpUpsert {
			out = append(out, c.Record)
		}
	}
	return out
}

// Row returns the stored row for key, if any
func (m *Remote) Row(c registry.Collection, key string) (storagemodels.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.table(c)[keys.Normalize(key)]
	return rec.Clone(), ok
}

// Reset clears the call log
func (m *Remote) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Remote) record(call Call, injected func() error) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.delay, injected()
}

func (m *Remote) table(c registry.Collection) map[string]storagemodels.Record {
	t, ok := m.rows[c]
	if !ok {
		t = make(map[string]storagemodels.Record)
		m.rows[c] = t
	}
	return t
}

func wait(ctx context.Context, d time.Duration, op string, c registry.Collection) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errors.NewRemoteError(op, string(c), ctx.Err())
	case <-timer.C:
		return nil
	}
}
