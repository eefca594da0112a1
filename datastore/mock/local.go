/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/keys"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// Local is an in-memory implementation of datastore.LocalStore with fault
// injection for local failure tests.
type Local struct {
	mu        sync.RWMutex
	reg       *registry.Registry
	ready     bool
	data      map[registry.Collection]map[string]storagemodels.Record
	initErr   error
	getErr    error
	getAllErr error
	putErr    error
	deleteErr error
	clearErr  error
	puts      int
}

// NewLocal creates an empty mock local store for reg (registry.Default when nil)
func NewLocal(reg *registry.Registry) *Local {
	if reg == nil {
		reg = registry.Default()
	}
	return &Local{
		reg:  reg,
		data: make(map[registry.Collection]map[string]storagemodels.Record),
	}
}

// WithInitError makes Init and every operation fail with err
func (m *Local) WithInitError(err error) *Local {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initErr = err
	return m
}

// WithGetError makes Get return err
func (m *Local) WithGetError(err error) *Local {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
	return m
}

// WithGetAllError makes GetAll return err
func (m *Local) WithGetAllError(err error) *Local {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getAllErr = err
	return m
}

// WithPutError makes Put return err
func (m *Local) WithPutError(err error) *Local {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
	return m
}

// WithDeleteError makes Delete return err
func (m *Local) WithDeleteError(err error) *Local {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
	return m
}

// WithClearError makes Clear return err
func (m *Local) WithClearError(err error) *Local {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearErr = err
	return m
}

// Init marks the store ready unless an init error is configured
func (m *Local) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initLocked()
}

func (m *Local) initLocked() error {
	if m.initErr != nil {
		return m.initErr
	}
	m.ready = true
	return nil
}

// Ready reports whether Init has succeeded
func (m *Local) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Close marks the store closed; later operations reopen it
func (m *Local) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = false
	return nil
}

// Get retrieves a record by normalized key
func (m *Local) Get(ctx context.Context, c registry.Collection, key string) (storagemodels.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.schema(c); err != nil {
		return nil, err
	}
	if err := m.initLocked(); err != nil {
		return nil, err
	}
	if m.getErr != nil {
		return nil, m.getErr
	}

	rec, ok := m.data[c][keys.Normalize(key)]
	if !ok {
		return nil, errors.NewNotFoundError(string(c), key)
	}
	return rec.Clone(), nil
}

// Put stores a record under its normalized key
func (m *Local) Put(ctx context.Context, c registry.Collection, rec storagemodels.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	schema, err := m.schema(c)
	if err != nil {
		return err
	}
	key, ok := rec.KeyValue(schema.KeyPath)
	if !ok {
		return errors.NewKeyMissingError(string(c), schema.KeyPath)
	}
	if err := m.initLocked(); err != nil {
		return err
	}
	if m.putErr != nil {
		return m.putErr
	}

	if m.data[c] == nil {
		m.data[c] = make(map[string]storagemodels.Record)
	}
	m.data[c][keys.Normalize(key)] = rec.Clone()
	m.puts++
	return nil
}

// GetAll returns every record in c ordered by key
func (m *Local) GetAll(ctx context.Context, c registry.Collection) ([]storagemodels.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.schema(c); err != nil {
		return nil, err
	}
	if err := m.initLocked(); err != nil {
		return nil, err
	}
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}

	ordered := make([]string, 0, len(m.data[c]))
	for k := range m.data[c] {
		ordered = append(ordered, k)
	}
	sort.Strings(ordered)

	out := make([]storagemodels.Record, 0, len(ordered))
	for _, k := range ordered {
		out = append(out, m.data[c][k].Clone())
	}
	return out, nil
}

// Delete removes a record; an absent key is not an error
func (m *Local) Delete(ctx context.Context, c registry.Collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.schema(c); err != nil {
		return err
	}
	if err := m.initLocked(); err != nil {
		return err
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}

	delete(m.data[c], keys.Normalize(key))
	return nil
}

// Clear removes every record in c
func (m *Local) Clear(ctx context.Context, c registry.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.schema(c); err != nil {
		return err
	}
	if err := m.initLocked(); err != nil {
		return err
	}
	if m.clearErr != nil {
		return m.clearErr
	}

	delete(m.data, c)
	return nil
}

// Helper methods for testing

// Count returns the number of records in c
func (m *Local) Count(c registry.Collection) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[c])
}

// PutCount returns how many Put calls succeeded
func (m *Local) PutCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

func (m *Local) schema(c registry.Collection) (registry.Schema, error) {
	s, ok := m.reg.Schema(c)
	if !ok {
		return registry.Schema{}, errors.NewUnknownCollectionError(string(c))
	}
	return s, nil
}
