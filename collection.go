/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dualstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// Model is a typed record that knows its collection.
type Model interface {
	Collection() registry.Collection
}

// Collection provides type-safe access to one collection of a Store.
// Values are converted to and from records through their JSON encoding.
type Collection[T any] struct {
	store *Store
	name  registry.Collection
}

// NewCollection returns a typed view of collection c
func NewCollection[T any](s *Store, c registry.Collection) *Collection[T] {
	return &Collection[T]{store: s, name: c}
}

// For returns a typed view of the collection T belongs to
func For[T Model](s *Store) *Collection[T] {
	var zero T
	return NewCollection[T](s, zero.Collection())
}

// Name returns the collection the view reads and writes
func (c *Collection[T]) Name() registry.Collection {
	return c.name
}

// Get returns the value stored under key. The bool reports a hit; the error
// is only set when a stored record cannot be decoded into T.
func (c *Collection[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	rec, ok := c.store.Get(ctx, c.name, key)
	if !ok {
		return zero, false, nil
	}
	v, err := FromRecord[T](rec)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Put stores v
func (c *Collection[T]) Put(ctx context.Context, v T) error {
	rec, err := ToRecord(v)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, c.name, rec)
}

// Delete removes the value stored under key
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.name, key)
}

// All returns every locally stored value
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	recs := c.store.GetAll(ctx, c.name)
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := FromRecord[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Clear empties the collection locally
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.store.ClearStore(ctx, c.name)
}

// ToRecord converts v into a record through its JSON encoding
func ToRecord(v any) (storagemodels.Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	var rec storagemodels.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%T does not encode as a JSON object: %w", v, err)
	}
	return rec, nil
}

// FromRecord decodes rec into a T
func FromRecord[T any](rec storagemodels.Record) (T, error) {
	var v T
	raw, err := json.Marshal(rec)
	if err != nil {
		return v, fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("failed to decode record into %T: %w", v, err)
	}
	return v, nil
}
