/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "github.com/suparena/dualstore/keys"

// Record is a plain structured value stored in a collection. Its shape is
// collection specific and opaque to the sync layer.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// KeyValue returns the value at keyPath rendered as a key, and whether it is usable.
func (r Record) KeyValue(keyPath string) (string, bool) {
	v, ok := r[keyPath]
	if !ok {
		return "", false
	}
	return keys.FromValue(v)
}

// PullStats summarizes a bulk hydration of one collection.
type PullStats struct {
	// Fetched is the number of remote rows received.
	Fetched int
	// Hydrated is the number of rows written to the local store.
	Hydrated int
	// Skipped counts rows without a usable key.
	Skipped int
	// RemoteErrors counts page or row failures reported by the remote scan.
	RemoteErrors int
}
