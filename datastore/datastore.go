/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// LocalStore is the embedded, always-available tier. Keys passed in are raw;
// implementations normalize them.
type LocalStore interface {
	Init(ctx context.Context) error

	Get(ctx context.Context, c registry.Collection, key string) (storagemodels.Record, error)

	Put(ctx context.Context, c registry.Collection, rec storagemodels.Record) error

	GetAll(ctx context.Context, c registry.Collection) ([]storagemodels.Record, error)

	Delete(ctx context.Context, c registry.Collection, key string) error

	Clear(ctx context.Context, c registry.Collection) error

	Ready() bool

	Close() error
}

// RemoteStore is the hosted tier. Records crossing this interface use storage
// (underscore) naming and keys are already normalized. Implementations report
// every failure and leave degradation policy to the caller.
type RemoteStore interface {
	// Active reports whether a client exists and the device is online. It is
	// evaluated on every call.
	Active() bool

	// FetchOne returns nil, nil when no row matches.
	FetchOne(ctx context.Context, c registry.Collection, keyColumn, key string) (storagemodels.Record, error)

	Upsert(ctx context.Context, c registry.Collection, keyColumn string, rec storagemodels.Record) error

	DeleteOne(ctx context.Context, c registry.Collection, keyColumn, key string) error

	Scan(ctx context.Context, c registry.Collection, opts ...storagemodels.ScanOption) <-chan storagemodels.ScanResult
}
