/*
Package datastore defines the storage tier interfaces used by the dualstore orchestrator.

LocalStore is the embedded tier. It owns its engine handle, opens it lazily and
migrates the schema on Init:

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

RemoteStore is the hosted tier, reachable only when a client was built and the
device is online:

	type RemoteStore interface {
	    Active() bool
	    FetchOne(ctx context.Context, c registry.Collection, keyColumn, key string) (storagemodels.Record, error)
	    Upsert(ctx context.Context, c registry.Collection, keyColumn string, rec storagemodels.Record) error
	    DeleteOne(ctx context.Context, c registry.Collection, keyColumn, key string) error
	    Scan(ctx context.Context, c registry.Collection, opts ...storagemodels.ScanOption) <-chan storagemodels.ScanResult
	}

Implementations:
  - sqlite: embedded SQLite local store with versioned migrations
  - ddb: DynamoDB remote store
  - pg: PostgreSQL remote store on GORM
  - mock: in-memory local and remote stores for testing
*/
package datastore
