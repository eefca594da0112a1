/*
Package sqlite implements the local store on an embedded SQLite database.

The database holds one table per registered collection:

	CREATE TABLE IF NOT EXISTS <collection> (
	    key TEXT PRIMARY KEY,   -- normalized record key
	    record TEXT NOT NULL,   -- JSON body
	    updated_at TEXT NOT NULL
	);

The handle is opened lazily with WAL journaling and migrated to SchemaVersion
using PRAGMA user_version. A file stamped with a newer version is refused with
ErrSchemaTooNew rather than downgraded.

	local := sqlite.New(".dualstore/local.db", registry.Default())
	defer local.Close()

	if err := local.Init(ctx); err != nil {
	    return err
	}
*/
package sqlite
