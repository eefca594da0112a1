/*
Package pg provides a PostgreSQL implementation of the RemoteStore interface on GORM.

Tables are named after collections and their columns are the allow-listed
fields. Lookups and deletes compare lower(CAST(key_column AS text)) with the
normalized key, so integer and uuid key columns work too;
writes are INSERT ... ON CONFLICT (key_column) DO UPDATE. Nested values are sent
as JSON text and json/jsonb columns are decoded on read.

	remote, err := pg.Open(os.Getenv("DUALSTORE_POSTGRES_DSN"), pg.WithSignal(probe))
	if err != nil {
	    return err
	}
	defer remote.Close()
*/
package pg
