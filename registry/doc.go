/*
Package registry declares the collections dualstore knows about.

Each collection has a key path and, when it is synced, an allow-list of remote
columns in underscore form. Fields outside the allow-list are still stored
locally in full but never leave the device.

	reg := registry.Default()
	cols, ok := reg.ColumnsFor(registry.Dictionary)
	if ok {
	    payload = cols.Filter(payload)
	}

Every schema is declared with Synced or LocalOnly so adding a collection forces
an explicit decision:

	registry.New(map[registry.Collection]registry.Schema{
	    "notes":  registry.Synced("id", "id", "title", "body"),
	    "drafts": registry.LocalOnly("id"),
	})

A Registry is immutable after construction and safe for concurrent use.
*/
package registry
