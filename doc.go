/*
Package dualstore provides a local-first storage layer that keeps an embedded
SQLite database as the authoritative hot cache and a hosted store (DynamoDB or
PostgreSQL) as eventually consistent cold storage.

Reads are served locally whenever possible. A local miss on a synced
collection falls back to the remote tier and hydrates the local tier with the
result. Writes land locally first; the allow-listed fields are then sent
upstream on a best-effort basis. Remote unavailability never blocks or fails
local work: remote errors are logged and absorbed.

Key Features:
  - Case-insensitive keys (Unicode NFC plus lower-casing) on both tiers
  - camelCase application naming, snake_case storage naming
  - Per-collection remote allow-lists; local-only collections never go remote
  - Fire-and-forget remote deletes
  - Versioned, idempotent local schema migrations
  - Typed collection views using Go generics

Basic Usage:

	local := sqlite.New(".dualstore/local.db", nil)
	remote, _ := ddb.NewFromCredentials(ctx, creds, ddb.WithSignal(connectivity.NewSwitch(true)))

	store := dualstore.New(local, dualstore.WithRemote(remote), dualstore.WithLogger(logger))
	defer store.Close()

	err := store.Put(ctx, registry.Dictionary, storagemodels.Record{"word": "Shpi", "definitionEnglish": "house"})
	rec, ok := store.Get(ctx, registry.Dictionary, "SHPI")

	words := dualstore.For[models.DictionaryEntry](store)
	entry, ok, err := words.Get(ctx, "shpi")
*/
package dualstore
