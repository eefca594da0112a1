/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/suparena/dualstore/connectivity"
	"github.com/suparena/dualstore/datastore"
	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

var _ datastore.RemoteStore = (*Store)(nil)

// dryRunDB builds statements without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=dualstore dbname=dualstore sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestFetchQuery(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]any
		return fetchQuery(tx, registry.Dictionary, "word", "SHPI").Find(&rows)
	})

	assert.Contains(t, sql, `FROM "dictionary"`)
	assert.Contains(t, sql, `WHERE lower(CAST("word" AS text)) = 'shpi'`)
	assert.Contains(t, sql, "LIMIT 1")
}

func TestUpsertQuery(t *testing.T) {
	db := dryRunDB(t)
	row, err := encodeRow(storagemodels.Record{
		"word":     "shpi",
		"phonetic": "shpi",
		"synonyms": []any{"banesë"},
	})
	require.NoError(t, err)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertQuery(tx, registry.Dictionary, "word", row)
	})

	assert.Contains(t, sql, `INSERT INTO "dictionary"`)
	assert.Contains(t, sql, `ON CONFLICT ("word") DO UPDATE SET`)
	assert.Contains(t, sql, `"phonetic"="excluded"."phonetic"`)
	assert.Contains(t, sql, `"synonyms"="excluded"."synonyms"`)
	assert.NotContains(t, sql, `"word"="excluded"."word"`)
	assert.Contains(t, sql, `'["banesë"]'`)
}

func TestUpsertQuery_KeyOnly(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertQuery(tx, registry.Scores, "id", map[string]any{"id": "s1"})
	})
	assert.Contains(t, sql, `ON CONFLICT ("id") DO NOTHING`)
}

func TestDeleteQuery(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return deleteQuery(tx, registry.Scores, "id", "S1")
	})
	assert.Equal(t, `DELETE FROM "scores" WHERE lower(CAST("id" AS text)) = 's1'`, sql)
}

func TestKeyQueries_IntegerKeyColumn(t *testing.T) {
	db := dryRunDB(t)

	fetch := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]any
		return fetchQuery(tx, registry.Scores, "id", "42").Find(&rows)
	})
	assert.Contains(t, fetch, `WHERE lower(CAST("id" AS text)) = '42'`)
	assert.NotContains(t, fetch, `lower("id")`)

	del := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return deleteQuery(tx, registry.Scores, "id", "42")
	})
	assert.Equal(t, `DELETE FROM "scores" WHERE lower(CAST("id" AS text)) = '42'`, del)
}

func TestPageQuery(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]any
		return pageQuery(tx, registry.Scores, "id", 4, 2).Find(&rows)
	})
	assert.Contains(t, sql, `ORDER BY "id"`)
	assert.Contains(t, sql, "LIMIT 2")
	assert.Contains(t, sql, "OFFSET 4")
}

func TestEncodeRow(t *testing.T) {
	row, err := encodeRow(storagemodels.Record{
		"id":        "b1",
		"tags":      []any{"a", "b"},
		"data":      map[string]any{"k": 1},
		"read_time": 5,
		"image_url": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "b1", row["id"])
	assert.Equal(t, `["a","b"]`, row["tags"])
	assert.Equal(t, `{"k":1}`, row["data"])
	assert.Equal(t, 5, row["read_time"])
	assert.Nil(t, row["image_url"])
}

func TestDecodeValue(t *testing.T) {
	v, err := decodeValue("JSONB", []byte(`["a",{"b":2}]`))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", map[string]any{"b": float64(2)}}, v)

	v, err = decodeValue("json", `{"k":"v"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, v)

	v, err = decodeValue("TEXT", []byte(`["not decoded"]`))
	require.NoError(t, err)
	assert.Equal(t, `["not decoded"]`, v)

	v, err = decodeValue("TIMESTAMPTZ", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02T03:04:05.000Z", v)

	v, err = decodeValue("INT8", int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = decodeValue("JSONB", []byte(`{broken`))
	assert.Error(t, err)
}

func TestActiveAndNoClient(t *testing.T) {
	ctx := context.Background()
	sw := connectivity.NewSwitch(false)

	s := New(dryRunDB(t), WithSignal(sw))
	assert.False(t, s.Active())
	sw.Set(true)
	assert.True(t, s.Active())

	none := New(nil)
	assert.False(t, none.Active())
	_, err := none.FetchOne(ctx, registry.Scores, "id", "a")
	assert.True(t, errors.IsRemote(err))
	assert.True(t, errors.IsRemote(none.Upsert(ctx, registry.Scores, "id", storagemodels.Record{"id": "a"})))
	assert.True(t, errors.IsRemote(none.DeleteOne(ctx, registry.Scores, "id", "a")))

	var results []storagemodels.ScanResult
	for r := range none.Scan(ctx, registry.Scores) {
		results = append(results, r)
	}
	require.Len(t, results, 1)
	assert.True(t, errors.IsRemote(results[0].Error))
}

func TestUpsert_KeyMissing(t *testing.T) {
	s := New(dryRunDB(t))
	err := s.Upsert(context.Background(), registry.Scores, "id", storagemodels.Record{"score": 1})
	assert.True(t, errors.IsRemote(err))
	assert.True(t, errors.IsKeyMissing(err))
}
