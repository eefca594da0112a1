/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dualstore/datastore"
	"github.com/suparena/dualstore/datastore/mock"
	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

var (
	_ datastore.RemoteStore = (*mock.Remote)(nil)
	_ datastore.LocalStore  = (*mock.Local)(nil)
)

func TestRemote_BasicOperations(t *testing.T) {
	ctx := context.Background()
	remote := mock.NewRemote()
	assert.True(t, remote.Active())

	require.NoError(t, remote.Upsert(ctx, registry.Dictionary, "word", storagemodels.Record{"word": "Besa", "phonetic": "be-sa"}))

	got, err := remote.FetchOne(ctx, registry.Dictionary, "word", "besa")
	require.NoError(t, err)
	assert.Equal(t, "be-sa", got["phonetic"])

	got, err = remote.FetchOne(ctx, registry.Dictionary, "word", "absent")
	require.NoError(t, err)
	assert.Nil(t, got, "a miss is nil, nil")

	require.NoError(t, remote.DeleteOne(ctx, registry.Dictionary, "word", "BESA"))
	_, ok := remote.Row(registry.Dictionary, "besa")
	assert.False(t, ok)

	assert.Equal(t, 1, remote.CallCount(mock.OpUpsert))
	assert.Equal(t, 2, remote.CallCount(mock.OpFetch))
	assert.Equal(t, 1, remote.CallCount(mock.OpDelete))
	require.Len(t, remote.Upserts(), 1)
	assert.Equal(t, "Besa", remote.Upserts()[0]["word"])

	remote.Reset()
	assert.Empty(t, remote.Calls())
}

func TestRemote_ErrorSimulation(t *testing.T) {
	ctx := context.Background()
	fetchErr := errors.NewRemoteError("fetch", "dictionary", assert.AnError)
	upsertErr := errors.NewRemoteError("upsert", "dictionary", assert.AnError)
	deleteErr := errors.NewRemoteError("delete", "dictionary", assert.AnError)

	remote := mock.NewRemote().
		WithFetchError(fetchErr).
		WithUpsertError(upsertErr).
		WithDeleteError(deleteErr)

	_, err := remote.FetchOne(ctx, registry.Dictionary, "word", "x")
	assert.Equal(t, fetchErr, err)
	assert.Equal(t, upsertErr, remote.Upsert(ctx, registry.Dictionary, "word", storagemodels.Record{"word": "x"}))
	assert.Equal(t, deleteErr, remote.DeleteOne(ctx, registry.Dictionary, "word", "x"))

	_, ok := remote.Row(registry.Dictionary, "x")
	assert.False(t, ok, "a failed upsert stores nothing")
	assert.Len(t, remote.Calls(), 3, "failed calls are still recorded")
}

func TestRemote_DelayHonoursContext(t *testing.T) {
	remote := mock.NewRemote().WithDelay(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := remote.DeleteOne(ctx, registry.Scores, "id", "s1")
	require.Error(t, err)
	assert.True(t, errors.IsRemote(err))
}

func TestRemote_Scan(t *testing.T) {
	ctx := context.Background()
	remote := mock.NewRemote().
		Seed(registry.Scores, "b", storagemodels.Record{"id": "b"}).
		Seed(registry.Scores, "a", storagemodels.Record{"id": "a"}).
		Seed(registry.Scores, "c", storagemodels.Record{"id": "c"})

	var ids []any
	var pages []int
	for res := range remote.Scan(ctx, registry.Scores, storagemodels.WithPageSize(2)) {
		require.NoError(t, res.Error)
		ids = append(ids, res.Record["id"])
		pages = append(pages, res.Meta.PageNumber)
	}
	assert.Equal(t, []any{"a", "b", "c"}, ids)
	assert.Equal(t, []int{1, 1, 2}, pages)
}

func TestRemote_ScanError(t *testing.T) {
	remote := mock.NewRemote().
		Seed(registry.Scores, "a", storagemodels.Record{"id": "a"}).
		WithScanError(assert.AnError)

	var errs, rows int
	for res := range remote.Scan(context.Background(), registry.Scores) {
		if res.Error != nil {
			errs++
			continue
		}
		rows++
	}
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, rows)
}

func TestLocal_BasicOperations(t *testing.T) {
	ctx := context.Background()
	local := mock.NewLocal(nil)
	assert.False(t, local.Ready())

	require.NoError(t, local.Put(ctx, registry.Blog, storagemodels.Record{"id": "Post-1", "title": "t"}))
	assert.True(t, local.Ready(), "operations open the store lazily")

	got, err := local.Get(ctx, registry.Blog, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "t", got["title"])

	_, err = local.Get(ctx, registry.Blog, "absent")
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, local.Delete(ctx, registry.Blog, "POST-1"))
	require.NoError(t, local.Delete(ctx, registry.Blog, "POST-1"))
	assert.Equal(t, 0, local.Count(registry.Blog))

	err = local.Put(ctx, registry.Blog, storagemodels.Record{"title": "no id"})
	assert.True(t, errors.IsKeyMissing(err))

	_, err = local.Get(ctx, registry.Collection("widgets"), "a")
	assert.True(t, errors.IsUnknownCollection(err))
}

func TestLocal_FaultInjection(t *testing.T) {
	ctx := context.Background()
	boom := errors.NewLocalError("put", "blog", assert.AnError)

	local := mock.NewLocal(nil).WithPutError(boom)
	assert.Equal(t, boom, local.Put(ctx, registry.Blog, storagemodels.Record{"id": "1"}))
	assert.Equal(t, 0, local.PutCount())

	local = mock.NewLocal(nil).WithInitError(boom)
	assert.Equal(t, boom, local.Init(ctx))
	_, err := local.GetAll(ctx, registry.Blog)
	assert.Equal(t, boom, err)
	assert.False(t, local.Ready())
}
