/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordClone(t *testing.T) {
	orig := Record{"word": "Shpi", "tags": []any{"a"}}
	c := orig.Clone()
	c["word"] = "shpi"

	assert.Equal(t, "Shpi", orig["word"], "clone must not alias the top-level map")
	assert.Nil(t, Record(nil).Clone())
}

func TestRecordKeyValue(t *testing.T) {
	rec := Record{"word": "besa", "id": float64(17), "empty": ""}

	key, ok := rec.KeyValue("word")
	assert.True(t, ok)
	assert.Equal(t, "besa", key)

	key, ok = rec.KeyValue("id")
	assert.True(t, ok)
	assert.Equal(t, "17", key)

	_, ok = rec.KeyValue("empty")
	assert.False(t, ok)

	_, ok = rec.KeyValue("missing")
	assert.False(t, ok)
}

func TestApplyScanOptions(t *testing.T) {
	opts := ApplyScanOptions()
	assert.Equal(t, DefaultScanOptions().PageSize, opts.PageSize)

	opts = ApplyScanOptions(
		WithPageSize(0),
		WithBufferSize(-3),
		WithMaxRetries(5),
		WithRetryBackoff(time.Millisecond),
	)
	assert.Equal(t, int32(100), opts.PageSize)
	assert.Equal(t, 0, opts.BufferSize)
	assert.Equal(t, 5, opts.MaxRetries)
	assert.Equal(t, time.Millisecond, opts.RetryBackoff)
}
