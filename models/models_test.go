/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dualstore/naming"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

type collectionModel interface {
	Collection() registry.Collection
}

func TestEveryModelHasRegisteredCollection(t *testing.T) {
	reg := registry.Default()
	all := []collectionModel{
		DictionaryEntry{}, DailyData{}, BlogPost{}, Score{}, Transaction{},
		GlossaryTerm{}, Product{}, AuditLog{}, AlphabetLetter{},
	}
	seen := map[registry.Collection]bool{}
	for _, m := range all {
		_, ok := reg.Schema(m.Collection())
		assert.True(t, ok, "%T", m)
		seen[m.Collection()] = true
	}
	assert.Len(t, seen, len(registry.All))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

// toRecord mirrors how typed values become records.
func toRecord(t *testing.T, v any) storagemodels.Record {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var rec storagemodels.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	return rec
}

// The JSON field names of every synced model must map onto its remote allow-list.
func TestSyncedModelFieldsMatchAllowList(t *testing.T) {
	synced := strfmt.DateTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	samples := []collectionModel{
		DictionaryEntry{
			Word: "shpi", Phonetic: "ʃpi", PronunciationNote: "n", PartOfSpeech: "noun",
			DefinitionEnglish: "house", DefinitionStandard: "shtëpi", Etymology: "e", Frequency: 1,
			UsageNote: "u", Synonyms: []string{"shtëpi"}, Antonyms: []string{"x"},
			Examples: []UsageExample{{Sentence: "s"}}, Status: "approved", Source: "user",
			AuthorID: "a1", LastSyncedAt: &synced,
		},
		DailyData{ID: "word-2025-01-01", Date: strfmt.Date(time.Now()), Data: map[string]any{"k": "v"}},
		BlogPost{ID: "b1", Title: "t", Excerpt: "e", Content: "c", Author: "a",
			Date: strfmt.Date(time.Now()), ReadTime: "5 min", Tags: []string{"x"}, ImageURL: "https://example.com/i.png"},
		Score{ID: "s1", Name: "n", Score: 3, Date: strfmt.DateTime(time.Now()), Mode: "quiz"},
		Transaction{ID: "t1", UserID: "u1", UserName: "n", Amount: 100, Tier: "pro", Method: "card",
			Timestamp: strfmt.DateTime(time.Now())},
	}

	reg := registry.Default()
	for _, m := range samples {
		cols, ok := reg.ColumnsFor(m.Collection())
		require.True(t, ok)

		storage := naming.RecordToStorage(toRecord(t, m))
		for field := range storage {
			assert.True(t, cols.Has(field), "%T field %q is not allow-listed", m, field)
		}
		assert.Equal(t, cols.Len(), len(storage), "%T should populate every remote column", m)
	}
}

func TestLocalOnlyFieldsStayLocal(t *testing.T) {
	cols, _ := registry.Default().ColumnsFor(registry.Dictionary)
	rec := naming.RecordToStorage(toRecord(t, DictionaryEntry{Word: "besa", Bookmarked: true}))
	assert.NotContains(t, cols.Filter(rec), "bookmarked")
	assert.Contains(t, rec, "bookmarked")
}
