/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dualstore/storagemodels"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"word", "word"},
		{"definitionEnglish", "definition_english"},
		{"pronunciationNote", "pronunciation_note"},
		{"authorId", "author_id"},
		{"lastSyncedAt", "last_synced_at"},
		{"imageUrl", "image_url"},
		{"imageURL", "image_u_r_l"},
		{"Leading", "_leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"word", "word"},
		{"definition_english", "definitionEnglish"},
		{"part_of_speech", "partOfSpeech"},
		{"read_time", "readTime"},
		{"image_u_r_l", "imageURL"},
		{"trailing_", "trailing_"},
		{"double__under", "double_Under"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CamelCase(tt.in))
		})
	}
}

// Field names with digits next to an underscore are not guaranteed to
// survive a round trip; these cases pin the current behaviour.
func TestDigitAdjacentFieldNames(t *testing.T) {
	tests := []struct {
		name       string
		app        string
		storage    string
		backToApp  string
		roundTrips bool
	}{
		{"digit before capital", "v2Something", "v2_something", "v2Something", true},
		{"digit after underscore", "field_2", "field_2", "field_2", true},
		{"capital after digit", "level3Score", "level3_score", "level3Score", true},
		{"digit then underscore letter", "top10_list", "top10_list", "top10List", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.storage, SnakeCase(tt.app))
			assert.Equal(t, tt.backToApp, CamelCase(SnakeCase(tt.app)))
			assert.Equal(t, tt.roundTrips, CamelCase(SnakeCase(tt.app)) == tt.app)
		})
	}
}

func TestRecordToStorage_Nested(t *testing.T) {
	in := storagemodels.Record{
		"word":              "shpi",
		"definitionEnglish": "house",
		"examples": []any{
			map[string]any{"sentenceText": "Kjo është shpia ime.", "englishText": "This is my house."},
			"plain string",
			nil,
		},
		"metaInfo": map[string]any{
			"sourceBook": map[string]any{"pageNumber": float64(12)},
		},
		"emptyValue": nil,
	}

	got := RecordToStorage(in)

	assert.Equal(t, "house", got["definition_english"])
	assert.NotContains(t, got, "definitionEnglish")
	assert.Contains(t, got, "empty_value")
	assert.Nil(t, got["empty_value"])

	examples, ok := got["examples"].([]any)
	require.True(t, ok)
	require.Len(t, examples, 3)
	first, ok := examples[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "This is my house.", first["english_text"])
	assert.Equal(t, "plain string", examples[1])
	assert.Nil(t, examples[2])

	meta := got["meta_info"].(map[string]any)
	book := meta["source_book"].(map[string]any)
	assert.Equal(t, float64(12), book["page_number"])

	// the input is not modified
	assert.Contains(t, in, "definitionEnglish")
}

func TestRoundTrip(t *testing.T) {
	records := []storagemodels.Record{
		{
			"word":               "besa",
			"partOfSpeech":       "noun",
			"definitionStandard": "fjala e dhënë",
			"synonyms":           []any{"premtim"},
			"examples":           []any{map[string]any{"usageNote": "formal"}},
			"frequency":          float64(3),
			"verified":           true,
		},
		{
			"id":       "post-1",
			"readTime": float64(5),
			"imageUrl": "https://example.com/a.png",
			"tags":     []any{"gjuha", "kultura"},
			"author":   map[string]any{"displayName": "Ana", "socialLinks": []any{map[string]any{"siteName": "x"}}},
		},
		{},
	}

	for _, r := range records {
		assert.Equal(t, r, RecordToApplication(RecordToStorage(r)))
	}
}

func TestToStorage_Primitives(t *testing.T) {
	assert.Nil(t, ToStorage(nil))
	assert.Equal(t, "camelCase", ToStorage("camelCase"))
	assert.Equal(t, float64(1), ToStorage(float64(1)))
	assert.Equal(t, true, ToApplication(true))
	assert.Nil(t, RecordToStorage(nil))
	assert.Nil(t, RecordToApplication(nil))
}

func TestToApplication_TypedSlices(t *testing.T) {
	in := map[string]any{
		"rows": []map[string]any{{"user_name": "ana"}, nil},
	}
	got := ToApplication(in).(map[string]any)
	rows := got["rows"].([]map[string]any)
	assert.Equal(t, "ana", rows[0]["userName"])
	assert.Nil(t, rows[1])
}
