/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Shpi", "shpi"},
		{"SHPI", "shpi"},
		{"shpi", "shpi"},
		{"Çaj", "çaj"},
		{"NJË", "një"},
		{"ë", "ë"},
		{"DE\u0308", "d\u00eb"},
		{"", ""},
		{"Abc-123", "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{"Besa", "ËSHTË", "mixed Case Key"} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalizing twice should be a no-op for %q", s)
	}
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"string", "shpi", "shpi", true},
		{"empty string", "", "", false},
		{"integral float", float64(1700000000000), "1700000000000", true},
		{"fractional float", 1.5, "1.5", true},
		{"int", 42, "42", true},
		{"int64", int64(-7), "-7", true},
		{"json number", json.Number("99"), "99", true},
		{"nil", nil, "", false},
		{"bool", true, "", false},
		{"map", map[string]any{"a": 1}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromValue(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
