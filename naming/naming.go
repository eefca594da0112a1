/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package naming translates record field names between the application
// convention (definitionEnglish) and the storage convention
// (definition_english) when records cross the local/remote boundary.
//
// Both directions are structural rewrites over plain data: maps have their
// keys rewritten and their values visited, slices have their elements
// visited, and every other value is returned untouched.
package naming

import (
	"strings"

	"github.com/suparena/dualstore/storagemodels"
)

// SnakeCase rewrites every upper-case ASCII letter as "_" followed by its
// lower-case form.
func SnakeCase(s string) string {
	if !hasUpper(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelCase rewrites every "_" followed by a lower-case ASCII letter as the
// upper-case letter. Any other underscore is kept, so "field_2" is unchanged.
func CamelCase(s string) string {
	if strings.IndexByte(s, '_') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && 'a' <= s[i+1] && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

// ToStorage returns a copy of v with every object key in storage naming.
func ToStorage(v any) any {
	return rewrite(v, SnakeCase)
}

// ToApplication returns a copy of v with every object key in application naming.
func ToApplication(v any) any {
	return rewrite(v, CamelCase)
}

// RecordToStorage is ToStorage for a top-level record.
func RecordToStorage(r storagemodels.Record) storagemodels.Record {
	if r == nil {
		return nil
	}
	return rewriteMap(r, SnakeCase)
}

// RecordToApplication is ToApplication for a top-level record.
func RecordToApplication(r storagemodels.Record) storagemodels.Record {
	if r == nil {
		return nil
	}
	return rewriteMap(r, CamelCase)
}

func rewrite(v any, key func(string) string) any {
	switch tv := v.(type) {
	case storagemodels.Record:
		if tv == nil {
			return tv
		}
		return rewriteMap(tv, key)
	case map[string]any:
		if tv == nil {
			return tv
		}
		return map[string]any(rewriteMap(tv, key))
	case []any:
		if tv == nil {
			return tv
		}
		out := make([]any, len(tv))
		for i, elem := range tv {
			out[i] = rewrite(elem, key)
		}
		return out
	case []map[string]any:
		if tv == nil {
			return tv
		}
		out := make([]map[string]any, len(tv))
		for i, elem := range tv {
			if elem != nil {
				out[i] = rewriteMap(elem, key)
			}
		}
		return out
	default:
		return v
	}
}

func rewriteMap(m map[string]any, key func(string) string) storagemodels.Record {
	out := make(storagemodels.Record, len(m))
	for k, v := range m {
		out[key(k)] = rewrite(v, key)
	}
	return out
}
