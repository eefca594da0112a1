/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package keys canonicalizes record identifiers so that lookups are
// case-insensitive on both storage tiers.
package keys

import (
	"encoding/json"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize composes key to NFC and lower-cases it. "Shpi", "SHPI" and "shpi"
// all normalize to "shpi"; a decomposed "e" + U+0308 becomes "ë".
func Normalize(key string) string {
	// A Caser holds state and must not be shared between goroutines.
	return cases.Lower(language.Und).String(norm.NFC.String(key))
}

// FromValue renders the value found at a record's key path as a string key.
// Strings and numbers are accepted; empty strings, nil, booleans and
// composite values are not usable keys.
func FromValue(v any) (string, bool) {
	switch tv := v.(type) {
	case string:
		return tv, tv != ""
	case json.Number:
		return tv.String(), tv != ""
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(tv), 'f', -1, 32), true
	case int:
		return strconv.Itoa(tv), true
	case int32:
		return strconv.FormatInt(int64(tv), 10), true
	case int64:
		return strconv.FormatInt(tv, 10), true
	case uint:
		return strconv.FormatUint(uint64(tv), 10), true
	case uint32:
		return strconv.FormatUint(uint64(tv), 10), true
	case uint64:
		return strconv.FormatUint(tv, 10), true
	default:
		return "", false
	}
}
