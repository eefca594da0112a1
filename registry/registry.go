/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"

	"github.com/suparena/dualstore/storagemodels"
)

// Collection names a logical table of records.
type Collection string

// Declared collections. Every constant must have an entry in Default.
const (
	Dictionary   Collection = "dictionary"
	DailyData    Collection = "daily_data"
	Blog         Collection = "blog"
	Scores       Collection = "scores"
	Transactions Collection = "transactions"

	Glossary  Collection = "glossary"
	Products  Collection = "products"
	AuditLogs Collection = "audit_logs"
	Alphabet  Collection = "alphabet"
)

// All lists every declared collection constant.
var All = []Collection{
	Dictionary, DailyData, Blog, Scores, Transactions,
	Glossary, Products, AuditLogs, Alphabet,
}

func (c Collection) String() string {
	return string(c)
}

// Schema describes how one collection is stored.
type Schema struct {
	// KeyPath is the record field holding the primary key.
	KeyPath string
	// NormalizeKeyField lower-cases the key field inside the record body on write.
	NormalizeKeyField bool
	// Remote is the allow-list of remote columns. Nil means local-only.
	Remote *ColumnSet
}

// Synced declares a collection persisted remotely with the given allow-list.
func Synced(keyPath string, columns ...string) Schema {
	return Schema{KeyPath: keyPath, Remote: NewColumnSet(columns...)}
}

// LocalOnly declares a collection that never touches the remote store.
func LocalOnly(keyPath string) Schema {
	return Schema{KeyPath: keyPath}
}

// WithNormalizedKey returns a copy of s whose key field is lower-cased on write.
func (s Schema) WithNormalizedKey() Schema {
	s.NormalizeKeyField = true
	return s
}

// IsSynced reports whether the schema has a remote allow-list.
func (s Schema) IsSynced() bool {
	return s.Remote != nil
}

// ColumnSet is an immutable set of remote column names in underscore form.
type ColumnSet struct {
	names map[string]struct{}
}

// NewColumnSet builds a ColumnSet. Duplicate names collapse.
func NewColumnSet(names ...string) *ColumnSet {
	cs := &ColumnSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		cs.names[n] = struct{}{}
	}
	return cs
}

// Has reports whether name is allow-listed.
func (cs *ColumnSet) Has(name string) bool {
	if cs == nil {
		return false
	}
	_, ok := cs.names[name]
	return ok
}

// Names returns the allow-listed columns in sorted order.
func (cs *ColumnSet) Names() []string {
	if cs == nil {
		return nil
	}
	out := make([]string, 0, len(cs.names))
	for n := range cs.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of columns.
func (cs *ColumnSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.names)
}

// Filter returns a new record holding only allow-listed fields.
func (cs *ColumnSet) Filter(rec storagemodels.Record) storagemodels.Record {
	out := make(storagemodels.Record, len(rec))
	for k, v := range rec {
		if cs.Has(k) {
			out[k] = v
		}
	}
	return out
}

// Registry maps collections to their schemas. It is immutable after construction
// and safe for concurrent use.
type Registry struct {
	schemas map[Collection]Schema
}

// New builds a Registry from schemas. It panics on an empty key path so that a
// bad declaration fails at startup rather than on first write.
func New(schemas map[Collection]Schema) *Registry {
	r := &Registry{schemas: make(map[Collection]Schema, len(schemas))}
	for c, s := range schemas {
		if s.KeyPath == "" {
			panic(fmt.Sprintf("registry: collection %q has no key path", c))
		}
		r.schemas[c] = s
	}
	return r
}

var defaultRegistry = New(map[Collection]Schema{
	Dictionary: Synced("word",
		"word", "phonetic", "pronunciation_note", "part_of_speech",
		"definition_english", "definition_standard", "etymology", "frequency",
		"usage_note", "synonyms", "antonyms", "examples", "status", "source",
		"author_id", "last_synced_at",
	).WithNormalizedKey(),
	DailyData:    Synced("id", "id", "date", "data"),
	Blog:         Synced("id", "id", "title", "excerpt", "content", "author", "date", "read_time", "tags", "image_url"),
	Scores:       Synced("id", "id", "name", "score", "date", "mode"),
	Transactions: Synced("id", "id", "user_id", "user_name", "amount", "tier", "method", "timestamp"),

	Glossary:  LocalOnly("id"),
	Products:  LocalOnly("id"),
	AuditLogs: LocalOnly("id"),
	Alphabet:  LocalOnly("letter"),
})

// Default returns the registry of the declared collections.
func Default() *Registry {
	return defaultRegistry
}

// Schema returns the schema for c.
func (r *Registry) Schema(c Collection) (Schema, bool) {
	s, ok := r.schemas[c]
	return s, ok
}

// ColumnsFor returns the remote allow-list for c. It reports false for unknown
// and local-only collections.
func (r *Registry) ColumnsFor(c Collection) (*ColumnSet, bool) {
	s, ok := r.schemas[c]
	if !ok || s.Remote == nil {
		return nil, false
	}
	return s.Remote, true
}

// KeyPath returns the key field of c, or "" when c is unknown.
func (r *Registry) KeyPath(c Collection) string {
	return r.schemas[c].KeyPath
}

// IsSynced reports whether c is known and has a remote allow-list.
func (r *Registry) IsSynced(c Collection) bool {
	_, ok := r.ColumnsFor(c)
	return ok
}

// Collections returns every registered collection in sorted order.
func (r *Registry) Collections() []Collection {
	out := make([]Collection, 0, len(r.schemas))
	for c := range r.schemas {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
