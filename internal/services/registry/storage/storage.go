// Package storage defines persistence contracts for the animal registry.
package storage

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/graziososalvare/rescuehub/internal/animal"
)

var (
	// ErrNotFound indicates a requested animal record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrEmptyDocument indicates a create was attempted with no data.
	ErrEmptyDocument = errors.New("document must not be empty")
	// ErrEmptyQuery indicates a mutation was attempted without a query.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrEmptyUpdate indicates an update was attempted without update data.
	ErrEmptyUpdate = errors.New("update data must not be empty")
)

// Range bounds a numeric field. Nil ends are unbounded; set ends are
// inclusive.
type Range struct {
	Min *float64
	Max *float64
}

// Query selects animal records. A zero query matches every record.
type Query struct {
	// Eq matches fields by exact value.
	Eq map[string]string
	// In matches fields by set membership.
	In map[string][]string
	// Range matches numeric fields by inclusive bounds.
	Range map[string]Range
}

// IsZero reports whether the query matches everything.
func (q Query) IsZero() bool {
	return len(q.Eq) == 0 && len(q.In) == 0 && len(q.Range) == 0
}

// Key returns a deterministic cache key for the query: fields are emitted in
// sorted order so logically equal queries share one entry.
func (q Query) Key() string {
	var b strings.Builder
	for _, field := range sortedKeys(q.Eq) {
		b.WriteString("eq:")
		b.WriteString(field)
		b.WriteString("=")
		b.WriteString(q.Eq[field])
		b.WriteString(";")
	}
	for _, field := range sortedKeysSlice(q.In) {
		values := append([]string(nil), q.In[field]...)
		sort.Strings(values)
		b.WriteString("in:")
		b.WriteString(field)
		b.WriteString("=")
		b.WriteString(strings.Join(values, ","))
		b.WriteString(";")
	}
	for _, field := range sortedKeysRange(q.Range) {
		r := q.Range[field]
		b.WriteString("range:")
		b.WriteString(field)
		b.WriteString("=")
		b.WriteString(formatBound(r.Min))
		b.WriteString("..")
		b.WriteString(formatBound(r.Max))
		b.WriteString(";")
	}
	return b.String()
}

func formatBound(bound *float64) string {
	if bound == nil {
		return ""
	}
	return strconv.FormatFloat(*bound, 'f', -1, 64)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysSlice(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysRange(m map[string]Range) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FindOptions shape a read: which fields to fetch, how to order, how many.
type FindOptions struct {
	// Fields lists the projected fields. Empty fetches whole documents.
	// The document id is always fetched internally and always stripped.
	Fields []string
	// SortBy orders results by one field when set.
	SortBy string
	// SortDesc reverses the sort order.
	SortDesc bool
	// Limit caps the number of records when greater than zero.
	Limit int64
}

// Key returns a deterministic cache key fragment for the options. Sort and
// limit shape the result set, so they participate in the key alongside the
// projection.
func (o FindOptions) Key() string {
	fields := append([]string(nil), o.Fields...)
	sort.Strings(fields)
	var b strings.Builder
	b.WriteString("fields:")
	b.WriteString(strings.Join(fields, ","))
	b.WriteString(";sort:")
	b.WriteString(o.SortBy)
	if o.SortDesc {
		b.WriteString(":desc")
	}
	b.WriteString(";limit:")
	b.WriteString(strconv.FormatInt(o.Limit, 10))
	return b.String()
}

// AnimalStore persists animal outcome records.
type AnimalStore interface {
	// Insert stores one record. Empty records are rejected with
	// ErrEmptyDocument.
	Insert(ctx context.Context, record animal.Record) error
	// InsertMany stores a batch of records and returns the inserted count.
	InsertMany(ctx context.Context, records []animal.Record) (int64, error)
	// Find returns the records matching the query, shaped by opts.
	Find(ctx context.Context, query Query, opts FindOptions) ([]animal.Record, error)
	// UpdateMany applies the set document to every record matching the
	// query and returns the modified count. Empty queries and empty set
	// documents are rejected.
	UpdateMany(ctx context.Context, query Query, set map[string]any) (int64, error)
	// DeleteMany removes every record matching the query and returns the
	// deleted count. Empty queries are rejected.
	DeleteMany(ctx context.Context, query Query) (int64, error)
}
