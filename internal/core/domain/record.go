package domain

import (
	"sort"
	"strings"
)

// Record is a single searchable item.
// Identity is ID; a collection is replaced wholesale on refresh, never patched.
type Record struct {
	// ID uniquely identifies the record within its collection.
	ID string `json:"id"`

	// Fields maps a field name (e.g. "title") to its text.
	Fields map[string]string `json:"fields"`
}

// Field returns the text of the named field.
// Missing fields read as empty text.
func (r Record) Field(name string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// FieldNames returns the record's field names in sorted order.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Haystack returns the case-folded text of all fields, in sorted field
// order, separated by newlines so a word cannot straddle two fields.
func (r Record) Haystack() string {
	names := r.FieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, strings.ToLower(r.Fields[name]))
	}
	return strings.Join(parts, "\n")
}

// FieldWeights maps a field name to its relative weight in fuzzy scoring.
type FieldWeights map[string]float64

// DefaultFieldWeight applies to fields without a configured weight.
const DefaultFieldWeight = 1.0

// Weight returns the weight for a field, defaulting to 1.
// Non-positive weights are treated as unset.
func (w FieldWeights) Weight(field string) float64 {
	if w == nil {
		return DefaultFieldWeight
	}
	v, ok := w[field]
	if !ok || v <= 0 {
		return DefaultFieldWeight
	}
	return v
}
