// Package compiled holds the engine-ready search request body.
package compiled

import "strings"

// TypeField is the stored field that carries a document's content kind.
const TypeField = "post_type.raw"

// Request is the structured search body sent to the engine.
// The JSON shape follows the engine's query DSL.
type Request struct {
	Query      Query  `json:"query"`
	PostFilter Filter `json:"post_filter"`
	From       int    `json:"from"`
	Size       int    `json:"size"`
}

// Query is the scored full-text part.
type Query struct {
	Text   string   `json:"query"`
	Fields []string `json:"fields,omitempty"`
}

// Filter wraps a boolean post-filter.
type Filter struct {
	Bool Bool `json:"bool"`
}

// Bool holds clauses that must all match.
type Bool struct {
	Must []Clause `json:"must"`
}

// Clause is a single post-filter condition: terms (any of values) or term (exact value).
type Clause struct {
	Terms map[string][]string `json:"terms,omitempty"`
	Term  map[string]string   `json:"term,omitempty"`
}

// TermsClause creates a terms clause.
func TermsClause(field string, values ...string) Clause {
	return Clause{Terms: map[string][]string{field: values}}
}

// TermClause creates a term clause.
func TermClause(field, value string) Clause {
	return Clause{Term: map[string]string{field: value}}
}

// References reports whether the clause filters on field.
func (c Clause) References(field string) bool {
	if _, ok := c.Terms[field]; ok {
		return true
	}
	_, ok := c.Term[field]
	return ok
}

// StoredField maps a query DSL field name to the stored field (".raw" subfields share storage).
func StoredField(field string) string {
	return strings.TrimSuffix(field, ".raw")
}
