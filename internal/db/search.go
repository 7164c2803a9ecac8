package db

import "github.com/kailas-cloud/socialsearch/internal/domain/search/filter"

// TextQuery is the input for a scored full-text search over one index.
type TextQuery struct {
	IndexName    string
	Text         string // empty matches every document
	TextFields   []string
	Filters      filter.Expression
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
