package search

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/db"
)

type mockStore struct {
	listFn   func(ctx context.Context) ([]string, error)
	searchFn func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	queries  []*db.TextQuery
}

func (m *mockStore) ListIndexes(ctx context.Context) ([]string, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	m.queries = append(m.queries, q)
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

type mockShards struct {
	counts map[string]int
	err    error
}

func (m *mockShards) Shards(_ context.Context, index string) (int, bool, error) {
	if m.err != nil {
		return 0, false, m.err
	}
	n, ok := m.counts[index]
	return n, ok, nil
}

func entry(index, class, id string, score float64, fields map[string]string) db.SearchEntry {
	return db.SearchEntry{Key: index + ":doc:" + class + ":" + id, Score: score, Fields: fields}
}
