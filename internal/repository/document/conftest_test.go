package document

import (
	"context"
	"testing"

	"github.com/kailas-cloud/socialsearch/internal/db"
	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn func(ctx context.Context, items []db.HashSetItem) error
	delFn       func(ctx context.Context, key string) error
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testDocument(t *testing.T, id string, k kind.Kind, terms map[string][]string) domdoc.Document {
	t.Helper()
	d, err := domdoc.New(id, k, "Title "+id, "Body "+id, "", "/link/"+id, terms)
	if err != nil {
		t.Fatalf("domdoc.New: %v", err)
	}
	return d
}
