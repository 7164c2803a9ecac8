package document

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/socialsearch/internal/db"
	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

func TestPutBatch(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		got = items
		return nil
	}

	docs := []domdoc.Document{
		testDocument(t, "1", kind.Article, map[string][]string{"category": {"news", "local"}}),
		testDocument(t, "42", kind.Group, nil),
	}
	if err := repo.PutBatch(context.Background(), "ss:site-1", docs); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	want := []db.HashSetItem{
		{Key: "ss:site-1:doc:post:1", Fields: map[string]string{
			"id": "1", "_type": "post", "post_type": "article", "post_status": "publish",
			"title": "Title 1", "content": "Body 1", "permalink": "/link/1",
			"tax_category": "local,news",
		}},
		{Key: "ss:site-1:doc:group:42", Fields: map[string]string{
			"id": "42", "_type": "group", "post_type": "group", "post_status": "publish",
			"title": "Title 42", "content": "Body 42", "permalink": "/link/42",
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestPutBatch_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetMultiFn = func(context.Context, []db.HashSetItem) error {
		t.Fatal("store must not be called")
		return nil
	}
	if err := repo.PutBatch(context.Background(), "ss:site-1", nil); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}
}

func TestPutBatch_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	oom := &db.Error{Op: db.OpHSet, Err: errors.New("OOM")}
	ms.hsetMultiFn = func(context.Context, []db.HashSetItem) error { return oom }

	err := repo.PutBatch(context.Background(), "ss:site-1", []domdoc.Document{testDocument(t, "1", kind.Page, nil)})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)
	var key string
	ms.delFn = func(_ context.Context, k string) error {
		key = k
		return nil
	}
	if err := repo.Delete(context.Background(), "ss:site-1", kind.ClassMember, "7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if key != "ss:site-1:doc:member:7" {
		t.Errorf("key = %q", key)
	}
}
