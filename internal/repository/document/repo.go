package document

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/socialsearch/internal/db"
	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

// store is the consumer interface for document writes (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, key string) error
}

// Repo writes engine documents into a tenant index's key space.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// PutBatch stores docs under index in one pipelined round-trip.
func (r *Repo) PutBatch(ctx context.Context, index string, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	if err := r.store.HSetMulti(ctx, buildItems(index, docs)); err != nil {
		return fmt.Errorf("put %d documents into %s: %w", len(docs), index, err)
	}
	return nil
}

// Delete removes one document.
func (r *Repo) Delete(ctx context.Context, index string, class kind.Class, id string) error {
	key := domdoc.Key(index, class, id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
