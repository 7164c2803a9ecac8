// Package siteindex manages per-tenant FT content indexes and their shard metadata.
package siteindex

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/socialsearch/internal/db"
	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
)

// store is the consumer interface for index lifecycle (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo creates tenant indexes and records their shard counts.
type Repo struct {
	store store
}

// New creates a site index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

func shardsKey(index string) string {
	return index + ":shards"
}

// Definition builds the FT schema for a tenant index. Each synchronized
// taxonomy gets its own TAG field.
func Definition(name string, taxonomies []string) (*db.IndexDefinition, error) {
	b := db.NewIndex(name, domdoc.KeyPrefix(name)).
		Tag(domdoc.FieldClass, domdoc.FieldKind, domdoc.FieldStatus).
		Text(domdoc.FieldTitle, 2).
		Text(domdoc.FieldContent, 0)
	for _, tax := range taxonomies {
		b = b.TagSeparated(domdoc.TaxonomyField(tax), domdoc.TermSeparator)
	}
	def, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("index definition %s: %w", name, err)
	}
	return def, nil
}

// Ensure creates the index when missing, or drops and recreates it when recreate is set.
// The shard count is recorded either way. Returns true if the index was created.
func (r *Repo) Ensure(ctx context.Context, name string, shards int, taxonomies []string, recreate bool) (bool, error) {
	if shards < 1 {
		return false, fmt.Errorf("index %s: shard count must be at least 1, got %d", name, shards)
	}
	def, err := Definition(name, taxonomies)
	if err != nil {
		return false, err
	}

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", name, err)
	}
	if exists && recreate {
		if err := r.store.DropIndex(ctx, name); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return false, fmt.Errorf("drop index %s: %w", name, err)
		}
		exists = false
	}

	created := false
	if !exists {
		if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return false, fmt.Errorf("create index %s: %w", name, err)
		}
		created = true
	}

	if err := r.store.Set(ctx, shardsKey(name), []byte(strconv.Itoa(shards))); err != nil {
		return created, fmt.Errorf("record shards for %s: %w", name, err)
	}
	return created, nil
}

// Shards returns the recorded shard count of an index. ok is false when none was recorded.
func (r *Repo) Shards(ctx context.Context, name string) (int, bool, error) {
	raw, err := r.store.Get(ctx, shardsKey(name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read shards for %s: %w", name, err)
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 1 {
		return 0, false, fmt.Errorf("shards for %s: invalid value %q", name, raw)
	}
	return n, true, nil
}
