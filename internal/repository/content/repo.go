// Package content reads the platform's native source posts for bulk indexing.
package content

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

// store is the consumer interface for source posts (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo reads source posts stored as <prefix>content:<tenant>:<id> hashes.
type Repo struct {
	store  store
	prefix string
}

// New creates a content repository under the given key prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix + "content:"}
}

// Documents returns the tenant's source posts as engine documents, ordered by key.
// Every tax_<name> field becomes a taxonomy; the indexer decides which to keep.
func (r *Repo) Documents(ctx context.Context, tenantID string) ([]domdoc.Document, error) {
	base := r.prefix + tenantID + ":"
	keys, err := r.store.Scan(ctx, base+"*")
	if err != nil {
		return nil, fmt.Errorf("scan content of tenant %s: %w", tenantID, err)
	}
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load content of tenant %s: %w", tenantID, err)
	}

	docs := make([]domdoc.Document, 0, len(keys))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		id := strings.TrimPrefix(keys[i], base)
		doc, err := domdoc.New(id, kind.Kind(m["kind"]), m["title"], m["content"], m["status"], m["permalink"], terms(m))
		if err != nil {
			return nil, fmt.Errorf("content %s: %w", keys[i], err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func terms(m map[string]string) map[string][]string {
	out := make(map[string][]string)
	for k, v := range m {
		tax, ok := strings.CutPrefix(k, domdoc.TaxonomyField(""))
		if !ok || tax == "" || v == "" {
			continue
		}
		out[tax] = strings.Split(v, domdoc.TermSeparator)
	}
	return out
}
