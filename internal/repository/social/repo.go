// Package social reads group and member records written by the social extension.
package social

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domsocial "github.com/kailas-cloud/socialsearch/internal/domain/social"
)

// store is the consumer interface for social records (ISP).
type store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo reads social extension records for a tenant.
type Repo struct {
	store  store
	prefix string
}

// New creates a social repository under the given key prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix + "social:"}
}

// Installed reports whether the extension has written its marker key.
func (r *Repo) Installed(ctx context.Context) (bool, error) {
	ok, err := r.store.Exists(ctx, r.prefix+"installed")
	if err != nil {
		return false, fmt.Errorf("probe social extension: %w", err)
	}
	return ok, nil
}

// Groups returns every group of a tenant ordered by ID.
func (r *Repo) Groups(ctx context.Context, tenantID string) ([]domsocial.Group, error) {
	ids, hashes, err := r.load(ctx, tenantID, "group")
	if err != nil {
		return nil, err
	}
	out := make([]domsocial.Group, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		out = append(out, domsocial.Group{
			ID:          ids[i],
			Name:        m["name"],
			Description: m["description"],
			Slug:        m["slug"],
			Status:      m["status"],
			Permalink:   m["permalink"],
		})
	}
	return out, nil
}

// Members returns every member of a tenant ordered by ID.
func (r *Repo) Members(ctx context.Context, tenantID string) ([]domsocial.Member, error) {
	ids, hashes, err := r.load(ctx, tenantID, "member")
	if err != nil {
		return nil, err
	}
	out := make([]domsocial.Member, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		out = append(out, domsocial.Member{
			ID:          ids[i],
			DisplayName: m["display_name"],
			Bio:         m["bio"],
			Types:       splitTerms(m["member_types"]),
			Permalink:   m["permalink"],
			Spam:        m["spam"] == "1",
		})
	}
	return out, nil
}

func (r *Repo) load(ctx context.Context, tenantID, class string) ([]string, []map[string]string, error) {
	base := r.prefix + tenantID + ":" + class + ":"
	keys, err := r.store.Scan(ctx, base+"*")
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s records of tenant %s: %w", class, tenantID, err)
	}
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s records of tenant %s: %w", class, tenantID, err)
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = strings.TrimPrefix(k, base)
	}
	return ids, hashes, nil
}

func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
