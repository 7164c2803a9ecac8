// Package search runs the hooked search pipeline for one tenant.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/hook"
	"github.com/kailas-cloud/socialsearch/internal/logger"
)

// Service handles search requests.
type Service struct {
	hooks   *hook.Registry
	engine  Engine
	tenants TenantReader
	namer   Namer
}

// New creates a search service.
func New(hooks *hook.Registry, engine Engine, tenants TenantReader, namer Namer) *Service {
	return &Service{hooks: hooks, engine: engine, tenants: tenants, namer: namer}
}

// Search runs q through the query, index name, path and request hooks, executes it
// and renders one page of results.
func (s *Service) Search(ctx context.Context, q query.Query) (result.Page, error) {
	t, err := s.tenants.Get(ctx, q.TenantID())
	if err != nil {
		return result.Page{}, fmt.Errorf("get tenant: %w", err)
	}

	if len(q.Kinds()) == 0 {
		q.SetKinds(kind.Native())
	}
	s.hooks.ApplyQuery(ctx, &q)

	req := Compile(&q)

	indices, err := s.hooks.ApplyIndexName(ctx, hook.IndexNameRequest{Tenant: t, Query: &q}, s.namer.IndexName(t))
	if err != nil {
		return result.Page{}, err
	}
	path := s.hooks.ApplyPath(ctx, compiled.BuildPath(indices, kind.ClassPost))
	s.hooks.ApplyRequest(ctx, req)

	logger.FromContext(ctx).Debug("search compiled",
		zap.String("tenant", t.ID()),
		zap.String("path", path),
		zap.Strings("kinds", kind.Strings(q.Kinds())),
		zap.Int("clauses", len(req.PostFilter.Bool.Must)),
	)

	set, err := s.engine.Search(ctx, path, req)
	if err != nil {
		return result.Page{}, err
	}

	page := result.Page{Items: make([]result.Item, 0, len(set.Hits)), Total: set.Total}
	for i := range set.Hits {
		hit := set.Hits[i]
		url := s.hooks.ApplyPermalink(ctx, hook.RenderContext{InSearchListing: true, Item: &hit}, defaultPermalink(&hit))
		page.Items = append(page.Items, result.Item{Hit: hit, URL: url})
	}
	return page, nil
}

// defaultPermalink renders a hit the way the platform renders documents: by stored
// permalink for native documents, falling back to the id lookup URL.
func defaultPermalink(h *result.Hit) string {
	if h.Kind().Class() == kind.ClassPost && h.Permalink() != "" {
		return h.Permalink()
	}
	return "/?p=" + h.ID()
}
