package search

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

// Engine runs a compiled request against the indexes and classes a path addresses.
type Engine interface {
	Search(ctx context.Context, path string, req *compiled.Request) (result.Set, error)
}

// TenantReader looks up the tenant a search runs on.
type TenantReader interface {
	Get(ctx context.Context, id string) (tenant.Tenant, error)
}

// Namer computes a tenant's own index name.
type Namer interface {
	IndexName(t tenant.Tenant) string
}
