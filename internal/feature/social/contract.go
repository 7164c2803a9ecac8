package social

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

// TenantLister pages through the tenant directory.
type TenantLister interface {
	List(ctx context.Context, status tenant.Status, offset, limit int) ([]tenant.Tenant, error)
}

// Namer computes a tenant's own index name without consulting hooks.
type Namer interface {
	IndexName(t tenant.Tenant) string
}

// KindIndexer bulk indexes every record of one auxiliary kind. It blocks until done.
type KindIndexer interface {
	IndexKind(ctx context.Context, t tenant.Tenant, k kind.Kind) error
}

// ExtensionProbe reports whether the social extension's data is installed.
type ExtensionProbe interface {
	Installed(ctx context.Context) (bool, error)
}

// Skipper lets other handlers veto query integration.
type Skipper interface {
	SkipIntegration(ctx context.Context, q *query.Query) bool
}
