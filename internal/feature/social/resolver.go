package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
	"github.com/kailas-cloud/socialsearch/internal/hook"
	"github.com/kailas-cloud/socialsearch/internal/metrics"
)

// Strategy selects how a live search picks its indexes.
type Strategy string

const (
	// StrategyWildcard targets every index through a single wildcard name.
	StrategyWildcard Strategy = "wildcard"
	// StrategyEnumerate lists active tenants and targets each tenant index.
	StrategyEnumerate Strategy = "enumerate"
)

// IsValid checks if the strategy is known.
func (s Strategy) IsValid() bool {
	return s == StrategyWildcard || s == StrategyEnumerate
}

// DefaultPageSize bounds one tenant directory page during enumeration.
const DefaultPageSize = 50

// Resolver decides which indexes a live search spans.
type Resolver struct {
	strategy Strategy
	rootID   string
	pageSize int
	tenants  TenantLister
	namer    Namer
}

// NewResolver creates an index resolver. An empty strategy means wildcard.
func NewResolver(strategy Strategy, rootID string, pageSize int, tenants TenantLister, namer Namer) *Resolver {
	if strategy == "" {
		strategy = StrategyWildcard
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Resolver{
		strategy: strategy,
		rootID:   rootID,
		pageSize: pageSize,
		tenants:  tenants,
		namer:    namer,
	}
}

// IndexName implements hook.IndexNamer. Lookups outside a live search keep current.
func (r *Resolver) IndexName(ctx context.Context, req hook.IndexNameRequest, current string) (string, error) {
	if req.Query == nil || !req.Query.IsSearch() {
		return current, nil
	}
	names, err := r.Resolve(ctx, req.Tenant, current)
	if err != nil {
		return "", err
	}
	metrics.FederationResolutionsTotal.WithLabelValues(string(r.strategy)).Inc()
	return strings.Join(names, ","), nil
}

// Resolve returns the ordered, deduplicated index name set for a search from active.
// It never calls back into the hook registry.
func (r *Resolver) Resolve(ctx context.Context, active tenant.Tenant, current string) ([]string, error) {
	if r.strategy == StrategyWildcard {
		return []string{compiled.AllIndices}, nil
	}
	if active.ID() != r.rootID {
		return []string{r.namer.IndexName(active)}, nil
	}

	var names []string
	seen := make(map[string]struct{})
	for offset := 0; ; offset += r.pageSize {
		page, err := r.tenants.List(ctx, tenant.StatusActive, offset, r.pageSize)
		if err != nil {
			return nil, fmt.Errorf("list active tenants at offset %d: %w", offset, err)
		}
		for _, t := range page {
			name := r.namer.IndexName(t)
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		if len(page) < r.pageSize {
			break
		}
	}

	if len(names) == 0 {
		return []string{current}, nil
	}
	return names, nil
}
