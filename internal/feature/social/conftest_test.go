package social

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

// --- Test helpers ---

type fakeTenants struct {
	all   []tenant.Tenant
	calls []int // offsets requested
	err   error
}

func (f *fakeTenants) List(_ context.Context, status tenant.Status, offset, limit int) ([]tenant.Tenant, error) {
	f.calls = append(f.calls, offset)
	if f.err != nil {
		return nil, f.err
	}
	var active []tenant.Tenant
	for _, t := range f.all {
		if t.Status() == status {
			active = append(active, t)
		}
	}
	if offset >= len(active) {
		return nil, nil
	}
	return active[offset:min(offset+limit, len(active))], nil
}

// siteNamer mirrors the host naming rule: explicit index name, else site-<id>.
type siteNamer struct{}

func (siteNamer) IndexName(t tenant.Tenant) string {
	if t.IndexName() != "" {
		return t.IndexName()
	}
	return "site-" + t.ID()
}

type fakeIndexer struct {
	calls []kind.Kind
	errs  map[kind.Kind]error
}

func (f *fakeIndexer) IndexKind(_ context.Context, _ tenant.Tenant, k kind.Kind) error {
	f.calls = append(f.calls, k)
	return f.errs[k]
}

type fakeProbe struct {
	installed bool
	err       error
}

func (f fakeProbe) Installed(context.Context) (bool, error) { return f.installed, f.err }

type skipper bool

func (s skipper) SkipIntegration(context.Context, *query.Query) bool { return bool(s) }

func site(id string) tenant.Tenant {
	return tenant.Reconstruct(id, "Site "+id, "https://example.test/"+id, tenant.StatusActive, "")
}

func searchQuery(tb interface{ Fatalf(string, ...any) }, text string, origin query.Origin, kinds ...kind.Kind) *query.Query {
	q, err := query.New(text, kinds, "1", origin, 0, 10)
	if err != nil {
		tb.Fatalf("query.New: %v", err)
	}
	return &q
}
