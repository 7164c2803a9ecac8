package search

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

type mockEngine struct {
	set  result.Set
	err  error
	path string
	req  *compiled.Request
}

func (m *mockEngine) Search(_ context.Context, path string, req *compiled.Request) (result.Set, error) {
	m.path = path
	m.req = req
	return m.set, m.err
}

type mockTenants struct {
	tenants map[string]tenant.Tenant
}

func (m *mockTenants) Get(_ context.Context, id string) (tenant.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return tenant.Tenant{}, domain.ErrTenantNotFound
	}
	return t, nil
}

func (m *mockTenants) List(_ context.Context, status tenant.Status, offset, limit int) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, id := range []string{"1", "2", "3"} {
		if t, ok := m.tenants[id]; ok && t.Status() == status {
			out = append(out, t)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

type siteNamer struct{}

func (siteNamer) IndexName(t tenant.Tenant) string { return "ss:site-" + t.ID() }

func tenants(ids ...string) *mockTenants {
	m := &mockTenants{tenants: make(map[string]tenant.Tenant)}
	for _, id := range ids {
		m.tenants[id] = tenant.Reconstruct(id, "Site "+id, "", tenant.StatusActive, "")
	}
	return m
}
