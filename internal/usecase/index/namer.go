package index

import "github.com/kailas-cloud/socialsearch/internal/domain/tenant"

// Namer derives a tenant's own index name. It never consults hooks.
type Namer struct {
	prefix string
}

// NewNamer creates a namer that prefixes every index name.
func NewNamer(prefix string) Namer { return Namer{prefix: prefix} }

// IndexName returns the explicit index name or site-<id>.
func (n Namer) IndexName(t tenant.Tenant) string {
	if t.IndexName() != "" {
		return n.prefix + t.IndexName()
	}
	return n.prefix + "site-" + t.ID()
}

// Prefix returns the prefix shared by every tenant index.
func (n Namer) Prefix() string { return n.prefix }
