// Package tenant stores the tenant directory as hashes indexed by status.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/socialsearch/internal/db"
	"github.com/kailas-cloud/socialsearch/internal/domain"
	domtenant "github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

// store is the consumer interface for the tenant directory (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
}

const (
	fieldID        = "id"
	fieldName      = "name"
	fieldURL       = "url"
	fieldStatus    = "status"
	fieldIndexName = "index_name"
)

// Repo is the tenant directory.
type Repo struct {
	store  store
	prefix string
}

// New creates a tenant directory under the given key prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// DirectoryIndex is the FT index over tenant hashes. It is not a tenant content index.
func (r *Repo) DirectoryIndex() string {
	return r.prefix + "tenants"
}

func (r *Repo) key(id string) string {
	return r.prefix + "tenant:" + id
}

// EnsureIndex creates the directory index if it does not exist.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def, err := db.NewIndex(r.DirectoryIndex(), r.key("")).
		Tag(fieldStatus, fieldID).
		Build()
	if err != nil {
		return fmt.Errorf("build tenant directory index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create tenant directory index: %w", err)
	}
	return nil
}

// Put creates or replaces a tenant record.
func (r *Repo) Put(ctx context.Context, t domtenant.Tenant) error {
	fields := map[string]string{
		fieldID:     t.ID(),
		fieldName:   t.Name(),
		fieldURL:    t.URL(),
		fieldStatus: string(t.Status()),
	}
	if t.IndexName() != "" {
		fields[fieldIndexName] = t.IndexName()
	}
	if err := r.store.HSet(ctx, r.key(t.ID()), fields); err != nil {
		return fmt.Errorf("put tenant %s: %w", t.ID(), err)
	}
	return nil
}

// Get returns a tenant by ID.
func (r *Repo) Get(ctx context.Context, id string) (domtenant.Tenant, error) {
	m, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return domtenant.Tenant{}, fmt.Errorf("get tenant %s: %w", id, err)
	}
	if len(m) == 0 {
		return domtenant.Tenant{}, fmt.Errorf("tenant %s: %w", id, domain.ErrTenantNotFound)
	}
	return fromHash(id, m), nil
}

// List returns one page of tenants with the given status in directory order.
func (r *Repo) List(ctx context.Context, status domtenant.Status, offset, limit int) ([]domtenant.Tenant, error) {
	q := fmt.Sprintf("@%s:{%s}", fieldStatus, status)
	res, err := r.store.SearchList(ctx, r.DirectoryIndex(), q, offset, limit, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s tenants: %w", status, err)
	}
	if res == nil {
		return nil, nil
	}

	out := make([]domtenant.Tenant, 0, len(res.Entries))
	for _, e := range res.Entries {
		id := e.Fields[fieldID]
		if id == "" {
			id = strings.TrimPrefix(e.Key, r.key(""))
		}
		out = append(out, fromHash(id, e.Fields))
	}
	return out, nil
}

func fromHash(id string, m map[string]string) domtenant.Tenant {
	status := domtenant.Status(m[fieldStatus])
	if !status.IsValid() {
		status = domtenant.StatusActive
	}
	return domtenant.Reconstruct(id, m[fieldName], m[fieldURL], status, m[fieldIndexName])
}
