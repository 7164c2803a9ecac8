package tenant

import (
	"fmt"
	"regexp"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Status is the lifecycle state of a tenant sub-site.
type Status string

// Tenant status values.
const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusSpam     Status = "spam"
	StatusDeleted  Status = "deleted"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusArchived || s == StatusSpam || s == StatusDeleted
}

// Tenant is an independently indexed sub-site (immutable value object).
type Tenant struct {
	id        string
	name      string
	url       string
	status    Status
	indexName string
}

// New validates and creates a Tenant. indexName may be empty to use the derived name.
func New(id, name, url string, status Status, indexName string) (Tenant, error) {
	if id == "" {
		return Tenant{}, fmt.Errorf("tenant ID is required")
	}
	if len(id) > 64 {
		return Tenant{}, fmt.Errorf("tenant ID too long (max 64)")
	}
	if !idRegex.MatchString(id) {
		return Tenant{}, fmt.Errorf("tenant ID must be alphanumeric with underscores and hyphens")
	}
	if status == "" {
		status = StatusActive
	}
	if !status.IsValid() {
		return Tenant{}, fmt.Errorf("invalid tenant status: %q", status)
	}
	return Tenant{id: id, name: name, url: url, status: status, indexName: indexName}, nil
}

// Reconstruct creates a Tenant without validation (storage hydration).
func Reconstruct(id, name, url string, status Status, indexName string) Tenant {
	return Tenant{id: id, name: name, url: url, status: status, indexName: indexName}
}

// ID returns the tenant identifier.
func (t Tenant) ID() string { return t.id }

// Name returns the display name.
func (t Tenant) Name() string { return t.name }

// URL returns the site base URL.
func (t Tenant) URL() string { return t.url }

// Status returns the lifecycle state.
func (t Tenant) Status() Status { return t.status }

// IndexName returns the explicit index name, empty when derived.
func (t Tenant) IndexName() string { return t.indexName }

// IsActive reports whether the tenant takes part in federated search.
func (t Tenant) IsActive() bool { return t.status == StatusActive }
