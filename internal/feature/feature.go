// Package feature holds the optional feature registry: requirement checks,
// one-time activation, and the listing shown to operators.
package feature

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/hook"
)

// StatusCode classifies whether a feature's requirements are met.
type StatusCode int

const (
	// StatusOK means every requirement is satisfied.
	StatusOK StatusCode = 0
	// StatusDegraded means the feature works with limitations.
	StatusDegraded StatusCode = 1
	// StatusUnavailable means the feature cannot be activated.
	StatusUnavailable StatusCode = 2
)

// Status is the outcome of a requirements check.
type Status struct {
	Code    StatusCode `json:"code"`
	Message string     `json:"message,omitempty"`
}

// Satisfied reports whether the feature may be activated.
func (s Status) Satisfied() bool { return s.Code != StatusUnavailable }

// Feature is an optional behavior bundle wired through hooks.
type Feature interface {
	Slug() string
	Title() string
	Summary() string
	RequiresInstallReindex() bool
	// Requirements maps the inbound status to the feature's own status.
	Requirements(ctx context.Context, in Status) Status
	// Setup registers the feature's hook handlers.
	Setup(r *hook.Registry) error
}

// Info is a read-only snapshot of a registered feature.
type Info struct {
	Slug                   string `json:"slug"`
	Title                  string `json:"title"`
	Summary                string `json:"summary"`
	RequiresInstallReindex bool   `json:"requires_install_reindex"`
	Active                 bool   `json:"active"`
	Status                 Status `json:"status"`
}

// Registry tracks registered and activated features.
type Registry struct {
	hooks    *hook.Registry
	logger   *zap.Logger
	features map[string]Feature
	active   map[string]Status
}

// NewRegistry creates a feature registry that activates into hooks.
func NewRegistry(hooks *hook.Registry, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		hooks:    hooks,
		logger:   logger,
		features: make(map[string]Feature),
		active:   make(map[string]Status),
	}
}

// Register adds a feature. Slugs are unique.
func (r *Registry) Register(f Feature) error {
	if _, ok := r.features[f.Slug()]; ok {
		return fmt.Errorf("feature %q already registered", f.Slug())
	}
	r.features[f.Slug()] = f
	return nil
}

// Activate checks requirements and runs Setup once. An unsatisfied feature is
// reported through the returned status and Setup is never called.
func (r *Registry) Activate(ctx context.Context, slug string) (Status, error) {
	f, ok := r.features[slug]
	if !ok {
		return Status{}, fmt.Errorf("activate %q: %w", slug, domain.ErrUnknownFeature)
	}
	if st, done := r.active[slug]; done {
		return st, nil
	}

	st := f.Requirements(ctx, Status{Code: StatusOK})
	if !st.Satisfied() {
		r.logger.Warn("feature requirements not met",
			zap.String("feature", slug),
			zap.String("reason", st.Message),
		)
		return st, nil
	}

	if err := f.Setup(r.hooks); err != nil {
		return st, fmt.Errorf("setup %q: %w", slug, err)
	}
	r.active[slug] = st

	fields := []zap.Field{zap.String("feature", slug)}
	if f.RequiresInstallReindex() {
		fields = append(fields, zap.Bool("requires_reindex", true))
	}
	r.logger.Info("feature activated", fields...)
	return st, nil
}

// IsActive reports whether slug was activated.
func (r *Registry) IsActive(slug string) bool {
	_, ok := r.active[slug]
	return ok
}

// List returns every registered feature sorted by slug. Inactive features
// report a fresh requirements status.
func (r *Registry) List(ctx context.Context) []Info {
	out := make([]Info, 0, len(r.features))
	for slug, f := range r.features {
		st, active := r.active[slug]
		if !active {
			st = f.Requirements(ctx, Status{Code: StatusOK})
		}
		out = append(out, Info{
			Slug:                   slug,
			Title:                  f.Title(),
			Summary:                f.Summary(),
			RequiresInstallReindex: f.RequiresInstallReindex(),
			Active:                 active,
			Status:                 st,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
