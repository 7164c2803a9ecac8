// Package social lets group and member records from the social extension be
// indexed and searched alongside native documents, optionally across every
// tenant from the root tenant.
package social

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/feature"
	"github.com/kailas-cloud/socialsearch/internal/hook"
)

// Slug identifies the feature in the registry and config.
const Slug = "social"

const (
	title         = "Social"
	summary       = "Index social content like groups and members."
	missingNotice = "Social extension is not active."
)

// Options configures the feature.
type Options struct {
	Strategy   Strategy
	RootTenant string
	PageSize   int
	ExtraKinds []kind.Kind // extension document kinds; nil means the defaults
}

// Deps are the host collaborators the feature talks to.
type Deps struct {
	Tenants TenantLister
	Namer   Namer
	Indexer KindIndexer
	Probe   ExtensionProbe
}

// Feature bundles every social handler for registration.
type Feature struct {
	opts   Options
	deps   Deps
	logger *zap.Logger

	registered *hook.Registry
}

// Compile-time check: Feature implements feature.Feature.
var _ feature.Feature = (*Feature)(nil)

// New creates the social feature.
func New(opts Options, deps Deps, logger *zap.Logger) *Feature {
	if opts.ExtraKinds == nil {
		opts.ExtraKinds = kind.ExtensionDocuments()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feature{opts: opts, deps: deps, logger: logger}
}

func (f *Feature) Slug() string                 { return Slug }
func (f *Feature) Title() string                { return title }
func (f *Feature) Summary() string              { return summary }
func (f *Feature) RequiresInstallReindex() bool { return true }

// Requirements probes the extension. A failed probe counts as absent.
func (f *Feature) Requirements(ctx context.Context, in feature.Status) feature.Status {
	present := false
	if f.deps.Probe != nil {
		ok, err := f.deps.Probe.Installed(ctx)
		if err != nil {
			f.logger.Warn("social extension probe failed", zap.Error(err))
		}
		present = ok && err == nil
	}
	return RequirementsStatus(present, in)
}

// RequirementsStatus maps extension presence to a feature status. Presence
// returns in unmodified.
func RequirementsStatus(present bool, in feature.Status) feature.Status {
	if present {
		return in
	}
	return feature.Status{Code: feature.StatusUnavailable, Message: missingNotice}
}

// Setup registers every handler. Calling it again with the same registry is a no-op.
func (f *Feature) Setup(r *hook.Registry) error {
	if f.registered == r {
		return nil
	}

	augmenter := NewAugmenter(f.opts.ExtraKinds, r)
	resolver := NewResolver(f.opts.Strategy, f.opts.RootTenant, f.opts.PageSize, f.deps.Tenants, f.deps.Namer)

	handlers := []struct {
		event   hook.Event
		handler any
	}{
		{hook.BulkIndex, NewBulkDriver(f.deps.Indexer)},
		{hook.BeforeQueryCompiled, augmenter},
		{hook.IndexableKinds, augmenter},
		{hook.IndexName, resolver},
		{hook.DefaultShardCount, ShardPolicy{}},
		{hook.SyncTaxonomies, augmenter},
		{hook.SearchRequestPath, augmenter},
		{hook.FormattedRequest, Translator{}},
		{hook.Permalink, PermalinkPatcher{}},
	}
	for _, h := range handlers {
		if err := r.Add(h.event, h.handler); err != nil {
			return fmt.Errorf("register %s: %w", h.event, err)
		}
	}

	f.registered = r

	f.logger.Debug("social handlers registered",
		zap.String("strategy", string(resolver.strategy)),
		zap.Strings("kinds", kind.Strings(augmenter.Kinds())),
	)
	return nil
}
