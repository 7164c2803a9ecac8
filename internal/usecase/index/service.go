// Package index sets up tenant indexes and bulk indexes their content.
package index

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	dombatch "github.com/kailas-cloud/socialsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/social"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
	"github.com/kailas-cloud/socialsearch/internal/hook"
	"github.com/kailas-cloud/socialsearch/internal/metrics"
)

// Defaults for Config.
const (
	DefaultShards    = 5
	DefaultBatchSize = 100
)

// DefaultTaxonomies are synchronized for every tenant before hooks run.
var DefaultTaxonomies = []string{"category", "post_tag"}

// Config tunes index setup and bulk writes.
type Config struct {
	DefaultShards int
	Taxonomies    []string
	BatchSize     int
	Retries       int           // extra attempts per failed batch
	RetryBackoff  time.Duration // wait between attempts
}

// Service owns index setup and bulk indexing. It implements social.KindIndexer.
type Service struct {
	hooks   *hook.Registry
	namer   Namer
	indexes IndexEnsurer
	content ContentReader
	social  SocialReader
	docs    DocumentWriter
	cfg     Config
	logger  *zap.Logger
}

// New creates an index service.
func New(
	hooks *hook.Registry, namer Namer, indexes IndexEnsurer,
	content ContentReader, soc SocialReader, docs DocumentWriter,
	cfg Config, logger *zap.Logger,
) *Service {
	if cfg.DefaultShards < 1 {
		cfg.DefaultShards = DefaultShards
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Taxonomies == nil {
		cfg.Taxonomies = DefaultTaxonomies
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		hooks: hooks, namer: namer, indexes: indexes,
		content: content, social: soc, docs: docs,
		cfg: cfg, logger: logger,
	}
}

// IndexName resolves the tenant's index name for setup and bulk writes.
func (s *Service) IndexName(ctx context.Context, t tenant.Tenant) (string, error) {
	return s.hooks.ApplyIndexName(ctx, hook.IndexNameRequest{Tenant: t}, s.namer.IndexName(t))
}

// Setup creates the tenant index with the hooked shard count and taxonomies.
func (s *Service) Setup(ctx context.Context, t tenant.Tenant, recreate bool) (string, error) {
	name, err := s.IndexName(ctx, t)
	if err != nil {
		return "", err
	}
	shards := s.hooks.ApplyShardCount(s.cfg.DefaultShards)
	taxonomies := s.taxonomies()

	created, err := s.indexes.Ensure(ctx, name, shards, taxonomies, recreate)
	if err != nil {
		return "", fmt.Errorf("setup %s: %w", name, err)
	}
	s.logger.Info("index ready",
		zap.String("tenant", t.ID()),
		zap.String("index", name),
		zap.Int("shards", shards),
		zap.Strings("taxonomies", taxonomies),
		zap.Bool("created", created),
	)
	return name, nil
}

// IndexAll writes every indexable native document of the tenant, then runs the bulk hooks.
// Progress lines go to console.
func (s *Service) IndexAll(ctx context.Context, t tenant.Tenant, console io.Writer) error {
	if console == nil {
		console = io.Discard
	}
	name, err := s.IndexName(ctx, t)
	if err != nil {
		return err
	}

	source, err := s.content.Documents(ctx, t.ID())
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	kinds := s.hooks.ApplyKinds(kind.Native())
	taxonomies := s.taxonomies()
	docs := make([]domdoc.Document, 0, len(source))
	for i := range source {
		d := &source[i]
		if d.Kind().IsAuxiliary() || !kind.Contains(kinds, d.Kind()) {
			continue
		}
		pruned, err := pruneTerms(d, taxonomies)
		if err != nil {
			return err
		}
		docs = append(docs, pruned)
	}

	_, _ = fmt.Fprintf(console, "Indexing %d documents into %s...\n", len(docs), name)
	report := s.write(ctx, name, docs, console)
	_, _ = fmt.Fprintf(console, "Indexed %d, failed %d.\n", report.Indexed(), report.Failed())
	if err := report.Err(); err != nil {
		return err
	}

	return s.hooks.RunBulkIndex(ctx, hook.BulkRun{Tenant: t, Console: console})
}

// IndexKind bulk indexes the social records of one auxiliary kind.
func (s *Service) IndexKind(ctx context.Context, t tenant.Tenant, k kind.Kind) error {
	name, err := s.IndexName(ctx, t)
	if err != nil {
		return err
	}

	var (
		docs  []domdoc.Document
		stale []string
	)
	switch k {
	case kind.Group:
		docs, stale, err = s.groupDocs(ctx, t)
	case kind.Member:
		docs, stale, err = s.memberDocs(ctx, t)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, k)
	}
	if err != nil {
		return err
	}

	report := s.write(ctx, name, docs, io.Discard)
	removed := s.purge(ctx, name, k, stale)
	s.logger.Info("kind indexed",
		zap.String("tenant", t.ID()),
		zap.String("kind", string(k)),
		zap.Int("indexed", report.Indexed()),
		zap.Int("failed", report.Failed()),
		zap.Int("removed", removed),
	)
	return report.Err()
}

// purge drops documents of records that are no longer searchable. Failures are logged only.
func (s *Service) purge(ctx context.Context, index string, k kind.Kind, ids []string) int {
	removed := 0
	for _, id := range ids {
		if err := s.docs.Delete(ctx, index, k.Class(), id); err != nil {
			s.logger.Warn("stale document not removed",
				zap.String("index", index),
				zap.String("id", id),
				zap.Error(err),
			)
			continue
		}
		removed++
	}
	return removed
}

func (s *Service) taxonomies() []string {
	return s.hooks.ApplyTaxonomies(append([]string(nil), s.cfg.Taxonomies...))
}

func (s *Service) groupDocs(ctx context.Context, t tenant.Tenant) ([]domdoc.Document, []string, error) {
	groups, err := s.social.Groups(ctx, t.ID())
	if err != nil {
		return nil, nil, fmt.Errorf("load groups: %w", err)
	}
	docs := make([]domdoc.Document, 0, len(groups))
	var stale []string
	for _, g := range groups {
		if !g.IsSearchable() {
			stale = append(stale, g.ID)
			continue
		}
		d, err := domdoc.New(g.ID, kind.Group, g.Name, g.Description, domdoc.StatusPublish, g.Permalink, nil)
		if err != nil {
			s.logger.Warn("skipping group", zap.String("id", g.ID), zap.Error(err))
			continue
		}
		docs = append(docs, d)
	}
	return docs, stale, nil
}

func (s *Service) memberDocs(ctx context.Context, t tenant.Tenant) ([]domdoc.Document, []string, error) {
	members, err := s.social.Members(ctx, t.ID())
	if err != nil {
		return nil, nil, fmt.Errorf("load members: %w", err)
	}
	withTypes := slices.Contains(s.taxonomies(), social.MemberTypeTaxonomy)

	docs := make([]domdoc.Document, 0, len(members))
	var stale []string
	for _, m := range members {
		if m.Spam {
			stale = append(stale, m.ID)
			continue
		}
		var terms map[string][]string
		if withTypes && len(m.Types) > 0 {
			terms = map[string][]string{social.MemberTypeTaxonomy: m.Types}
		}
		d, err := domdoc.New(m.ID, kind.Member, m.DisplayName, m.Bio, domdoc.StatusPublish, m.Permalink, terms)
		if err != nil {
			s.logger.Warn("skipping member", zap.String("id", m.ID), zap.Error(err))
			continue
		}
		docs = append(docs, d)
	}
	return docs, stale, nil
}

// write stores docs in batches, retrying a failed batch before reporting its items as failed.
func (s *Service) write(ctx context.Context, index string, docs []domdoc.Document, console io.Writer) dombatch.Report {
	var report dombatch.Report
	for start := 0; start < len(docs); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(docs))
		chunk := docs[start:end]

		err := s.putWithRetry(ctx, index, chunk)
		for i := range chunk {
			d := &chunk[i]
			status := "ok"
			if err != nil {
				status = "error"
				report.Add(dombatch.NewError(d.ID(), d.Kind(), err))
			} else {
				report.Add(dombatch.NewOK(d.ID(), d.Kind()))
			}
			metrics.IndexedDocumentsTotal.WithLabelValues(string(d.Kind()), status).Inc()
		}
		_, _ = fmt.Fprintf(console, "Processed %d/%d entries...\n", end, len(docs))
	}
	return report
}

func (s *Service) putWithRetry(ctx context.Context, index string, docs []domdoc.Document) error {
	var err error
	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("retrying batch",
				zap.String("index", index),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if err := sleep(ctx, s.cfg.RetryBackoff); err != nil {
				return err
			}
		}
		if err = s.docs.PutBatch(ctx, index, docs); err == nil {
			return nil
		}
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// pruneTerms keeps only the synchronized taxonomies of d.
func pruneTerms(d *domdoc.Document, taxonomies []string) (domdoc.Document, error) {
	terms := make(map[string][]string)
	for _, tax := range taxonomies {
		if v, ok := d.Terms()[tax]; ok {
			terms[tax] = v
		}
	}
	out, err := domdoc.New(d.ID(), d.Kind(), d.Title(), d.Content(), d.Status(), d.Permalink(), terms)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %s: %w", d.ID(), err)
	}
	return out, nil
}
