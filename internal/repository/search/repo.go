// Package search is the engine adapter: it runs compiled requests against
// one or more tenant FT indexes and merges the hits.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/db"
	"github.com/kailas-cloud/socialsearch/internal/domain"
	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/metrics"
)

// store is the consumer interface for engine reads (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	ListIndexes(ctx context.Context) ([]string, error)
}

// ShardReader reports the recorded shard count of an index.
type ShardReader interface {
	Shards(ctx context.Context, index string) (int, bool, error)
}

// Config bounds engine fan-out.
type Config struct {
	IndexPrefix    string   // tenant indexes start with this prefix
	ExcludeIndexes []string // indexes under the prefix that hold no tenant content
	MaxShards      int      // per-request ceiling, 0 disables the check
	DefaultShards  int      // assumed for indexes without shard metadata
}

const excerptRunes = 160

var returnFields = []string{
	domdoc.FieldID, domdoc.FieldKind, domdoc.FieldTitle, domdoc.FieldContent, domdoc.FieldPermalink,
}

// Repo implements usecase/search.Engine.
type Repo struct {
	store  store
	shards ShardReader
	cfg    Config
	logger *zap.Logger
}

// New creates an engine adapter.
func New(s store, shards ShardReader, cfg Config, logger *zap.Logger) *Repo {
	if cfg.DefaultShards < 1 {
		cfg.DefaultShards = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, shards: shards, cfg: cfg, logger: logger}
}

// Search runs req against the indexes and classes addressed by path.
// Hits from every index are merged by descending score and then paginated.
func (r *Repo) Search(ctx context.Context, path string, req *compiled.Request) (result.Set, error) {
	p, err := compiled.ParsePath(path)
	if err != nil {
		return result.Set{}, err
	}

	indices, err := r.targets(ctx, p)
	if err != nil {
		return result.Set{}, err
	}
	if len(indices) == 0 {
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
		return result.Set{}, nil
	}

	shards, err := r.countShards(ctx, indices)
	if err != nil {
		return result.Set{}, err
	}
	metrics.SearchIndicesPerRequest.Observe(float64(len(indices)))
	metrics.SearchShardsPerRequest.Observe(float64(shards))
	if r.cfg.MaxShards > 0 && shards > r.cfg.MaxShards {
		metrics.SearchRequestsTotal.WithLabelValues("rejected").Inc()
		metrics.SearchRejectedTotal.WithLabelValues("shard_limit").Inc()
		return result.Set{}, domain.NewShardLimit(len(indices), shards, r.cfg.MaxShards)
	}

	filters, err := buildFilters(p.Classes, req.PostFilter.Bool.Must)
	if err != nil {
		return result.Set{}, err
	}

	start := time.Now()
	set, err := r.fanOut(ctx, indices, req, filters)
	metrics.SearchEngineDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return result.Set{}, err
	}
	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	domain.SearchUsageFromContext(ctx).Record(len(indices), shards)
	return set, nil
}

// targets expands the wildcard into every tenant index under the prefix.
func (r *Repo) targets(ctx context.Context, p compiled.Path) ([]string, error) {
	if !p.IsAll() {
		return p.Indices, nil
	}
	all, err := r.store.ListIndexes(ctx)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", compiled.AllIndices, err)
	}
	out := make([]string, 0, len(all))
	for _, name := range all {
		if !strings.HasPrefix(name, r.cfg.IndexPrefix) || r.excluded(name) {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (r *Repo) excluded(name string) bool {
	for _, x := range r.cfg.ExcludeIndexes {
		if name == x {
			return true
		}
	}
	return false
}

func (r *Repo) countShards(ctx context.Context, indices []string) (int, error) {
	total := 0
	for _, idx := range indices {
		n, ok, err := r.shards.Shards(ctx, idx)
		if err != nil {
			return 0, err
		}
		if !ok {
			n = r.cfg.DefaultShards
		}
		total += n
	}
	return total, nil
}

func (r *Repo) fanOut(
	ctx context.Context, indices []string, req *compiled.Request, filters filter.Expression,
) (result.Set, error) {
	window := req.From + req.Size
	fields := make([]string, 0, len(req.Query.Fields))
	for _, f := range req.Query.Fields {
		fields = append(fields, compiled.StoredField(f))
	}

	var all []result.Hit
	total := 0
	for _, idx := range indices {
		res, err := r.store.SearchText(ctx, &db.TextQuery{
			IndexName:    idx,
			Text:         req.Query.Text,
			TextFields:   fields,
			Filters:      filters,
			Limit:        window,
			ReturnFields: returnFields,
		})
		if err != nil {
			if errors.Is(err, db.ErrIndexNotFound) {
				r.logger.Debug("skipping missing index", zap.String("index", idx))
				continue
			}
			return result.Set{}, fmt.Errorf("search %s: %w", idx, err)
		}
		total += res.Total
		for _, e := range res.Entries {
			hit, ok := toHit(idx, e)
			if !ok {
				continue
			}
			all = append(all, hit)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score() > all[j].Score()
	})

	from := min(req.From, len(all))
	to := min(window, len(all))
	return result.Set{Hits: append([]result.Hit(nil), all[from:to]...), Total: total}, nil
}

// buildFilters turns path classes and post-filter clauses into a tag pre-filter.
func buildFilters(classes []kind.Class, must []compiled.Clause) (filter.Expression, error) {
	conds := make([]filter.Condition, 0, len(must)+1)

	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = string(c)
	}
	classCond, err := filter.NewAnyOf(domdoc.FieldClass, names...)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	conds = append(conds, classCond)

	for _, c := range must {
		for field, values := range c.Terms {
			cond, err := filter.NewAnyOf(compiled.StoredField(field), values...)
			if err != nil {
				return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
			}
			conds = append(conds, cond)
		}
		for field, value := range c.Term {
			cond, err := filter.NewAnyOf(compiled.StoredField(field), value)
			if err != nil {
				return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
			}
			conds = append(conds, cond)
		}
	}

	expr, err := filter.NewExpression(conds, nil)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return expr, nil
}

func toHit(index string, e db.SearchEntry) (result.Hit, bool) {
	class, id, ok := domdoc.ParseKey(index, e.Key)
	if !ok {
		return result.Hit{}, false
	}
	k := kind.Kind(e.Fields[domdoc.FieldKind])
	if k == "" {
		k = kind.Kind(class)
	}
	return result.New(index, id, k, e.Fields[domdoc.FieldTitle], excerpt(e.Fields[domdoc.FieldContent]),
		e.Fields[domdoc.FieldPermalink], e.Score), true
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:excerptRunes])) + "…"
}
