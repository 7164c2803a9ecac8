// Package hook is the host platform's typed extension registry.
//
// Each Event names a point in the search and indexing pipelines. Handlers are
// registered against an event and must implement that event's capability
// interface. Handlers run in registration order. Registration happens once at
// startup, before the registry is shared, so reads need no locking.
package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

// Event identifies an extension point.
type Event string

// Known events.
const (
	BeforeQueryCompiled  Event = "before_query_compiled"
	SkipQueryIntegration Event = "skip_query_integration"
	SearchRequestPath    Event = "search_request_path"
	FormattedRequest     Event = "formatted_request"
	IndexName            Event = "index_name"
	DefaultShardCount    Event = "default_shard_count"
	IndexableKinds       Event = "indexable_kinds"
	SyncTaxonomies       Event = "sync_taxonomies"
	Permalink            Event = "permalink"
	BulkIndex            Event = "bulk_index"
)

// QueryMutator edits a query in place before it is compiled.
type QueryMutator interface {
	MutateQuery(ctx context.Context, q *query.Query)
}

// IntegrationSkipper vetoes query integration. Returning true leaves the query untouched.
type IntegrationSkipper interface {
	SkipIntegration(ctx context.Context, q *query.Query) bool
}

// PathMutator rewrites the engine request path.
type PathMutator interface {
	MutatePath(ctx context.Context, path string) string
}

// RequestMutator edits a compiled request before it is sent.
type RequestMutator interface {
	MutateRequest(ctx context.Context, req *compiled.Request)
}

// IndexNameRequest carries the context of an index-name lookup.
// Query is nil when the lookup happens outside a search (indexing, admin).
type IndexNameRequest struct {
	Tenant tenant.Tenant
	Query  *query.Query
}

// IndexNamer overrides the index name(s) a request targets.
type IndexNamer interface {
	IndexName(ctx context.Context, req IndexNameRequest, current string) (string, error)
}

// ShardCounter overrides the shard count for new indexes.
type ShardCounter interface {
	ShardCount(current int) int
}

// KindFilter edits the indexable kind registry.
type KindFilter interface {
	FilterKinds(kinds []kind.Kind) []kind.Kind
}

// TaxonomyFilter edits the taxonomies copied onto indexed documents.
type TaxonomyFilter interface {
	FilterTaxonomies(taxonomies []string) []string
}

// RenderContext describes where a permalink is being rendered.
type RenderContext struct {
	InSearchListing bool
	Item            *result.Hit
}

// PermalinkFilter rewrites a rendered permalink.
type PermalinkFilter interface {
	FilterPermalink(ctx context.Context, rc RenderContext, permalink string) string
}

// BulkRun is the payload of a bulk reindex.
type BulkRun struct {
	Tenant  tenant.Tenant
	Console io.Writer
}

// BulkIndexAction runs after native documents have been bulk indexed.
type BulkIndexAction interface {
	AfterBulkIndex(ctx context.Context, run BulkRun) error
}

// capabilities maps each event to the interface its handlers must implement.
var capabilities = map[Event]reflect.Type{
	BeforeQueryCompiled:  reflect.TypeFor[QueryMutator](),
	SkipQueryIntegration: reflect.TypeFor[IntegrationSkipper](),
	SearchRequestPath:    reflect.TypeFor[PathMutator](),
	FormattedRequest:     reflect.TypeFor[RequestMutator](),
	IndexName:            reflect.TypeFor[IndexNamer](),
	DefaultShardCount:    reflect.TypeFor[ShardCounter](),
	IndexableKinds:       reflect.TypeFor[KindFilter](),
	SyncTaxonomies:       reflect.TypeFor[TaxonomyFilter](),
	Permalink:            reflect.TypeFor[PermalinkFilter](),
	BulkIndex:            reflect.TypeFor[BulkIndexAction](),
}

// Registry maps events to ordered handler lists.
type Registry struct {
	handlers map[Event][]any
	logger   *zap.Logger
}

// New creates an empty registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{handlers: make(map[Event][]any), logger: logger}
}

// Add appends handler to event. It fails when the event is unknown or the handler
// lacks the event's capability. Adding a handler already present is a no-op.
func (r *Registry) Add(event Event, handler any) error {
	want, ok := capabilities[event]
	if !ok {
		return fmt.Errorf("hook: unknown event %q", event)
	}
	if handler == nil || !reflect.TypeOf(handler).Implements(want) {
		return fmt.Errorf("hook: %T does not implement %s for %q", handler, want.Name(), event)
	}
	if r.contains(event, handler) {
		return nil
	}
	r.handlers[event] = append(r.handlers[event], handler)
	r.logger.Debug("hook registered", zap.String("event", string(event)), zap.String("handler", fmt.Sprintf("%T", handler)))
	return nil
}

// Len returns the number of handlers registered for event.
func (r *Registry) Len(event Event) int {
	return len(r.handlers[event])
}

func (r *Registry) contains(event Event, handler any) bool {
	if !reflect.TypeOf(handler).Comparable() {
		return false
	}
	for _, h := range r.handlers[event] {
		if reflect.TypeOf(h).Comparable() && h == handler {
			return true
		}
	}
	return false
}

// ApplyQuery runs query mutators in order. Mutators consult SkipIntegration themselves.
func (r *Registry) ApplyQuery(ctx context.Context, q *query.Query) {
	for _, h := range r.handlers[BeforeQueryCompiled] {
		h.(QueryMutator).MutateQuery(ctx, q)
	}
}

// SkipIntegration reports whether any skipper declines integration for q.
func (r *Registry) SkipIntegration(ctx context.Context, q *query.Query) bool {
	for _, h := range r.handlers[SkipQueryIntegration] {
		if h.(IntegrationSkipper).SkipIntegration(ctx, q) {
			return true
		}
	}
	return false
}

// ApplyPath threads path through every path mutator.
func (r *Registry) ApplyPath(ctx context.Context, path string) string {
	for _, h := range r.handlers[SearchRequestPath] {
		path = h.(PathMutator).MutatePath(ctx, path)
	}
	return path
}

// ApplyRequest runs request mutators in order.
func (r *Registry) ApplyRequest(ctx context.Context, req *compiled.Request) {
	for _, h := range r.handlers[FormattedRequest] {
		h.(RequestMutator).MutateRequest(ctx, req)
	}
}

// ApplyIndexName threads the index name through every namer. The first error stops the chain.
func (r *Registry) ApplyIndexName(ctx context.Context, req IndexNameRequest, name string) (string, error) {
	for _, h := range r.handlers[IndexName] {
		var err error
		name, err = h.(IndexNamer).IndexName(ctx, req, name)
		if err != nil {
			return "", fmt.Errorf("index name: %w", err)
		}
	}
	return name, nil
}

// ApplyShardCount threads the shard count through every counter.
func (r *Registry) ApplyShardCount(n int) int {
	for _, h := range r.handlers[DefaultShardCount] {
		n = h.(ShardCounter).ShardCount(n)
	}
	return n
}

// ApplyKinds threads the kind registry through every kind filter.
func (r *Registry) ApplyKinds(kinds []kind.Kind) []kind.Kind {
	for _, h := range r.handlers[IndexableKinds] {
		kinds = h.(KindFilter).FilterKinds(kinds)
	}
	return kinds
}

// ApplyTaxonomies threads the taxonomy list through every taxonomy filter.
func (r *Registry) ApplyTaxonomies(taxonomies []string) []string {
	for _, h := range r.handlers[SyncTaxonomies] {
		taxonomies = h.(TaxonomyFilter).FilterTaxonomies(taxonomies)
	}
	return taxonomies
}

// ApplyPermalink threads a rendered permalink through every permalink filter.
func (r *Registry) ApplyPermalink(ctx context.Context, rc RenderContext, permalink string) string {
	for _, h := range r.handlers[Permalink] {
		permalink = h.(PermalinkFilter).FilterPermalink(ctx, rc, permalink)
	}
	return permalink
}

// RunBulkIndex invokes every bulk action in order. Every action runs; errors are joined.
func (r *Registry) RunBulkIndex(ctx context.Context, run BulkRun) error {
	var errs []error
	for _, h := range r.handlers[BulkIndex] {
		if err := h.(BulkIndexAction).AfterBulkIndex(ctx, run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
