package query

import (
	"fmt"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

// Search parameter limits.
const (
	// MaxTextLength is the maximum allowed search text length.
	MaxTextLength = 4096
	DefaultSize   = 10
	MaxSize       = 100
	MaxFrom       = 10000
)

// Origin identifies the execution context that built the query.
type Origin int

const (
	// OriginSearch is a user-facing search request.
	OriginSearch Origin = iota
	// OriginBulk is the operator bulk-indexing run.
	OriginBulk
	// OriginAdmin is an administrative listing.
	OriginAdmin
)

func (o Origin) String() string {
	switch o {
	case OriginSearch:
		return "search"
	case OriginBulk:
		return "bulk"
	case OriginAdmin:
		return "admin"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Query is an in-flight query object. Hooks mutate it in place before compilation.
type Query struct {
	text     string
	kinds    []kind.Kind
	tenantID string
	origin   Origin
	from     int
	size     int
}

// New validates and normalizes a query. Defaults: size=10, from=0.
func New(text string, kinds []kind.Kind, tenantID string, origin Origin, from, size int) (Query, error) {
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("search text too long (max %d chars)", MaxTextLength)
	}
	if tenantID == "" {
		return Query{}, fmt.Errorf("tenant is required")
	}
	if from < 0 {
		return Query{}, fmt.Errorf("from must not be negative")
	}
	if from > MaxFrom {
		return Query{}, fmt.Errorf("from too large (max %d)", MaxFrom)
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{
		text:     text,
		kinds:    kind.Union(kinds),
		tenantID: tenantID,
		origin:   origin,
		from:     from,
		size:     size,
	}, nil
}

// Text returns the search text.
func (q *Query) Text() string { return q.text }

// Kinds returns the type constraint; empty means "all searchable kinds".
func (q *Query) Kinds() []kind.Kind { return q.kinds }

// SetKinds replaces the type constraint.
func (q *Query) SetKinds(k []kind.Kind) { q.kinds = kind.Union(k) }

// TenantID returns the tenant the query runs on.
func (q *Query) TenantID() string { return q.tenantID }

// Origin returns the execution context.
func (q *Query) Origin() Origin { return q.origin }

// From returns the result offset.
func (q *Query) From() int { return q.from }

// Size returns the page size.
func (q *Query) Size() int { return q.size }

// IsSearch reports whether this is a live user-facing search.
func (q *Query) IsSearch() bool { return q.origin == OriginSearch && q.text != "" }
