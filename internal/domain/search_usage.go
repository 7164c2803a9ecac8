package domain

import "context"

type searchUsageKey struct{}

// SearchUsage collects engine fan-out for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the engine adapter writes after resolving targets; the handler reads it for response headers.
type SearchUsage struct {
	Indices int
	Shards  int
	Used    bool // true if the engine was reached, even when nothing matched
}

// NewContextWithSearchUsage returns a context with an embedded usage collector.
func NewContextWithSearchUsage(ctx context.Context) (context.Context, *SearchUsage) {
	u := &SearchUsage{}
	return context.WithValue(ctx, searchUsageKey{}, u), u
}

// SearchUsageFromContext extracts the usage collector from context. Returns nil if not set.
func SearchUsageFromContext(ctx context.Context) *SearchUsage {
	u, _ := ctx.Value(searchUsageKey{}).(*SearchUsage)
	return u
}

// Record stores the fan-out of one engine request.
func (u *SearchUsage) Record(indices, shards int) {
	if u != nil {
		u.Indices += indices
		u.Shards += shards
		u.Used = true
	}
}
