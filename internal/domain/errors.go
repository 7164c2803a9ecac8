package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrTenantNotFound signals an unknown tenant id.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrInvalidQuery signals a malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRequestPath signals an engine request path that cannot be parsed.
	ErrInvalidRequestPath = errors.New("invalid request path")
	// ErrRequestTooLarge signals that a search would touch more shards than the engine allows.
	ErrRequestTooLarge = errors.New("request too large")
	// ErrFeatureUnavailable signals a feature whose requirements are not met.
	ErrFeatureUnavailable = errors.New("feature unavailable")
	// ErrUnsupportedKind signals a content kind the indexer has no source for.
	ErrUnsupportedKind = errors.New("unsupported kind")
	// ErrUnknownFeature signals a feature slug that was never registered.
	ErrUnknownFeature = errors.New("unknown feature")
)

// ShardLimitError wraps ErrRequestTooLarge with the shard arithmetic that tripped it.
type ShardLimitError struct {
	Indices int
	Shards  int
	Limit   int
}

func (e *ShardLimitError) Error() string {
	return fmt.Sprintf("%s: %d shards across %d indices exceeds limit %d",
		ErrRequestTooLarge.Error(), e.Shards, e.Indices, e.Limit)
}

func (e *ShardLimitError) Unwrap() error { return ErrRequestTooLarge }

// NewShardLimit creates a shard limit error.
func NewShardLimit(indices, shards, limit int) error {
	return &ShardLimitError{Indices: indices, Shards: shards, Limit: limit}
}
