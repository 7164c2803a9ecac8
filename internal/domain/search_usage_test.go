package domain

import (
	"context"
	"errors"
	"testing"
)

func TestSearchUsage_RecordAccumulates(t *testing.T) {
	ctx, u := NewContextWithSearchUsage(context.Background())

	SearchUsageFromContext(ctx).Record(3, 3)
	SearchUsageFromContext(ctx).Record(1, 5)

	if u.Indices != 4 || u.Shards != 8 {
		t.Errorf("got indices=%d shards=%d, want 4 and 8", u.Indices, u.Shards)
	}
	if !u.Used {
		t.Error("expected Used=true")
	}
}

func TestSearchUsage_NilSafe(t *testing.T) {
	u := SearchUsageFromContext(context.Background())
	if u != nil {
		t.Fatal("expected nil collector without context value")
	}
	u.Record(1, 1) // must not panic
}

func TestShardLimitError_Unwrap(t *testing.T) {
	err := NewShardLimit(4, 1200, 1000)
	if !errors.Is(err, ErrRequestTooLarge) {
		t.Fatal("expected errors.Is ErrRequestTooLarge")
	}
	var sle *ShardLimitError
	if !errors.As(err, &sle) {
		t.Fatal("expected ShardLimitError")
	}
	if sle.Shards != 1200 || sle.Limit != 1000 || sle.Indices != 4 {
		t.Errorf("unexpected fields: %+v", sle)
	}
}
