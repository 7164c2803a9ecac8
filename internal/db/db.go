// Package db declares the storage contract shared by the repositories: hashes
// holding documents and tenant records, plain keys holding index metadata, and
// FT indexes searched over both.
package db

import (
	"context"
	"time"
)

// Store is everything the Redis implementation offers. Repositories depend on
// narrower, locally declared interfaces instead.
//
//nolint:interfacebloat // consumers depend on narrow sub-interfaces
type Store interface {
	Hashes
	Keys
	Indexes
	Searcher
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// HashSetItem is one hash written by a pipelined HSetMulti.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// Hashes reads and writes hash records.
type Hashes interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Keys covers plain string values and keyspace operations.
type Keys interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Indexes manages FT index lifecycle.
type Indexes interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	ListIndexes(ctx context.Context) ([]string, error)
}

// Searcher runs queries against FT indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*SearchResult, error)
}
