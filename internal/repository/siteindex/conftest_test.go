package siteindex

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	indexes map[string]*db.IndexDefinition
	kv      map[string]string
	dropped []string

	existsErr error
}

func newMockStore() *mockStore {
	return &mockStore{indexes: map[string]*db.IndexDefinition{}, kv: map[string]string{}}
}

func (m *mockStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if _, ok := m.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}
	m.indexes[def.Name] = def
	return nil
}

func (m *mockStore) DropIndex(_ context.Context, name string) error {
	if _, ok := m.indexes[name]; !ok {
		return db.ErrIndexNotFound
	}
	delete(m.indexes, name)
	m.dropped = append(m.dropped, name)
	return nil
}

func (m *mockStore) IndexExists(_ context.Context, name string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.indexes[name]
	return ok, nil
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return []byte(v), nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	m.kv[key] = string(value)
	return nil
}
