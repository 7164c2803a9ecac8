package redis

import (
	"context"
	"maps"
	"slices"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/socialsearch/internal/db"
)

// hset builds an HSET with fields in sorted order so identical records produce identical commands.
func (s *Store) hset(key string, fields map[string]string) rueidis.Completed {
	cmd := s.client.B().Hset().Key(key).FieldValue()
	for _, f := range slices.Sorted(maps.Keys(fields)) {
		cmd = cmd.FieldValue(f, fields[f])
	}
	return cmd.Build()
}

// HSet writes fields into the hash at key.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	if err := s.client.Do(ctx, s.hset(key, fields)).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Key: key, Err: err}
	}
	return nil
}

// HSetMulti pipelines one HSET per item. The first failing item is reported.
func (s *Store) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}
	cmds := make([]rueidis.Completed, 0, len(items))
	for _, it := range items {
		cmds = append(cmds, s.hset(it.Key, it.Fields))
	}
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Key: items[i].Key, Err: err}
		}
	}
	return nil
}

// HGetAll returns every field of the hash at key. A missing key yields an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := s.client.Do(ctx, s.client.B().Hgetall().Key(key).Build()).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Key: key, Err: err}
	}
	return m, nil
}

// HGetAllMulti pipelines HGETALL for keys and returns the maps in key order.
func (s *Store) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	cmds := make([]rueidis.Completed, 0, len(keys))
	for _, k := range keys {
		cmds = append(cmds, s.client.B().Hgetall().Key(k).Build())
	}

	out := make([]map[string]string, len(keys))
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Key: keys[i], Err: err}
		}
		out[i] = m
	}
	return out, nil
}
