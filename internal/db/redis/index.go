package redis

import (
	"context"
	"strconv"

	"github.com/kailas-cloud/socialsearch/internal/db"
)

// CreateIndex issues FT.CREATE. An index that already exists yields db.ErrIndexExists.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := createArgs(def)
	if err != nil {
		return err
	}
	cmd := s.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Key: def.Name, Err: err}
	}
	return nil
}

// DropIndex removes the index definition. The indexed hashes stay.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	cmd := s.client.B().Arbitrary("FT.DROPINDEX").Args(name).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isUnknownIndex(err) {
			return db.ErrIndexNotFound
		}
		return &db.Error{Op: db.OpDropIndex, Key: name, Err: err}
	}
	return nil
}

// IndexExists asks FT.INFO about name.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.client.B().Arbitrary("FT.INFO").Args(name).Build()
	err := s.client.Do(ctx, cmd).Error()
	switch {
	case err == nil:
		return true, nil
	case isUnknownIndex(err):
		return false, nil
	default:
		return false, &db.Error{Op: db.OpIndexInfo, Key: name, Err: err}
	}
}

// ListIndexes returns every index name from FT._LIST.
func (s *Store) ListIndexes(ctx context.Context) ([]string, error) {
	names, err := s.client.Do(ctx, s.client.B().Arbitrary("FT._LIST").Build()).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpListIndexes, Err: err}
	}
	return names, nil
}

// createArgs renders def as FT.CREATE arguments, index name first.
func createArgs(def *db.IndexDefinition) ([]string, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	args := []string{def.Name, "ON", "HASH", "PREFIX", "1", def.Prefix, "SCHEMA"}
	for i := range def.Fields {
		f := &def.Fields[i]
		args = append(args, f.Name)
		switch f.Type {
		case db.FieldTag:
			args = append(args, "TAG")
			if f.Separator != "" {
				args = append(args, "SEPARATOR", f.Separator)
			}
			if f.CaseSensitive {
				args = append(args, "CASESENSITIVE")
			}
		case db.FieldText:
			args = append(args, "TEXT")
			if f.Weight > 0 {
				args = append(args, "WEIGHT", strconv.FormatFloat(f.Weight, 'g', -1, 64))
			}
		}
	}
	return args, nil
}
