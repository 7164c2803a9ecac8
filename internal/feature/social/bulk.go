package social

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/hook"
)

// phases run in order; progress lines are part of the operator surface.
var phases = []struct {
	kind     kind.Kind
	progress string
}{
	{kind.Group, "Indexing groups..."},
	{kind.Member, "Indexing members..."},
}

// BulkDriver indexes groups and then members after a native bulk reindex.
type BulkDriver struct {
	indexer KindIndexer
}

// NewBulkDriver creates a bulk driver over indexer.
func NewBulkDriver(indexer KindIndexer) *BulkDriver {
	return &BulkDriver{indexer: indexer}
}

// AfterBulkIndex implements hook.BulkIndexAction. Every phase runs even if an earlier one failed.
func (d *BulkDriver) AfterBulkIndex(ctx context.Context, run hook.BulkRun) error {
	console := run.Console
	if console == nil {
		console = io.Discard
	}

	var errs []error
	for _, p := range phases {
		fmt.Fprintln(console, p.progress)
		if err := d.indexer.IndexKind(ctx, run.Tenant, p.kind); err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", p.kind, err))
		}
	}
	return errors.Join(errs...)
}
