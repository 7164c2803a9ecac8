package chi

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/feature"
	healthuc "github.com/kailas-cloud/socialsearch/internal/usecase/health"
)

type mockSearcher struct {
	searchFn func(ctx context.Context, q query.Query) (result.Page, error)
	last     query.Query
}

func (m *mockSearcher) Search(ctx context.Context, q query.Query) (result.Page, error) {
	m.last = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	domain.SearchUsageFromContext(ctx).Record(1, 1)
	return result.Page{}, nil
}

type mockFeatures struct {
	items []feature.Info
}

func (m *mockFeatures) List(context.Context) []feature.Info { return m.items }

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }
