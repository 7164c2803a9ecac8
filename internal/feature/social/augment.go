package social

import (
	"context"
	"slices"
	"strings"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/social"
)

const (
	documentPathSegment = "/post/"
	socialPathSegment   = "/post,group,member/"
)

// Augmenter widens kind sets, the request path and synchronized taxonomies
// so that group and member records are indexed and searched with documents.
type Augmenter struct {
	kinds   []kind.Kind // auxiliary kinds followed by extension document kinds
	skipper Skipper
}

// NewAugmenter creates an augmenter adding the auxiliary kinds plus extra.
// A nil skipper never vetoes.
func NewAugmenter(extra []kind.Kind, skipper Skipper) *Augmenter {
	return &Augmenter{
		kinds:   kind.Union(kind.Auxiliary(), extra...),
		skipper: skipper,
	}
}

// Kinds returns the kinds the augmenter adds.
func (a *Augmenter) Kinds() []kind.Kind {
	return slices.Clone(a.kinds)
}

// FilterKinds returns kinds plus every augmented kind, deduplicated.
func (a *Augmenter) FilterKinds(kinds []kind.Kind) []kind.Kind {
	return kind.Union(kinds, a.kinds...)
}

// MutateQuery widens the query's type constraint. Bulk-origin queries and
// queries vetoed by the skipper are left alone.
func (a *Augmenter) MutateQuery(ctx context.Context, q *query.Query) {
	if q == nil || q.Origin() == query.OriginBulk {
		return
	}
	if a.skipper != nil && a.skipper.SkipIntegration(ctx, q) {
		return
	}
	q.SetKinds(a.FilterKinds(q.Kinds()))
}

// MutatePath points a document-only request path at all three resource classes.
// Only the first document segment is rewritten.
func (a *Augmenter) MutatePath(_ context.Context, path string) string {
	return strings.Replace(path, documentPathSegment, socialPathSegment, 1)
}

// FilterTaxonomies adds the member type taxonomy.
func (a *Augmenter) FilterTaxonomies(taxonomies []string) []string {
	if slices.Contains(taxonomies, social.MemberTypeTaxonomy) {
		return taxonomies
	}
	return append(slices.Clone(taxonomies), social.MemberTypeTaxonomy)
}
