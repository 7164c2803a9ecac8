package search

import (
	"github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
)

// searchFields are the full-text fields every query scores against.
var searchFields = []string{document.FieldTitle, document.FieldContent}

// Compile builds the engine request for q: a text query over title and content
// plus a published-only clause and the type constraint.
func Compile(q *query.Query) *compiled.Request {
	must := []compiled.Clause{
		compiled.TermClause(document.FieldStatus, document.StatusPublish),
	}
	if kinds := q.Kinds(); len(kinds) > 0 {
		must = append(must, compiled.TermsClause(compiled.TypeField, kind.Strings(kinds)...))
	}
	return &compiled.Request{
		Query:      compiled.Query{Text: q.Text(), Fields: append([]string(nil), searchFields...)},
		PostFilter: compiled.Filter{Bool: compiled.Bool{Must: must}},
		From:       q.From(),
		Size:       q.Size(),
	}
}
