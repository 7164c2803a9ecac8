package document

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/socialsearch/internal/db"
	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domdoc.Document) map[string]string {
	m := make(map[string]string, 7+len(doc.Terms()))
	m[domdoc.FieldID] = doc.ID()
	m[domdoc.FieldClass] = string(doc.Class())
	m[domdoc.FieldKind] = string(doc.Kind())
	m[domdoc.FieldStatus] = doc.Status()
	m[domdoc.FieldTitle] = doc.Title()
	m[domdoc.FieldContent] = doc.Content()
	if doc.Permalink() != "" {
		m[domdoc.FieldPermalink] = doc.Permalink()
	}
	for tax, terms := range doc.Terms() {
		if len(terms) == 0 {
			continue
		}
		sorted := append([]string(nil), terms...)
		sort.Strings(sorted)
		m[domdoc.TaxonomyField(tax)] = strings.Join(sorted, domdoc.TermSeparator)
	}
	return m
}

func buildItems(index string, docs []domdoc.Document) []db.HashSetItem {
	items := make([]db.HashSetItem, len(docs))
	for i := range docs {
		items[i] = db.HashSetItem{
			Key:    domdoc.Key(index, docs[i].Class(), docs[i].ID()),
			Fields: buildHashFields(&docs[i]),
		}
	}
	return items
}
