package index

import (
	"context"

	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/social"
	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
	"github.com/kailas-cloud/socialsearch/internal/hook"
)

type ensureCall struct {
	name       string
	shards     int
	taxonomies []string
	recreate   bool
}

type mockIndexes struct {
	calls []ensureCall
	err   error
}

func (m *mockIndexes) Ensure(_ context.Context, name string, shards int, taxonomies []string, recreate bool) (bool, error) {
	m.calls = append(m.calls, ensureCall{name, shards, taxonomies, recreate})
	return m.err == nil, m.err
}

type mockContent struct {
	docs []domdoc.Document
	err  error
}

func (m *mockContent) Documents(context.Context, string) ([]domdoc.Document, error) {
	return m.docs, m.err
}

type mockSocial struct {
	groups  []social.Group
	members []social.Member
	err     error
}

func (m *mockSocial) Groups(context.Context, string) ([]social.Group, error) { return m.groups, m.err }

func (m *mockSocial) Members(context.Context, string) ([]social.Member, error) { return m.members, m.err }

type mockWriter struct {
	putFn     func(index string, docs []domdoc.Document) error
	deleteErr error
	batches   [][]domdoc.Document
	indexes   []string
	deleted   []string
}

func (m *mockWriter) PutBatch(_ context.Context, index string, docs []domdoc.Document) error {
	m.indexes = append(m.indexes, index)
	if m.putFn != nil {
		if err := m.putFn(index, docs); err != nil {
			return err
		}
	}
	m.batches = append(m.batches, docs)
	return nil
}

func (m *mockWriter) Delete(_ context.Context, index string, class kind.Class, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, domdoc.Key(index, class, id))
	return nil
}

func (m *mockWriter) ids() []string {
	var out []string
	for _, b := range m.batches {
		for i := range b {
			out = append(out, b[i].ID())
		}
	}
	return out
}

type oneShard struct{}

func (oneShard) ShardCount(int) int { return 1 }

type memberTypes struct{}

func (memberTypes) FilterTaxonomies(t []string) []string {
	return append(append([]string(nil), t...), social.MemberTypeTaxonomy)
}

type bulkRecorder struct{ runs []hook.BulkRun }

func (b *bulkRecorder) AfterBulkIndex(_ context.Context, run hook.BulkRun) error {
	b.runs = append(b.runs, run)
	return nil
}

type fixture struct {
	svc     *Service
	hooks   *hook.Registry
	indexes *mockIndexes
	content *mockContent
	social  *mockSocial
	writer  *mockWriter
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		hooks:   hook.New(nil),
		indexes: &mockIndexes{},
		content: &mockContent{},
		social:  &mockSocial{},
		writer:  &mockWriter{},
	}
	f.svc = New(f.hooks, NewNamer("ss:"), f.indexes, f.content, f.social, f.writer, cfg, nil)
	return f
}

func site(id string) tenant.Tenant {
	return tenant.Reconstruct(id, "Site "+id, "https://example.org/"+id, tenant.StatusActive, "")
}

func mustDoc(id string, k kind.Kind, terms map[string][]string) domdoc.Document {
	d, err := domdoc.New(id, k, "title "+id, "content "+id, "", "", terms)
	if err != nil {
		panic(err)
	}
	return d
}
