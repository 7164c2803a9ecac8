package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/feature/social"
	"github.com/kailas-cloud/socialsearch/internal/hook"
)

func newQuery(t *testing.T, text string, kinds ...kind.Kind) query.Query {
	t.Helper()
	q, err := query.New(text, kinds, "1", query.OriginSearch, 0, 10)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func TestCompile(t *testing.T) {
	q := newQuery(t, "hike", kind.Article, kind.Group)
	got := Compile(&q)
	want := &compiled.Request{
		Query: compiled.Query{Text: "hike", Fields: []string{"title", "content"}},
		PostFilter: compiled.Filter{Bool: compiled.Bool{Must: []compiled.Clause{
			compiled.TermClause("post_status", "publish"),
			compiled.TermsClause(compiled.TypeField, "article", "group"),
		}}},
		Size: 10,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compile (-want +got):\n%s", diff)
	}
}

func TestSearch_WithoutFeature(t *testing.T) {
	engine := &mockEngine{}
	svc := New(hook.New(nil), engine, tenants("1"), siteNamer{})

	if _, err := svc.Search(context.Background(), newQuery(t, "hike")); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if engine.path != "ss:site-1/post/_search" {
		t.Errorf("path = %q", engine.path)
	}
	last := engine.req.PostFilter.Bool.Must[len(engine.req.PostFilter.Bool.Must)-1]
	if diff := cmp.Diff(compiled.TermsClause(compiled.TypeField, "article", "page"), last); diff != "" {
		t.Errorf("type clause (-want +got):\n%s", diff)
	}
}

func TestSearch_WithSocialFeature(t *testing.T) {
	hooks := hook.New(nil)
	ts := tenants("1", "2")
	f := social.New(social.Options{}, social.Deps{Tenants: ts, Namer: siteNamer{}}, nil)
	if err := f.Setup(hooks); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	group := result.New("ss:site-2", "7", kind.Group, "Hikers", "", "/groups/hikers/", 2)
	article := result.New("ss:site-1", "10", kind.Article, "Trail", "", "/trail/", 1)
	member := result.New("ss:site-1", "3", kind.Member, "Ada", "", "", 0.5)
	engine := &mockEngine{set: result.Set{Hits: []result.Hit{group, article, member}, Total: 3}}
	svc := New(hooks, engine, ts, siteNamer{})

	page, err := svc.Search(context.Background(), newQuery(t, "hike"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if engine.path != "_all/post,group,member/_search" {
		t.Errorf("path = %q", engine.path)
	}
	for _, c := range engine.req.PostFilter.Bool.Must {
		if c.References(compiled.TypeField) {
			t.Errorf("type clause survived translation: %+v", c)
		}
	}

	var urls []string
	for _, it := range page.Items {
		urls = append(urls, it.URL)
	}
	// The member has no stored permalink and keeps the id lookup URL.
	if diff := cmp.Diff([]string{"/groups/hikers/", "/trail/", "/?p=3"}, urls); diff != "" {
		t.Errorf("urls (-want +got):\n%s", diff)
	}
	if page.Total != 3 {
		t.Errorf("Total = %d", page.Total)
	}
}

func TestSearch_EnumeratesFromRoot(t *testing.T) {
	hooks := hook.New(nil)
	ts := tenants("1", "2", "3")
	f := social.New(social.Options{Strategy: social.StrategyEnumerate, RootTenant: "1"},
		social.Deps{Tenants: ts, Namer: siteNamer{}}, nil)
	if err := f.Setup(hooks); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	engine := &mockEngine{}
	svc := New(hooks, engine, ts, siteNamer{})

	if _, err := svc.Search(context.Background(), newQuery(t, "hike")); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if engine.path != "ss:site-1,ss:site-2,ss:site-3/post,group,member/_search" {
		t.Errorf("path = %q", engine.path)
	}
}

func TestSearch_Errors(t *testing.T) {
	t.Run("unknown tenant", func(t *testing.T) {
		svc := New(hook.New(nil), &mockEngine{}, tenants(), siteNamer{})
		if _, err := svc.Search(context.Background(), newQuery(t, "hike")); !errors.Is(err, domain.ErrTenantNotFound) {
			t.Errorf("error = %v", err)
		}
	})
	t.Run("engine failure", func(t *testing.T) {
		engine := &mockEngine{err: domain.NewShardLimit(2, 10, 5)}
		svc := New(hook.New(nil), engine, tenants("1"), siteNamer{})
		if _, err := svc.Search(context.Background(), newQuery(t, "hike")); !errors.Is(err, domain.ErrRequestTooLarge) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestDefaultPermalink(t *testing.T) {
	tests := []struct {
		name string
		hit  result.Hit
		want string
	}{
		{"document with permalink", result.New("i", "1", kind.Page, "", "", "/about/", 0), "/about/"},
		{"document without permalink", result.New("i", "2", kind.Article, "", "", "", 0), "/?p=2"},
		{"group ignores stored permalink", result.New("i", "3", kind.Group, "", "", "/groups/x/", 0), "/?p=3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultPermalink(&tt.hit); got != tt.want {
				t.Errorf("defaultPermalink = %q, want %q", got, tt.want)
			}
		})
	}
}
