package social

import (
	"context"
	"slices"
	"testing"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/social"
)

func TestFilterKinds_SupersetAndIdempotent(t *testing.T) {
	a := NewAugmenter(nil, nil)
	registries := [][]kind.Kind{
		nil,
		{kind.Article},
		{kind.Article, kind.Page, kind.Group},
		{kind.Member, kind.Member, kind.Article},
	}
	for _, r := range registries {
		once := a.FilterKinds(r)
		for _, k := range append(slices.Clone(r), kind.Group, kind.Member) {
			if !kind.Contains(once, k) {
				t.Errorf("FilterKinds(%v) = %v, missing %s", r, once, k)
			}
		}
		if len(kind.Union(once)) != len(once) {
			t.Errorf("FilterKinds(%v) has duplicates: %v", r, once)
		}
		if twice := a.FilterKinds(once); !slices.Equal(twice, once) {
			t.Errorf("not idempotent: %v then %v", once, twice)
		}
	}
}

func TestFilterKinds_ExtensionDocuments(t *testing.T) {
	a := NewAugmenter(kind.ExtensionDocuments(), nil)
	got := a.FilterKinds([]kind.Kind{kind.Article})
	want := append([]kind.Kind{kind.Article, kind.Group, kind.Member}, kind.ExtensionDocuments()...)
	if !slices.Equal(got, want) {
		t.Errorf("FilterKinds = %v, want %v", got, want)
	}
}

func TestMutateQuery(t *testing.T) {
	tests := []struct {
		name    string
		origin  query.Origin
		skipper Skipper
		want    []kind.Kind
	}{
		{"search widened", query.OriginSearch, nil, []kind.Kind{kind.Article, kind.Group, kind.Member}},
		{"admin widened", query.OriginAdmin, skipper(false), []kind.Kind{kind.Article, kind.Group, kind.Member}},
		{"bulk untouched", query.OriginBulk, nil, []kind.Kind{kind.Article}},
		{"skipped", query.OriginSearch, skipper(true), []kind.Kind{kind.Article}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAugmenter([]kind.Kind{}, tc.skipper)
			q := searchQuery(t, "chess", tc.origin, kind.Article)
			a.MutateQuery(context.Background(), q)
			if !slices.Equal(q.Kinds(), tc.want) {
				t.Errorf("kinds = %v, want %v", q.Kinds(), tc.want)
			}
		})
	}
}

func TestMutateQuery_Nil(t *testing.T) {
	NewAugmenter(nil, nil).MutateQuery(context.Background(), nil)
}

func TestMutatePath(t *testing.T) {
	a := NewAugmenter(nil, nil)
	tests := []struct{ in, want string }{
		{"_all/post/_search", "_all/post,group,member/_search"},
		{"site-1,site-2/post/_search", "site-1,site-2/post,group,member/_search"},
		{"/post/post/_search", "/post,group,member/post/_search"},
		{"site-1/group/_search", "site-1/group/_search"},
		{"site-1/posts/_search", "site-1/posts/_search"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := a.MutatePath(context.Background(), tc.in); got != tc.want {
			t.Errorf("MutatePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilterTaxonomies(t *testing.T) {
	a := NewAugmenter(nil, nil)
	in := []string{"category", "post_tag"}
	got := a.FilterTaxonomies(in)
	if !slices.Equal(got, []string{"category", "post_tag", social.MemberTypeTaxonomy}) {
		t.Errorf("FilterTaxonomies = %v", got)
	}
	if len(in) != 2 {
		t.Error("input mutated")
	}
	if again := a.FilterTaxonomies(got); len(again) != len(got) {
		t.Errorf("taxonomy added twice: %v", again)
	}
}
