package compiled

import (
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

func TestBuildPath(t *testing.T) {
	if got := BuildPath(AllIndices, kind.ClassPost); got != "_all/post/_search" {
		t.Errorf("BuildPath = %q", got)
	}
	if got := BuildPath("site-1,site-2", kind.ClassPost, kind.ClassGroup); got != "site-1,site-2/post,group/_search" {
		t.Errorf("BuildPath = %q", got)
	}
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("/site-1,site-2/post,group,member/_search")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if !slices.Equal(p.Indices, []string{"site-1", "site-2"}) {
		t.Errorf("indices = %v", p.Indices)
	}
	if !slices.Equal(p.Classes, []kind.Class{kind.ClassPost, kind.ClassGroup, kind.ClassMember}) {
		t.Errorf("classes = %v", p.Classes)
	}
	if p.IsAll() {
		t.Error("explicit list is not _all")
	}

	all, err := ParsePath("_all/post/_search")
	if err != nil || !all.IsAll() {
		t.Errorf("expected _all path, got %+v, %v", all, err)
	}
}

func TestParsePath_Invalid(t *testing.T) {
	for _, p := range []string{
		"",
		"site-1/post",
		"site-1/post/_count",
		",/post/_search",
		"site-1//_search",
		"site-1/comment/_search",
	} {
		if _, err := ParsePath(p); !errors.Is(err, domain.ErrInvalidRequestPath) {
			t.Errorf("ParsePath(%q) error = %v", p, err)
		}
	}
}
