package query

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New("hiking", nil, "1", OriginSearch, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Size() != DefaultSize {
		t.Errorf("size = %d, want %d", q.Size(), DefaultSize)
	}
	if !q.IsSearch() {
		t.Error("expected IsSearch")
	}
}

func TestNew_ClampsSize(t *testing.T) {
	q, err := New("x", nil, "1", OriginSearch, 0, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Size() != MaxSize {
		t.Errorf("size = %d, want %d", q.Size(), MaxSize)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		tenant  string
		from    int
		wantErr string
	}{
		{"long text", strings.Repeat("a", MaxTextLength+1), "1", 0, "too long"},
		{"no tenant", "x", "", 0, "tenant is required"},
		{"negative from", "x", "1", -1, "negative"},
		{"big from", "x", "1", MaxFrom + 1, "from too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.text, nil, tt.tenant, OriginSearch, tt.from, 10)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIsSearch(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		origin Origin
		want   bool
	}{
		{"live search", "x", OriginSearch, true},
		{"empty text", "", OriginSearch, false},
		{"bulk", "x", OriginBulk, false},
		{"admin", "x", OriginAdmin, false},
	}
	for _, tt := range tests {
		q, err := New(tt.text, nil, "1", tt.origin, 0, 10)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := q.IsSearch(); got != tt.want {
			t.Errorf("%s: IsSearch = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSetKinds_Dedups(t *testing.T) {
	q, _ := New("x", []kind.Kind{kind.Article}, "1", OriginSearch, 0, 10)
	q.SetKinds([]kind.Kind{kind.Article, kind.Group, kind.Group})
	if !reflect.DeepEqual(q.Kinds(), []kind.Kind{kind.Article, kind.Group}) {
		t.Errorf("kinds = %v", q.Kinds())
	}
}

func TestOrigin_String(t *testing.T) {
	if OriginBulk.String() != "bulk" {
		t.Errorf("got %q", OriginBulk.String())
	}
	if Origin(9).String() != "origin(9)" {
		t.Errorf("got %q", Origin(9).String())
	}
}
