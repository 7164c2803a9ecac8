package result

import (
	"testing"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

func TestNew_Getters(t *testing.T) {
	h := New("site-1", "42", kind.Group, "Hikers", "We hike", "/groups/hikers", 1.5)

	if h.Index() != "site-1" || h.ID() != "42" || h.Kind() != kind.Group {
		t.Errorf("unexpected identity: %+v", h)
	}
	if h.Title() != "Hikers" || h.Excerpt() != "We hike" {
		t.Errorf("unexpected text: %+v", h)
	}
	if h.Permalink() != "/groups/hikers" || h.Score() != 1.5 {
		t.Errorf("unexpected permalink/score: %+v", h)
	}

	item := Item{Hit: h, URL: h.Permalink()}
	if item.ID() != "42" {
		t.Error("item should expose embedded hit")
	}
}
