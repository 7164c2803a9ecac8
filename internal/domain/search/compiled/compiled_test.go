package compiled

import (
	"encoding/json"
	"testing"
)

func TestClause_References(t *testing.T) {
	if !TermsClause(TypeField, "article").References(TypeField) {
		t.Error("terms clause should reference its field")
	}
	if !TermClause("post_status", "publish").References("post_status") {
		t.Error("term clause should reference its field")
	}
	if TermClause("post_status", "publish").References(TypeField) {
		t.Error("unexpected reference")
	}
}

func TestStoredField(t *testing.T) {
	if got := StoredField("post_type.raw"); got != "post_type" {
		t.Errorf("got %q", got)
	}
	if got := StoredField("post_status"); got != "post_status" {
		t.Errorf("got %q", got)
	}
}

func TestRequest_JSONShape(t *testing.T) {
	req := Request{
		Query:      Query{Text: "hike"},
		PostFilter: Filter{Bool: Bool{Must: []Clause{TermsClause(TypeField, "article")}}},
		Size:       10,
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"query":{"query":"hike"},"post_filter":{"bool":{"must":[{"terms":{"post_type.raw":["article"]}}]}},` +
		`"from":0,"size":10}`
	if string(data) != want {
		t.Errorf("json =\n%s\nwant\n%s", data, want)
	}
}
