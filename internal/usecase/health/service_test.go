package health

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockIndexes struct {
	exists bool
	err    error
	asked  string
}

func (m *mockIndexes) IndexExists(_ context.Context, name string) (bool, error) {
	m.asked = name
	return m.exists, m.err
}

type mockProbe struct {
	ok  bool
	err error
}

func (m *mockProbe) Installed(_ context.Context) (bool, error) { return m.ok, m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		db      error
		indexes *mockIndexes
		probe   *mockProbe
		want    Report
	}{
		{
			name:    "all healthy",
			indexes: &mockIndexes{exists: true},
			probe:   &mockProbe{ok: true},
			want: Report{Status: Healthy, Checks: map[string]CheckResult{
				CheckDatabase: CheckOK, CheckDirectory: CheckOK, CheckSocial: CheckOK,
			}},
		},
		{
			name:    "database down",
			db:      boom,
			indexes: &mockIndexes{exists: true},
			probe:   &mockProbe{ok: true},
			want:    Report{Status: Unhealthy, Checks: map[string]CheckResult{CheckDatabase: CheckError}},
		},
		{
			name:    "directory missing",
			indexes: &mockIndexes{},
			probe:   &mockProbe{ok: true},
			want: Report{Status: Degraded, Checks: map[string]CheckResult{
				CheckDatabase: CheckOK, CheckDirectory: CheckMissing, CheckSocial: CheckOK,
			}},
		},
		{
			name:    "probe error",
			indexes: &mockIndexes{exists: true},
			probe:   &mockProbe{err: boom},
			want: Report{Status: Degraded, Checks: map[string]CheckResult{
				CheckDatabase: CheckOK, CheckDirectory: CheckOK, CheckSocial: CheckError,
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockDBPinger{err: tt.db}, tt.indexes, "ss:tenants", tt.probe)
			got := svc.Check(context.Background())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Check (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheck_OptionalComponents(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, "", nil)
	r := svc.Check(context.Background())
	if r.Status != Healthy || len(r.Checks) != 1 {
		t.Errorf("report = %+v", r)
	}
}

func TestCheck_AsksForDirectory(t *testing.T) {
	idx := &mockIndexes{exists: true}
	New(&mockDBPinger{}, idx, "ss:tenants", nil).Check(context.Background())
	if idx.asked != "ss:tenants" {
		t.Errorf("asked for %q", idx.asked)
	}
}
