package compiled

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

// AllIndices is the index name that addresses every tenant index.
const AllIndices = "_all"

const searchEndpoint = "_search"

// Path is a parsed engine request path: <indices>/<classes>/_search.
type Path struct {
	Indices []string
	Classes []kind.Class
}

// BuildPath formats an engine request path. indices is an already joined index list.
func BuildPath(indices string, classes ...kind.Class) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = string(c)
	}
	return indices + "/" + strings.Join(parts, ",") + "/" + searchEndpoint
}

// ParsePath splits an engine request path into its index and class lists.
// Index and class lists are comma-separated; empty entries are dropped.
func ParsePath(p string) (Path, error) {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	if len(segs) != 3 || segs[2] != searchEndpoint {
		return Path{}, fmt.Errorf("%w: %q", domain.ErrInvalidRequestPath, p)
	}

	indices := splitList(segs[0])
	if len(indices) == 0 {
		return Path{}, fmt.Errorf("%w: no index in %q", domain.ErrInvalidRequestPath, p)
	}

	names := splitList(segs[1])
	if len(names) == 0 {
		return Path{}, fmt.Errorf("%w: no class in %q", domain.ErrInvalidRequestPath, p)
	}
	classes := make([]kind.Class, 0, len(names))
	for _, n := range names {
		c := kind.Class(n)
		if !c.IsValid() {
			return Path{}, fmt.Errorf("%w: unknown class %q", domain.ErrInvalidRequestPath, n)
		}
		classes = append(classes, c)
	}

	return Path{Indices: indices, Classes: classes}, nil
}

// IsAll reports whether the path targets every index.
func (p Path) IsAll() bool {
	return len(p.Indices) == 1 && p.Indices[0] == AllIndices
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
