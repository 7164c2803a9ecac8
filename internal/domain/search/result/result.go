package result

import "github.com/kailas-cloud/socialsearch/internal/domain/kind"

// Hit is a single engine hit before rendering.
type Hit struct {
	index     string
	id        string
	kind      kind.Kind
	title     string
	excerpt   string
	permalink string
	score     float64
}

// New creates a search hit. permalink is the stored kind-native permalink (may be empty).
func New(index, id string, k kind.Kind, title, excerpt, permalink string, score float64) Hit {
	return Hit{
		index: index, id: id, kind: k, title: title,
		excerpt: excerpt, permalink: permalink, score: score,
	}
}

// Index returns the engine index the hit came from.
func (h *Hit) Index() string { return h.index }

// ID returns the native identifier.
func (h *Hit) ID() string { return h.id }

// Kind returns the content kind.
func (h *Hit) Kind() kind.Kind { return h.kind }

// Title returns the hit title.
func (h *Hit) Title() string { return h.title }

// Excerpt returns a content excerpt.
func (h *Hit) Excerpt() string { return h.excerpt }

// Permalink returns the stored kind-native permalink.
func (h *Hit) Permalink() string { return h.permalink }

// Score returns the relevance score.
func (h *Hit) Score() float64 { return h.score }

// Item is a rendered search result.
type Item struct {
	Hit
	URL string
}

// Page is one rendered page of search results.
type Page struct {
	Items []Item
	Total int
}

// Set is the merged engine response for one request.
type Set struct {
	Hits  []Hit
	Total int
}
