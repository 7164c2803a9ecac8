package document

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

// StatusPublish marks a document visible to search.
const StatusPublish = "publish"

// Document is an engine record for any content kind (immutable value object).
type Document struct {
	id        string
	kind      kind.Kind
	title     string
	content   string
	status    string
	permalink string
	terms     map[string][]string
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Kind is required; status defaults to publish.
func New(
	id string, k kind.Kind, title, content, status, permalink string, terms map[string][]string,
) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if k == "" {
		return Document{}, fmt.Errorf("document kind is required")
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}
	if status == "" {
		status = StatusPublish
	}

	return Document{
		id:        id,
		kind:      k,
		title:     title,
		content:   content,
		status:    status,
		permalink: permalink,
		terms:     cloneTerms(terms),
	}, nil
}

// ID returns the document identifier (unique within its class).
func (d *Document) ID() string { return d.id }

// Kind returns the content kind.
func (d *Document) Kind() kind.Kind { return d.kind }

// Class returns the engine resource class derived from the kind.
func (d *Document) Class() kind.Class { return d.kind.Class() }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Status returns the publication status.
func (d *Document) Status() string { return d.status }

// Permalink returns the stored kind-native permalink (may be empty for native documents).
func (d *Document) Permalink() string { return d.permalink }

// Terms returns taxonomy terms keyed by taxonomy name.
func (d *Document) Terms() map[string][]string { return d.terms }

func cloneTerms(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	c := make(map[string][]string, len(m))
	for k, v := range m {
		c[k] = append([]string(nil), v...)
	}
	return c
}
