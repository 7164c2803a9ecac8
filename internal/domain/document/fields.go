package document

import (
	"strings"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

// Stored hash fields shared by the writer, the index schema and the engine adapter.
const (
	FieldID        = "id"
	FieldClass     = "_type"
	FieldKind      = "post_type"
	FieldStatus    = "post_status"
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldPermalink = "permalink"
)

const taxonomyFieldPrefix = "tax_"

// TermSeparator joins taxonomy terms inside one TAG field.
const TermSeparator = ","

// TaxonomyField names the stored field that holds a taxonomy's terms.
func TaxonomyField(taxonomy string) string {
	return taxonomyFieldPrefix + taxonomy
}

// KeyPrefix is the hash key prefix an index covers.
func KeyPrefix(index string) string {
	return index + ":doc:"
}

// Key builds a document's hash key. IDs are unique per class, so the class is part of the key.
func Key(index string, class kind.Class, id string) string {
	return KeyPrefix(index) + string(class) + ":" + id
}

// ParseKey splits a document key back into class and ID.
func ParseKey(index, key string) (kind.Class, string, bool) {
	rest, ok := strings.CutPrefix(key, KeyPrefix(index))
	if !ok {
		return "", "", false
	}
	class, id, ok := strings.Cut(rest, ":")
	if !ok || id == "" || !kind.Class(class).IsValid() {
		return "", "", false
	}
	return kind.Class(class), id, true
}
