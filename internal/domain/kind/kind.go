// Package kind defines content kinds and the set operations used to widen them.
package kind

// Kind classifies an indexed record (article, group, member, ...).
type Kind string

// Native kinds stored by the platform as documents.
const (
	Article Kind = "article"
	Page    Kind = "page"
)

// Auxiliary kinds supplied by the social extension and indexed through a translation layer.
const (
	Group  Kind = "group"
	Member Kind = "member"
)

// Extension document kinds: native documents owned by the social extension.
const (
	SocialDoc       Kind = "social_doc"
	SocialDocFolder Kind = "social_doc_folder"
	Forum           Kind = "forum"
	Topic           Kind = "topic"
	Reply           Kind = "reply"
)

// Native returns the platform's default document kinds.
func Native() []Kind { return []Kind{Article, Page} }

// Auxiliary returns the kinds that are not native documents.
func Auxiliary() []Kind { return []Kind{Group, Member} }

// ExtensionDocuments returns the default document kinds owned by the social extension.
func ExtensionDocuments() []Kind {
	return []Kind{SocialDoc, SocialDocFolder, Forum, Reply, Topic}
}

// IsAuxiliary reports whether k is group or member.
func (k Kind) IsAuxiliary() bool { return k == Group || k == Member }

// Class returns the engine resource class that stores records of this kind.
func (k Kind) Class() Class {
	switch k {
	case Group:
		return ClassGroup
	case Member:
		return ClassMember
	default:
		return ClassPost
	}
}

// Class is the engine-level resource class addressed by a request path.
type Class string

// Resource classes.
const (
	ClassPost   Class = "post"
	ClassGroup  Class = "group"
	ClassMember Class = "member"
)

// IsValid checks if the class is one of the known values.
func (c Class) IsValid() bool {
	return c == ClassPost || c == ClassGroup || c == ClassMember
}

// Union returns base followed by every kind of extra not already present.
// First occurrence wins; the result never aliases base.
func Union(base []Kind, extra ...Kind) []Kind {
	out := make([]Kind, 0, len(base)+len(extra))
	seen := make(map[Kind]struct{}, len(base)+len(extra))
	for _, group := range [][]Kind{base, extra} {
		for _, k := range group {
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Contains reports whether set holds k.
func Contains(set []Kind, k Kind) bool {
	for _, s := range set {
		if s == k {
			return true
		}
	}
	return false
}

// Strings converts kinds to plain strings.
func Strings(set []Kind) []string {
	out := make([]string, len(set))
	for i, k := range set {
		out[i] = string(k)
	}
	return out
}

// Parse converts plain strings to kinds, dropping empty values.
func Parse(values []string) []Kind {
	out := make([]Kind, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, Kind(v))
		}
	}
	return out
}
