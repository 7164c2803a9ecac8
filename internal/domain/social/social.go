// Package social holds the records owned by the social extension.
package social

// Group is a social group record.
type Group struct {
	ID          string
	Name        string
	Description string
	Slug        string
	Status      string // public, private, hidden
	Permalink   string
}

// IsSearchable reports whether the group may appear in search results.
func (g Group) IsSearchable() bool { return g.Status != "hidden" }

// Member is a member profile record.
type Member struct {
	ID          string
	DisplayName string
	Bio         string
	Types       []string // member_type taxonomy terms
	Permalink   string
	Spam        bool
}

// MemberTypeTaxonomy is the taxonomy that classifies members.
const MemberTypeTaxonomy = "member_type"
