package db

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType enumerates the FT schema field types the service declares.
type FieldType int

const (
	// FieldTag is an exact-match TAG field.
	FieldTag FieldType = iota
	// FieldText is a scored full-text field.
	FieldText
)

// Field is one entry of an FT.CREATE SCHEMA clause.
type Field struct {
	Name string
	Type FieldType

	Separator     string  // TAG only; empty keeps the engine default
	CaseSensitive bool    // TAG only
	Weight        float64 // TEXT only; 0 keeps the engine default
}

// IndexDefinition is an FT index over the hashes sharing one key prefix.
type IndexDefinition struct {
	Name   string
	Prefix string
	Fields []Field
}

// Validate checks that the definition can be sent to FT.CREATE.
func (d *IndexDefinition) Validate() error {
	if !IsValidIdentifier(d.Name) {
		return fmt.Errorf("%w: bad index name %q", ErrInvalidIndex, d.Name)
	}
	if d.Prefix == "" {
		return fmt.Errorf("%w: %s has no key prefix", ErrInvalidIndex, d.Name)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: %s has no fields", ErrInvalidIndex, d.Name)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		switch {
		case f.Name == "":
			return fmt.Errorf("%w: field %d of %s has no name", ErrInvalidIndex, i, d.Name)
		case f.Type != FieldTag && f.Type != FieldText:
			return fmt.Errorf("%w: field %s has unknown type %d", ErrInvalidIndex, f.Name, f.Type)
		case f.Weight < 0:
			return fmt.Errorf("%w: field %s has negative weight", ErrInvalidIndex, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %s", ErrInvalidIndex, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// String renders the definition roughly as the FT.CREATE command line.
func (d *IndexDefinition) String() string {
	var sb strings.Builder
	sb.WriteString("FT.CREATE " + d.Name + " ON HASH PREFIX 1 " + d.Prefix + " SCHEMA")
	for i := range d.Fields {
		f := &d.Fields[i]
		sb.WriteString(" " + f.Name)
		switch f.Type {
		case FieldTag:
			sb.WriteString(" TAG")
			if f.Separator != "" {
				sb.WriteString(" SEPARATOR " + f.Separator)
			}
		case FieldText:
			sb.WriteString(" TEXT")
			if f.Weight > 0 {
				sb.WriteString(" WEIGHT " + strconv.FormatFloat(f.Weight, 'g', -1, 64))
			}
		}
	}
	return sb.String()
}

// IsValidIdentifier reports whether s is a non-empty [a-zA-Z0-9_:-]+ name.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == ':', r == '-':
		default:
			return false
		}
	}
	return true
}

// IndexBuilder assembles an IndexDefinition field by field.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts a definition for the hashes under prefix.
func NewIndex(name, prefix string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name, Prefix: prefix}}
}

// Tag adds one TAG field per name.
func (b *IndexBuilder) Tag(names ...string) *IndexBuilder {
	for _, n := range names {
		b.def.Fields = append(b.def.Fields, Field{Name: n, Type: FieldTag})
	}
	return b
}

// TagSeparated adds a multi-value TAG field split on sep.
func (b *IndexBuilder) TagSeparated(name, sep string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, Field{Name: name, Type: FieldTag, Separator: sep})
	return b
}

// Text adds a TEXT field. A zero weight keeps the engine default.
func (b *IndexBuilder) Text(name string, weight float64) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, Field{Name: name, Type: FieldText, Weight: weight})
	return b
}

// Build validates and returns the definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	def := b.def
	def.Fields = append([]Field(nil), b.def.Fields...)
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}
