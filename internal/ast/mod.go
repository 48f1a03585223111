package ast

import (
	"gentests/internal/source"
)

// ModItem is a `mod name { ... }` or `mod name;` declaration.
type ModItem struct {
	Doc   []string
	Attrs []Attr
	Vis   string // raw visibility text ("", "pub", "pub(crate)", ...)
	Name  string

	// Inline is true for `mod name { ... }`. An opaque `mod name;` has
	// no content and cannot be processed or instantiated into.
	Inline     bool
	InnerAttrs []Attr
	Items      []Item

	NameSpan source.Span
	// BodySpan covers the braces of an inline module, including both.
	BodySpan source.Span
	ItemSpan source.Span
}

func (*ModItem) isItem()                {}
func (m *ModItem) Span() source.Span   { return m.ItemSpan }

// AttrByIdent returns the first outer attribute whose path is the single
// identifier name, or nil.
func (m *ModItem) AttrByIdent(name string) *Attr {
	for i := range m.Attrs {
		if m.Attrs[i].IsIdent(name) {
			return &m.Attrs[i]
		}
	}
	return nil
}
