package ast

import (
	"gentests/internal/source"
)

// Item is a declaration inside a file or module body.
type Item interface {
	isItem()
	Span() source.Span
}

// File is one parsed source file: leading inner attributes and an ordered
// list of items.
type File struct {
	InnerAttrs []Attr
	Items      []Item
	FileSpan   source.Span
}

func (f *File) Span() source.Span { return f.FileSpan }
