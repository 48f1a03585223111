package ast

import (
	"gentests/internal/source"
)

// VerbatimItem is any declaration the engine has no interest in (use,
// struct, impl, trait, macro invocations, ...). It is carried as a raw
// byte range and re-emitted untouched.
type VerbatimItem struct {
	Raw      string
	ItemSpan source.Span
}

func (*VerbatimItem) isItem()              {}
func (v *VerbatimItem) Span() source.Span { return v.ItemSpan }
