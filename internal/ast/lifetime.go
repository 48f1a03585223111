package ast

import (
	"gentests/internal/source"
)

// PlaceholderLifetime is the explicit "infer this" marker an author can
// write in return position.
const PlaceholderLifetime = "'_"

// StaticLifetime is the universal lifetime; it is never collected into a
// signature's lifetime set.
const StaticLifetime = "'static"

// LifetimeRef is one occurrence of a lifetime in a type expression. Name
// keeps the leading quote ("'a", "'_", "'static").
type LifetimeRef struct {
	Name     string
	NameSpan source.Span
}

func (l *LifetimeRef) IsPlaceholder() bool { return l.Name == PlaceholderLifetime }
func (l *LifetimeRef) IsStatic() bool      { return l.Name == StaticLifetime }

func (l *LifetimeRef) Clone() *LifetimeRef {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
