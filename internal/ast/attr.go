package ast

import (
	"strings"

	"gentests/internal/source"
	"gentests/internal/token"
)

// AttrStyle distinguishes the attribute body forms.
type AttrStyle uint8

const (
	AttrPlain     AttrStyle = iota // #[test]
	AttrList                       // #[cfg(feature = "x")]
	AttrNameValue                  // #[ignore = "reason"]
)

// Attr describes one attribute, outer `#[path(args)]` or inner
// `#![path(args)]`. The argument tokens keep their original spans so
// configuration sub-parsers can report into the source file; the full
// attribute span allows verbatim re-emission.
type Attr struct {
	Inner bool
	Path  []string
	Style AttrStyle
	// Args holds the tokens between the list delimiters (AttrList) or
	// after the `=` (AttrNameValue). Empty for AttrPlain.
	Args []token.Token
	Span source.Span
}

// PathString returns the canonical `a::b::c` form of the attribute path.
func (a *Attr) PathString() string {
	return strings.Join(a.Path, "::")
}

// IsPath reports whether the attribute path equals the given canonical
// path.
func (a *Attr) IsPath(path string) bool {
	return a.PathString() == path
}

// IsIdent reports whether the attribute path is the single identifier s.
func (a *Attr) IsIdent(s string) bool {
	return len(a.Path) == 1 && a.Path[0] == s
}
