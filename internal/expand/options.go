package expand

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// DefaultMarkerAttrs classify a function as a test case.
var DefaultMarkerAttrs = []string{"test", "ignore", "should_panic", "bench"}

// DefaultCopiedAttrs are mirrored onto forwarding functions while staying
// on the generic original.
var DefaultCopiedAttrs = []string{"cfg"}

// MacroOpts is the effective per-unit attribute classification config.
type MacroOpts struct {
	MarkerAttrs map[string]bool
	CopiedAttrs map[string]bool
}

// TestFnOpts is a per-function override. A nil set means "fall back to
// the unit config"; a non-nil set replaces it entirely.
type TestFnOpts struct {
	MarkerAttrs map[string]bool
	CopiedAttrs map[string]bool
}

// DefaultMacroOpts returns the built-in configuration, optionally
// overridden by manifest-level attribute sets.
func DefaultMacroOpts(markers, copied []string) MacroOpts {
	if len(markers) == 0 {
		markers = DefaultMarkerAttrs
	}
	if len(copied) == 0 {
		copied = DefaultCopiedAttrs
	}
	return MacroOpts{
		MarkerAttrs: pathSet(markers),
		CopiedAttrs: pathSet(copied),
	}
}

func pathSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}

// IsTestAttr reports whether attr marks a test case under the effective
// configuration.
func (o *MacroOpts) IsTestAttr(attr *ast.Attr, fnOpts *TestFnOpts) bool {
	if fnOpts != nil && fnOpts.MarkerAttrs != nil {
		return fnOpts.MarkerAttrs[attr.PathString()]
	}
	return o.MarkerAttrs[attr.PathString()]
}

// IsCopiedAttr reports whether attr is mirrored onto forwarding
// functions.
func (o *MacroOpts) IsCopiedAttr(attr *ast.Attr, fnOpts *TestFnOpts) bool {
	if fnOpts != nil && fnOpts.CopiedAttrs != nil {
		return fnOpts.CopiedAttrs[attr.PathString()]
	}
	return o.CopiedAttrs[attr.PathString()]
}

// ParseMacroOpts builds the unit configuration from the `generic_tests`
// attribute. A plain attribute keeps the defaults; a list may set
// `attrs(...)` and `copy_attrs(...)`.
func ParseMacroOpts(attr *ast.Attr, base MacroOpts, rep diag.Reporter) (MacroOpts, bool) {
	if attr.Style == ast.AttrPlain {
		return base, true
	}
	if attr.Style != ast.AttrList {
		rep.Report(diag.GenBadConfigArg, diag.SevError, attr.Span,
			"unexpected attribute input; use `attrs()`, `copy_attrs()`", nil)
		return base, false
	}
	markers, copied, ok := parseAttrSets(attr.Args, attr.Span, rep)
	if !ok {
		return base, false
	}
	opts := base
	if markers != nil {
		opts.MarkerAttrs = markers
	}
	if copied != nil {
		opts.CopiedAttrs = copied
	}
	return opts, true
}

// ParseTestFnOpts builds a per-function override from a `generic_test`
// attribute. The bare form is rejected: an override that overrides
// nothing is always an authoring mistake.
func ParseTestFnOpts(attr *ast.Attr, into *TestFnOpts, rep diag.Reporter) bool {
	switch attr.Style {
	case ast.AttrPlain:
		rep.Report(diag.GenBadOverrideAttr, diag.SevError, attr.Span,
			"attribute must have arguments; use `attrs()`, `copy_attrs()`", nil)
		return false
	case ast.AttrNameValue:
		rep.Report(diag.GenBadOverrideAttr, diag.SevError, attr.Span,
			"unexpected attribute input; use `attrs()`, `copy_attrs()`", nil)
		return false
	}
	markers, copied, ok := parseAttrSets(attr.Args, attr.Span, rep)
	if !ok {
		return false
	}
	if markers != nil {
		if into.MarkerAttrs == nil {
			into.MarkerAttrs = markers
		} else {
			for p := range markers {
				into.MarkerAttrs[p] = true
			}
		}
	}
	if copied != nil {
		if into.CopiedAttrs == nil {
			into.CopiedAttrs = copied
		} else {
			for p := range copied {
				into.CopiedAttrs[p] = true
			}
		}
	}
	return true
}

// parseAttrSets walks `attrs(p, ...), copy_attrs(p, ...)` argument
// tokens. Either list may be absent; a nil result means "not given".
func parseAttrSets(args []token.Token, at source.Span, rep diag.Reporter) (markers, copied map[string]bool, ok bool) {
	c := tokenCursor{toks: args}
	ok = true
	for !c.eof() {
		name, found := c.takeIdent()
		if !found {
			rep.Report(diag.GenBadConfigArg, diag.SevError, c.span(at),
				"unsupported attribute; use `attrs()`, `copy_attrs()`", nil)
			return nil, nil, false
		}
		var dst *map[string]bool
		switch name {
		case "attrs":
			dst = &markers
		case "copy_attrs":
			dst = &copied
		default:
			rep.Report(diag.GenBadConfigArg, diag.SevError, c.span(at),
				"unsupported attribute `"+name+"`; use `attrs()`, `copy_attrs()`", nil)
			return nil, nil, false
		}
		paths, pok := c.takePathList(at, rep)
		if !pok {
			return nil, nil, false
		}
		if *dst == nil {
			*dst = make(map[string]bool)
		}
		for _, p := range paths {
			(*dst)[p] = true
		}
		if !c.eof() && !c.takeComma() {
			rep.Report(diag.GenBadConfigArg, diag.SevError, c.span(at),
				"expected ',' between attribute arguments", nil)
			return nil, nil, false
		}
	}
	return markers, copied, ok
}

// tokenCursor is a tiny walker over attribute argument tokens.
type tokenCursor struct {
	toks []token.Token
	pos  int
}

func (c *tokenCursor) eof() bool { return c.pos >= len(c.toks) }

func (c *tokenCursor) peek() token.Token {
	if c.eof() {
		return token.Token{Kind: token.EOF}
	}
	return c.toks[c.pos]
}

// span returns the current token's span, or the fallback at EOF.
func (c *tokenCursor) span(fallback source.Span) source.Span {
	if c.eof() {
		return fallback
	}
	return c.toks[c.pos].Span
}

func (c *tokenCursor) takeIdent() (string, bool) {
	if c.peek().Kind != token.Ident {
		return "", false
	}
	t := c.toks[c.pos]
	c.pos++
	return t.Text, true
}

func (c *tokenCursor) takeComma() bool {
	if c.peek().Kind != token.Comma {
		return false
	}
	c.pos++
	return true
}

// takePathList parses `(a, b::c, ...)` into canonical path strings.
func (c *tokenCursor) takePathList(at source.Span, rep diag.Reporter) ([]string, bool) {
	if c.peek().Kind != token.LParen {
		rep.Report(diag.GenBadConfigArg, diag.SevError, c.span(at),
			"expected '(' with a list of attribute paths", nil)
		return nil, false
	}
	c.pos++
	var paths []string
	for c.peek().Kind != token.RParen {
		path, ok := c.takePath()
		if !ok {
			rep.Report(diag.GenBadConfigArg, diag.SevError, c.span(at),
				"expected an attribute path", nil)
			return nil, false
		}
		paths = append(paths, path)
		if c.peek().Kind == token.Comma {
			c.pos++
			continue
		}
		break
	}
	if c.peek().Kind != token.RParen {
		rep.Report(diag.GenBadConfigArg, diag.SevError, c.span(at),
			"expected ')' to close the attribute path list", nil)
		return nil, false
	}
	c.pos++
	return paths, true
}

func (c *tokenCursor) takePath() (string, bool) {
	seg, ok := c.takeIdent()
	if !ok {
		return "", false
	}
	path := seg
	for c.peek().Kind == token.PathSep {
		c.pos++
		seg, ok = c.takeIdent()
		if !ok {
			return "", false
		}
		path += "::" + seg
	}
	return path, true
}
