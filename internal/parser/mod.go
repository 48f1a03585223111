package parser

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// parseMod parses `mod name;` or `mod name { ... }`. An inline body is
// parsed recursively so markers nest to any depth.
func (p *Parser) parseMod(start uint32, doc []string, attrs []ast.Attr, vis string) (ast.Item, bool) {
	p.advance() // mod

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name")
	if !ok {
		return nil, false
	}

	m := &ast.ModItem{
		Doc:      doc,
		Attrs:    attrs,
		Vis:      vis,
		Name:     name.Text,
		NameSpan: name.Span,
	}

	if p.at(token.Semicolon) {
		semi := p.advance()
		m.ItemSpan = source.Span{File: p.file.ID, Start: start, End: semi.Span.End}
		return m, true
	}

	open, ok := p.expect(token.LBrace, diag.SynExpectToken, "expected '{' or ';' after module name")
	if !ok {
		return nil, false
	}

	m.Inline = true
	m.InnerAttrs = p.parseInnerAttrs()
	m.Items = p.parseItems(token.RBrace)

	closer, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close module body")
	if !ok {
		return nil, false
	}

	m.BodySpan = open.Span.Cover(closer.Span)
	m.ItemSpan = source.Span{File: p.file.ID, Start: start, End: closer.Span.End}
	return m, true
}
