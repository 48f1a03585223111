package parser

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/token"
)

// parseOuterAttrs consumes a run of `#[...]` attributes.
func (p *Parser) parseOuterAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.Pound) && p.lx.PeekN(1).Kind != token.Bang {
		attr, ok := p.parseAttr()
		if !ok {
			break
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// parseInnerAttrs consumes a run of `#![...]` attributes at the start of
// a file or module body.
func (p *Parser) parseInnerAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.Pound) && p.lx.PeekN(1).Kind == token.Bang {
		attr, ok := p.parseAttr()
		if !ok {
			break
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// parseAttr parses one attribute of either style. The argument tokens
// between the path delimiters are collected verbatim; their grammar is
// the business of whoever asked for the attribute.
func (p *Parser) parseAttr() (ast.Attr, bool) {
	pound := p.advance()
	attr := ast.Attr{Span: pound.Span}

	if p.at(token.Bang) {
		attr.Inner = true
		p.advance()
	}

	if _, ok := p.expect(token.LBracket, diag.SynBadAttribute, "expected '[' to open attribute"); !ok {
		return attr, false
	}

	for {
		seg, ok := p.expect(token.Ident, diag.SynBadAttribute, "expected identifier in attribute path")
		if !ok {
			return attr, false
		}
		attr.Path = append(attr.Path, seg.Text)
		if !p.at(token.PathSep) {
			break
		}
		p.advance()
	}

	switch p.lx.Peek().Kind {
	case token.LParen, token.LBracket, token.LBrace:
		attr.Style = ast.AttrList
		attr.Args = p.collectDelimited()
	case token.Eq:
		attr.Style = ast.AttrNameValue
		p.advance()
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			attr.Args = append(attr.Args, p.advance())
		}
	default:
		attr.Style = ast.AttrPlain
	}

	closer, ok := p.expect(token.RBracket, diag.SynBadAttribute, "expected ']' to close attribute")
	if !ok {
		return attr, false
	}
	attr.Span = pound.Span.Cover(closer.Span)
	return attr, true
}

// collectDelimited consumes a balanced delimiter group and returns the
// tokens strictly inside the outer pair.
func (p *Parser) collectDelimited() []token.Token {
	open := p.advance()
	closeKind, ok := token.MatchingClose(open.Kind)
	if !ok {
		return nil
	}
	var inner []token.Token
	depth := 1
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span,
				"unclosed "+open.Kind.String()+" in attribute")
			return inner
		}
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				if tok.Kind != closeKind {
					p.report(diag.SynUnclosedDelimiter, diag.SevError, tok.Span,
						"mismatched closing delimiter in attribute")
				}
				p.advance()
				return inner
			}
		}
		inner = append(inner, p.advance())
	}
}
