package parser

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// parseItem recognizes one declaration. Modules and functions get a
// structured parse; every other declaration falls through to verbatim
// capture and is never an error.
func (p *Parser) parseItem() (ast.Item, bool) {
	first := p.lx.Peek()
	start := first.Span.Start
	doc := first.DocText()

	attrs := p.parseOuterAttrs()
	vis := p.parseVisibility()

	switch p.lx.Peek().Kind {
	case token.KwMod:
		return p.parseMod(start, doc, attrs, vis)
	case token.KwFn:
		return p.parseFn(start, doc, attrs, vis, ast.FnQualifiers{})
	case token.KwConst, token.KwAsync, token.KwUnsafe, token.KwExtern:
		if quals, ok := p.tryFnQualifiers(); ok {
			return p.parseFn(start, doc, attrs, vis, quals)
		}
		return p.parseVerbatim(start)
	case token.EOF:
		p.err(diag.SynUnexpectedToken, "expected a declaration")
		return nil, false
	default:
		return p.parseVerbatim(start)
	}
}

// parseVisibility consumes `pub`, optionally with a restriction such as
// `pub(crate)`, and returns its original text.
func (p *Parser) parseVisibility() string {
	if !p.at(token.KwPub) {
		return ""
	}
	pub := p.advance()
	sp := pub.Span
	if p.at(token.LParen) {
		group, _ := p.skipBalanced()
		sp = sp.Cover(group)
	}
	return p.text(sp)
}

// tryFnQualifiers consumes a run of function qualifiers when the tokens
// ahead really lead to `fn`. It reports ok=false without consuming
// anything for items that merely share a leading keyword, such as
// `const X`, `unsafe impl`, or `extern crate`.
func (p *Parser) tryFnQualifiers() (ast.FnQualifiers, bool) {
	if !p.leadsToFn(0) {
		return ast.FnQualifiers{}, false
	}
	var quals ast.FnQualifiers
	for {
		switch p.lx.Peek().Kind {
		case token.KwConst:
			tok := p.advance()
			quals.Const = true
			quals.ConstSpan = tok.Span
		case token.KwAsync:
			p.advance()
			quals.Async = true
		case token.KwUnsafe:
			p.advance()
			quals.Unsafe = true
		case token.KwExtern:
			tok := p.advance()
			quals.Extern = true
			quals.ExternSpan = tok.Span
			if p.at(token.StringLit) {
				abi := p.advance()
				quals.Abi = abi.Text
				quals.ExternSpan = tok.Span.Cover(abi.Span)
			}
		default:
			return quals, true
		}
	}
}

// leadsToFn looks ahead from token index i through a well-formed
// qualifier sequence and reports whether it ends at `fn`.
func (p *Parser) leadsToFn(i int) bool {
	for {
		switch p.lx.PeekN(i).Kind {
		case token.KwFn:
			return true
		case token.KwConst, token.KwAsync, token.KwUnsafe:
			i++
		case token.KwExtern:
			i++
			if p.lx.PeekN(i).Kind == token.StringLit {
				i++
			}
		default:
			return false
		}
	}
}

// parseVerbatim captures a declaration the engine does not model. The
// item runs to a top-level semicolon or past a top-level brace group
// (with one trailing semicolon folded in, for paths like `use a::{b};`).
func (p *Parser) parseVerbatim(start uint32) (ast.Item, bool) {
	end := start
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			if end == start {
				p.err(diag.SynUnexpectedToken, "expected a declaration")
				return nil, false
			}
			return p.verbatimAt(start, end), true
		case token.Semicolon:
			p.advance()
			return p.verbatimAt(start, tok.Span.End), true
		case token.LBrace:
			group, _ := p.skipBalanced()
			end = group.End
			if p.at(token.Semicolon) {
				semi := p.advance()
				end = semi.Span.End
			}
			return p.verbatimAt(start, end), true
		case token.LParen, token.LBracket:
			group, _ := p.skipBalanced()
			end = group.End
		case token.RBrace:
			// Unbalanced closer belongs to the enclosing module.
			if end == start {
				p.err(diag.SynUnexpectedToken, "expected a declaration")
				return nil, false
			}
			return p.verbatimAt(start, end), true
		default:
			p.advance()
			end = tok.Span.End
		}
	}
}

func (p *Parser) verbatimAt(start, end uint32) *ast.VerbatimItem {
	sp := source.Span{File: p.file.ID, Start: start, End: end}
	return &ast.VerbatimItem{Raw: p.text(sp), ItemSpan: sp}
}
