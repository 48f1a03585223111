package parser

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// parseGenerics parses `<...>` after a function name. Each declared
// parameter keeps its full original text; bounds and defaults are never
// interpreted.
func (p *Parser) parseGenerics(out *ast.GenericParams) {
	open := p.advance() // <
	out.Span = open.Span

	for !p.at(token.Gt) && !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Lifetime:
			lt := p.advance()
			def := ast.LifetimeDef{Name: lt.Text, Span: lt.Span}
			end := p.skipGenericParamTail(lt.Span.End)
			def.Raw = p.textBetween(lt.Span.Start, end)
			def.Span = source.Span{File: lt.Span.File, Start: lt.Span.Start, End: end}
			out.Lifetimes = append(out.Lifetimes, def)

		case token.KwConst:
			kw := p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected const parameter name")
			if !ok {
				p.resyncGenerics()
				return
			}
			end := p.skipGenericParamTail(name.Span.End)
			out.Params = append(out.Params, ast.TypeConstParam{
				Kind: ast.GenericConstParam,
				Name: name.Text,
				Raw:  p.textBetween(kw.Span.Start, end),
				Span: source.Span{File: kw.Span.File, Start: kw.Span.Start, End: end},
			})

		case token.Ident:
			name := p.advance()
			end := p.skipGenericParamTail(name.Span.End)
			out.Params = append(out.Params, ast.TypeConstParam{
				Kind: ast.GenericTypeParam,
				Name: name.Text,
				Raw:  p.textBetween(name.Span.Start, end),
				Span: source.Span{File: name.Span.File, Start: name.Span.Start, End: end},
			})

		default:
			p.err(diag.SynUnexpectedToken, "expected generic parameter")
			p.resyncGenerics()
			return
		}

		if p.at(token.Comma) {
			p.advance()
		}
	}

	closer, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic parameter list")
	if ok {
		out.Span = open.Span.Cover(closer.Span)
	}
}

// skipGenericParamTail consumes bound and default tokens following a
// generic parameter name, stopping at the separating comma or the
// closing '>' of the parameter list.
func (p *Parser) skipGenericParamTail(end uint32) uint32 {
	var angle, paren, bracket, brace int
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return end
		case token.Comma:
			if angle+paren+bracket+brace == 0 {
				return end
			}
		case token.Gt:
			if angle == 0 {
				if paren+bracket+brace == 0 {
					return end
				}
			} else {
				angle--
			}
		case token.Lt:
			angle++
		case token.LParen:
			paren++
		case token.RParen:
			if paren == 0 {
				return end
			}
			paren--
		case token.LBracket:
			bracket++
		case token.RBracket:
			if bracket > 0 {
				bracket--
			}
		case token.LBrace:
			brace++
		case token.RBrace:
			if brace > 0 {
				brace--
			}
		case token.Arrow:
			// `Fn() -> T` bound syntax, not a closing angle.
		}
		p.advance()
		end = tok.Span.End
	}
}

// resyncGenerics skips to the end of a malformed generic parameter list.
func (p *Parser) resyncGenerics() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Lt:
			depth++
		case token.Gt:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case token.LParen, token.Semicolon, token.LBrace:
			return
		}
		p.advance()
	}
}
