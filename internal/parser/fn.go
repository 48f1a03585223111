package parser

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// parseFn parses a function declaration. The signature is fully
// structured; the where clause and body stay raw.
func (p *Parser) parseFn(start uint32, doc []string, attrs []ast.Attr, vis string, quals ast.FnQualifiers) (ast.Item, bool) {
	p.advance() // fn

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return nil, false
	}

	fn := &ast.FnItem{
		Doc:      doc,
		Attrs:    attrs,
		Vis:      vis,
		Quals:    quals,
		Name:     name.Text,
		NameSpan: name.Span,
	}

	if p.at(token.Lt) {
		p.parseGenerics(&fn.Generics)
		fn.GenericsSpan = fn.Generics.Span
	}

	open, ok := p.expect(token.LParen, diag.SynExpectToken, "expected '(' to open parameter list")
	if !ok {
		return nil, false
	}
	closer, ok := p.parseParams(fn)
	if !ok {
		return nil, false
	}
	fn.ParamsRaw = p.textBetween(open.Span.End, closer.Span.Start)

	if p.at(token.Arrow) {
		arrow := p.advance()
		ret, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fn.Return = ret
		fn.ReturnRaw = p.textBetween(arrow.Span.Start, ret.Span().End)
	}

	if p.at(token.KwWhere) {
		fn.WhereRaw = p.parseWhereRaw()
	}

	switch p.lx.Peek().Kind {
	case token.Semicolon:
		semi := p.advance()
		fn.ItemSpan = source.Span{File: p.file.ID, Start: start, End: semi.Span.End}
	case token.LBrace:
		body, _ := p.skipBalanced()
		fn.HasBody = true
		fn.BodyRaw = p.text(body)
		fn.ItemSpan = source.Span{File: p.file.ID, Start: start, End: body.End}
	default:
		p.err(diag.SynExpectToken, "expected '{' or ';' after function signature")
		return nil, false
	}
	return fn, true
}

// parseParams fills fn.Params and returns the closing paren token.
func (p *Parser) parseParams(fn *ast.FnItem) (token.Token, bool) {
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			dots := p.advance()
			fn.Variadic = true
			fn.VariadicSpan = dots.Span
		} else {
			param, ok := p.parseParam()
			if !ok {
				return token.Token{}, false
			}
			fn.Params = append(fn.Params, param)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list")
}

func (p *Parser) parseParam() (ast.Param, bool) {
	var param ast.Param
	param.Attrs = p.parseOuterAttrs()
	first := p.lx.Peek()
	startSpan := first.Span
	if len(param.Attrs) > 0 {
		startSpan = param.Attrs[0].Span
	}

	switch {
	case p.atReceiver():
		param.Pat = ast.PatReceiver
		end := p.skipReceiver()
		param.Raw = p.textBetween(first.Span.Start, end)
		param.Span = startSpan.Cover(source.Span{File: startSpan.File, Start: end, End: end})
		return param, true

	case p.at(token.Underscore) && p.lx.PeekN(1).Kind == token.Colon:
		us := p.advance()
		p.advance() // :
		param.Pat = ast.PatWild
		param.Raw = "_"
		ty, ok := p.parseType()
		if !ok {
			return param, false
		}
		param.Type = ty
		param.Span = us.Span.Cover(ty.Span())
		return param, true

	case p.atIdentPattern():
		if p.at(token.KwMut) {
			param.Mut = true
			p.advance()
		}
		name := p.advance()
		param.Name = name.Text
		param.Raw = name.Text
		p.advance() // :
		ty, ok := p.parseType()
		if !ok {
			return param, false
		}
		param.Pat = ast.PatIdent
		param.Type = ty
		param.Span = startSpan.Cover(ty.Span())
		return param, true

	default:
		// Some other pattern. Capture it raw up to its type annotation
		// so the extractor can name it in a diagnostic.
		patSpan, ok := p.skipPattern()
		if !ok {
			return param, false
		}
		param.Pat = ast.PatOther
		param.Raw = p.text(patSpan)
		if _, ok := p.expect(token.Colon, diag.SynExpectToken, "expected ':' after parameter pattern"); !ok {
			return param, false
		}
		ty, ok := p.parseType()
		if !ok {
			return param, false
		}
		param.Type = ty
		param.Span = startSpan.Cover(ty.Span())
		return param, true
	}
}

// atReceiver reports whether the upcoming tokens form a method receiver:
// `self`, `mut self`, `&self`, `&mut self`, or `&'a mut self`.
func (p *Parser) atReceiver() bool {
	switch p.lx.Peek().Kind {
	case token.KwSelf:
		return true
	case token.KwMut:
		return p.lx.PeekN(1).Kind == token.KwSelf
	case token.Amp:
		i := 1
		if p.lx.PeekN(i).Kind == token.Lifetime {
			i++
		}
		if p.lx.PeekN(i).Kind == token.KwMut {
			i++
		}
		return p.lx.PeekN(i).Kind == token.KwSelf
	default:
		return false
	}
}

// skipReceiver consumes a receiver parameter including an optional
// `self: Type` annotation and returns the end offset.
func (p *Parser) skipReceiver() uint32 {
	end := p.lx.Peek().Span.End
	for !p.at(token.Comma) && !p.at(token.RParen) && !p.at(token.EOF) {
		tok := p.advance()
		end = tok.Span.End
	}
	return end
}

// atIdentPattern reports whether the parameter is a plain identifier
// binding `name: T` or `mut name: T`.
func (p *Parser) atIdentPattern() bool {
	i := 0
	if p.at(token.KwMut) {
		i = 1
	}
	return p.lx.PeekN(i).Kind == token.Ident && p.lx.PeekN(i+1).Kind == token.Colon
}

// skipPattern consumes pattern tokens up to the ':' separating the
// pattern from its type.
func (p *Parser) skipPattern() (source.Span, bool) {
	first := p.lx.Peek()
	sp := first.Span
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			p.err(diag.SynExpectToken, "expected ':' after parameter pattern")
			return sp, false
		case token.Colon:
			if depth == 0 {
				return sp, true
			}
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				p.err(diag.SynExpectToken, "expected ':' after parameter pattern")
				return sp, false
			}
			depth--
		case token.Comma:
			if depth == 0 {
				p.err(diag.SynExpectToken, "expected ':' after parameter pattern")
				return sp, false
			}
		}
		p.advance()
		sp = sp.Cover(tok.Span)
	}
}

// parseWhereRaw captures a where clause verbatim. It ends at the body
// brace or the trailing semicolon; braces nested inside bound groups do
// not terminate it.
func (p *Parser) parseWhereRaw() string {
	kw := p.advance()
	end := kw.Span.End
	var angle, paren, bracket, brace int
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return p.textBetween(kw.Span.Start, end)
		case token.Semicolon:
			if angle+paren+bracket+brace == 0 {
				return p.textBetween(kw.Span.Start, end)
			}
		case token.LBrace:
			if angle+paren+bracket+brace == 0 {
				return p.textBetween(kw.Span.Start, end)
			}
			brace++
		case token.RBrace:
			if brace > 0 {
				brace--
			}
		case token.LParen:
			paren++
		case token.RParen:
			if paren > 0 {
				paren--
			}
		case token.LBracket:
			bracket++
		case token.RBracket:
			if bracket > 0 {
				bracket--
			}
		case token.Lt:
			angle++
		case token.Gt:
			if angle > 0 {
				angle--
			}
		}
		p.advance()
		end = tok.Span.End
	}
}
