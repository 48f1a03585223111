package parser

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// parseType parses one type expression.
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Amp:
		return p.parseRefType()
	case token.Star:
		return p.parseRawPtrType()
	case token.LBracket:
		return p.parseSliceOrArray()
	case token.LParen:
		return p.parseTupleOrParen()
	case token.KwDyn:
		p.advance()
		bounds, last, ok := p.parseBounds()
		if !ok {
			return nil, false
		}
		return &ast.TraitObjectType{Bounds: bounds, TypeSpan: tok.Span.Cover(last)}, true
	case token.KwImpl:
		p.advance()
		bounds, last, ok := p.parseBounds()
		if !ok {
			return nil, false
		}
		return &ast.ImplTraitType{Bounds: bounds, TypeSpan: tok.Span.Cover(last)}, true
	case token.KwFor, token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseBareFnType()
	case token.Underscore:
		p.advance()
		return &ast.InferType{TypeSpan: tok.Span}, true
	case token.Bang:
		p.advance()
		return &ast.NeverType{TypeSpan: tok.Span}, true
	case token.Ident, token.PathSep, token.KwCrate, token.KwSuper, token.KwSelf:
		return p.parsePathType()
	default:
		p.err(diag.SynExpectType, "expected a type, got \""+tok.Text+"\"")
		return nil, false
	}
}

func (p *Parser) parseRefType() (ast.TypeExpr, bool) {
	amp := p.advance()
	ref := &ast.RefType{}
	if p.at(token.Lifetime) {
		lt := p.advance()
		ref.Lifetime = &ast.LifetimeRef{Name: lt.Text, NameSpan: lt.Span}
	}
	if p.at(token.KwMut) {
		ref.Mut = true
		p.advance()
	}
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	ref.Elem = elem
	ref.TypeSpan = amp.Span.Cover(elem.Span())
	return ref, true
}

func (p *Parser) parseRawPtrType() (ast.TypeExpr, bool) {
	star := p.advance()
	ptr := &ast.RawPtrType{}
	switch p.lx.Peek().Kind {
	case token.KwMut:
		ptr.Mut = true
		p.advance()
	case token.KwConst:
		p.advance()
	default:
		p.err(diag.SynExpectType, "expected 'const' or 'mut' after '*'")
		return nil, false
	}
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	ptr.Elem = elem
	ptr.TypeSpan = star.Span.Cover(elem.Span())
	return ptr, true
}

func (p *Parser) parseSliceOrArray() (ast.TypeExpr, bool) {
	open := p.advance()
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if p.at(token.Semicolon) {
		p.advance()
		lenRaw, ok := p.rawUntilCloser(token.RBracket)
		if !ok {
			return nil, false
		}
		closer, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array type")
		if !ok {
			return nil, false
		}
		return &ast.ArrayType{Elem: elem, LenRaw: lenRaw, TypeSpan: open.Span.Cover(closer.Span)}, true
	}
	closer, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close slice type")
	if !ok {
		return nil, false
	}
	return &ast.SliceType{Elem: elem, TypeSpan: open.Span.Cover(closer.Span)}, true
}

func (p *Parser) parseTupleOrParen() (ast.TypeExpr, bool) {
	open := p.advance()
	if p.at(token.RParen) {
		closer := p.advance()
		return &ast.TupleType{TypeSpan: open.Span.Cover(closer.Span)}, true
	}

	var elems []ast.TypeExpr
	trailingComma := false
	for {
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		elems = append(elems, elem)
		if p.at(token.Comma) {
			p.advance()
			trailingComma = true
			if p.at(token.RParen) {
				break
			}
			trailingComma = false
			continue
		}
		break
	}
	closer, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple type")
	if !ok {
		return nil, false
	}
	sp := open.Span.Cover(closer.Span)
	if len(elems) == 1 && !trailingComma {
		return &ast.ParenType{Elem: elems[0], TypeSpan: sp}, true
	}
	return &ast.TupleType{Elems: elems, TypeSpan: sp}, true
}

// parseBareFnType parses a function pointer type, with an optional
// leading `for<...>` binder. A binder followed by a trait path instead
// of `fn` is treated as a single higher-ranked bound.
func (p *Parser) parseBareFnType() (ast.TypeExpr, bool) {
	first := p.lx.Peek()
	fn := &ast.BareFnType{}

	if p.at(token.KwFor) {
		binder, ok := p.parseBinder()
		if !ok {
			return nil, false
		}
		fn.Binder = binder
		if p.at(token.Ident) || p.at(token.PathSep) {
			trait, ok := p.parsePathType()
			if !ok {
				return nil, false
			}
			bound := ast.TypeBound{
				Binder: binder,
				Trait:  trait.(*ast.PathType),
				Span:   first.Span.Cover(trait.Span()),
			}
			return &ast.TraitObjectType{Bounds: []ast.TypeBound{bound}, TypeSpan: bound.Span}, true
		}
	}
	if p.at(token.KwUnsafe) {
		fn.Unsafe = true
		p.advance()
	}
	if p.at(token.KwExtern) {
		p.advance()
		if p.at(token.StringLit) {
			abi := p.advance()
			fn.Abi = abi.Text
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected 'fn' in function pointer type"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectToken, "expected '(' in function pointer type"); !ok {
		return nil, false
	}

	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			p.advance()
			fn.Variadic = true
			break
		}
		var param ast.BareFnParam
		if p.at(token.Ident) && p.lx.PeekN(1).Kind == token.Colon {
			name := p.advance()
			p.advance() // :
			param.Name = name.Text
		} else if p.at(token.Underscore) && p.lx.PeekN(1).Kind == token.Colon {
			name := p.advance()
			p.advance()
			param.Name = name.Text
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		param.Type = ty
		fn.Inputs = append(fn.Inputs, param)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	closer, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in function pointer type")
	if !ok {
		return nil, false
	}
	last := closer.Span

	if p.at(token.Arrow) {
		p.advance()
		ret, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fn.Output = ret
		last = ret.Span()
	}
	fn.TypeSpan = first.Span.Cover(last)
	return fn, true
}

// parseBinder parses `for<'a, 'b>`.
func (p *Parser) parseBinder() ([]ast.LifetimeDef, bool) {
	p.advance() // for
	if _, ok := p.expect(token.Lt, diag.SynExpectToken, "expected '<' after 'for'"); !ok {
		return nil, false
	}
	var defs []ast.LifetimeDef
	for !p.at(token.Gt) && !p.at(token.EOF) {
		lt, ok := p.expect(token.Lifetime, diag.SynExpectToken, "expected lifetime in 'for' binder")
		if !ok {
			return nil, false
		}
		defs = append(defs, ast.LifetimeDef{Name: lt.Text, Raw: lt.Text, Span: lt.Span})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close 'for' binder"); !ok {
		return nil, false
	}
	return defs, true
}

// parseBounds parses a `+`-separated bound list after `dyn` or `impl`.
func (p *Parser) parseBounds() ([]ast.TypeBound, source.Span, bool) {
	var bounds []ast.TypeBound
	var last source.Span
	for {
		bound, ok := p.parseBound()
		if !ok {
			return nil, last, false
		}
		bounds = append(bounds, bound)
		last = bound.Span
		if p.at(token.Plus) {
			p.advance()
			continue
		}
		return bounds, last, true
	}
}

func (p *Parser) parseBound() (ast.TypeBound, bool) {
	var bound ast.TypeBound
	first := p.lx.Peek()

	if p.at(token.Question) {
		bound.Maybe = true
		p.advance()
	}
	switch p.lx.Peek().Kind {
	case token.Lifetime:
		lt := p.advance()
		bound.Lifetime = &ast.LifetimeRef{Name: lt.Text, NameSpan: lt.Span}
		bound.Span = first.Span.Cover(lt.Span)
		return bound, true
	case token.KwFor:
		binder, ok := p.parseBinder()
		if !ok {
			return bound, false
		}
		bound.Binder = binder
	}

	trait, ok := p.parsePathType()
	if !ok {
		return bound, false
	}
	bound.Trait = trait.(*ast.PathType)
	bound.Span = first.Span.Cover(trait.Span())
	return bound, true
}

// parsePathType parses a possibly qualified path with generic or
// call-style arguments on its segments.
func (p *Parser) parsePathType() (ast.TypeExpr, bool) {
	first := p.lx.Peek()
	path := &ast.PathType{}
	last := first.Span

	if p.at(token.PathSep) {
		path.Leading = true
		p.advance()
	}
	for {
		seg, ok := p.parsePathSegment()
		if !ok {
			return nil, false
		}
		path.Segments = append(path.Segments, seg.seg)
		last = seg.span
		if p.at(token.PathSep) {
			p.advance()
			continue
		}
		break
	}
	path.TypeSpan = first.Span.Cover(last)
	return path, true
}

type segResult struct {
	seg  ast.PathSegment
	span source.Span
}

func (p *Parser) parsePathSegment() (segResult, bool) {
	var res segResult
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident, token.KwCrate, token.KwSuper, token.KwSelf:
		p.advance()
	default:
		p.err(diag.SynExpectIdentifier, "expected path segment")
		return res, false
	}
	res.seg.Name = tok.Text
	res.span = tok.Span

	switch p.lx.Peek().Kind {
	case token.Lt:
		args, sp, ok := p.parseGenericArgs()
		if !ok {
			return res, false
		}
		res.seg.Args = args
		res.span = res.span.Cover(sp)
	case token.LParen:
		paren, ok := p.parseParenArgs()
		if !ok {
			return res, false
		}
		res.seg.Paren = paren
		res.span = res.span.Cover(paren.Span)
	}
	return res, true
}

func (p *Parser) parseGenericArgs() (*ast.GenericArgs, source.Span, bool) {
	open := p.advance() // <
	args := &ast.GenericArgs{}

	for !p.at(token.Gt) && !p.at(token.EOF) {
		arg, ok := p.parseGenericArg()
		if !ok {
			return nil, open.Span, false
		}
		args.Args = append(args.Args, arg)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	closer, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic arguments")
	if !ok {
		return nil, open.Span, false
	}
	args.Span = open.Span.Cover(closer.Span)
	return args, args.Span, true
}

func (p *Parser) parseGenericArg() (ast.GenericArg, bool) {
	var arg ast.GenericArg
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Lifetime:
		p.advance()
		arg.Kind = ast.ArgLifetime
		arg.Lifetime = &ast.LifetimeRef{Name: tok.Text, NameSpan: tok.Span}
		arg.Span = tok.Span
		return arg, true

	case tok.Kind == token.Ident && p.lx.PeekN(1).Kind == token.Eq:
		name := p.advance()
		p.advance() // =
		ty, ok := p.parseType()
		if !ok {
			return arg, false
		}
		arg.Kind = ast.ArgBinding
		arg.Name = name.Text
		arg.Type = ty
		arg.Span = name.Span.Cover(ty.Span())
		return arg, true

	case tok.Kind == token.LBrace:
		group, ok := p.skipBalanced()
		if !ok {
			return arg, false
		}
		arg.Kind = ast.ArgConstExpr
		arg.Raw = p.text(group)
		arg.Span = group
		return arg, true

	case tok.IsLiteral() || tok.Kind == token.Minus:
		sp := tok.Span
		p.advance()
		if tok.Kind == token.Minus {
			lit := p.advance()
			sp = sp.Cover(lit.Span)
		}
		arg.Kind = ast.ArgConstExpr
		arg.Raw = p.text(sp)
		arg.Span = sp
		return arg, true

	default:
		ty, ok := p.parseType()
		if !ok {
			return arg, false
		}
		arg.Kind = ast.ArgType
		arg.Type = ty
		arg.Span = ty.Span()
		return arg, true
	}
}

func (p *Parser) parseParenArgs() (*ast.ParenArgs, bool) {
	open := p.advance() // (
	paren := &ast.ParenArgs{}

	for !p.at(token.RParen) && !p.at(token.EOF) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		paren.Inputs = append(paren.Inputs, ty)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	closer, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close call-style arguments")
	if !ok {
		return nil, false
	}
	paren.Span = open.Span.Cover(closer.Span)

	if p.at(token.Arrow) {
		p.advance()
		ret, ok := p.parseType()
		if !ok {
			return nil, false
		}
		paren.Output = ret
		paren.Span = paren.Span.Cover(ret.Span())
	}
	return paren, true
}

// rawUntilCloser captures tokens verbatim up to (not including) the
// given closing delimiter at the current nesting level.
func (p *Parser) rawUntilCloser(closer token.Kind) (string, bool) {
	first := p.lx.Peek()
	start := first.Span.Start
	end := start
	depth := 0
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			p.err(diag.SynUnclosedDelimiter, "expected '"+closer.String()+"'")
			return "", false
		}
		if depth == 0 && tok.Kind == closer {
			return p.textBetween(start, end), true
		}
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
		end = tok.Span.End
	}
}
