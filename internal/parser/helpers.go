package parser

import (
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// advance consumes the next token and remembers its span for diagnostics.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan picks the best span for a diagnostic at the current position.
// At EOF the caret lands just past the last consumed token instead of on
// a zero-width span at offset zero.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports the diagnostic and leaves
// the stream untouched.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Unknown, Span: sp, Text: p.lx.Peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// text returns the original source covered by span.
func (p *Parser) text(sp source.Span) string {
	return string(p.file.Content[sp.Start:sp.End])
}

// textBetween returns the original source between two byte offsets.
func (p *Parser) textBetween(start, end uint32) string {
	if end < start || int(end) > len(p.file.Content) {
		return ""
	}
	return string(p.file.Content[start:end])
}

// skipBalanced consumes a delimiter group whose opener was just peeked,
// returning the covering span. Nested groups of any delimiter kind are
// skipped; a missing closer is reported against the opener.
func (p *Parser) skipBalanced() (source.Span, bool) {
	open := p.advance()
	closeKind, ok := token.MatchingClose(open.Kind)
	if !ok {
		return open.Span, false
	}
	depth := 1
	last := open.Span
	for depth > 0 {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span,
				"unclosed "+open.Kind.String())
			return open.Span.Cover(last), false
		}
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 && tok.Kind != closeKind {
				p.report(diag.SynUnclosedDelimiter, diag.SevError, tok.Span,
					"mismatched closing delimiter")
			}
		}
		last = tok.Span
		p.advance()
	}
	return open.Span.Cover(last), true
}
