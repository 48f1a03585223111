package lexer

import (
	"gentests/internal/diag"
	"gentests/internal/token"
)

// scanString scans a regular string literal starting at '"'.
func (lx *Lexer) scanString() token.Token {
	return lx.scanStringFrom(0)
}

// scanStringFrom scans a string literal whose opening quote sits prefix
// bytes ahead (prefix covers a leading `b`).
func (lx *Lexer) scanStringFrom(prefix uint32) token.Token {
	start := lx.cursor.Off
	lx.cursor.BumpN(prefix + 1) // prefix and opening quote

	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch ch {
		case '\\':
			lx.cursor.BumpN(2)
		case '"':
			lx.cursor.Bump()
			return token.Token{
				Kind: token.StringLit,
				Span: lx.cursor.SpanFrom(start),
				Text: lx.cursor.Slice(start),
			}
		default:
			lx.cursor.Bump()
		}
	}

	span := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, span, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: span, Text: lx.cursor.Slice(start)}
}

// scanRawString scans r"..." / r#"..."# / br"..." forms. prefix is the
// number of bytes before the hash run or quote (1 for r, 2 for br).
func (lx *Lexer) scanRawString(prefix uint32) token.Token {
	start := lx.cursor.Off
	lx.cursor.BumpN(prefix)

	hashes := uint32(0)
	for lx.cursor.Peek() == '#' {
		hashes++
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() != '"' {
		span := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedRawString, span, "expected '\"' in raw string literal")
		return token.Token{Kind: token.Unknown, Span: span, Text: lx.cursor.Slice(start)}
	}
	lx.cursor.Bump()

	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '"' {
			lx.cursor.Bump()
			continue
		}
		// Candidate terminator: '"' followed by the same number of hashes.
		matched := true
		for i := uint32(0); i < hashes; i++ {
			if lx.cursor.PeekAt(1+i) != '#' {
				matched = false
				break
			}
		}
		if matched {
			lx.cursor.BumpN(1 + hashes)
			return token.Token{
				Kind: token.RawStringLit,
				Span: lx.cursor.SpanFrom(start),
				Text: lx.cursor.Slice(start),
			}
		}
		lx.cursor.Bump()
	}

	span := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedRawString, span, "unterminated raw string literal")
	return token.Token{Kind: token.RawStringLit, Span: span, Text: lx.cursor.Slice(start)}
}

// scanLifetimeOrChar disambiguates 'a (lifetime) from 'a' (char literal).
func (lx *Lexer) scanLifetimeOrChar() token.Token {
	next := lx.cursor.PeekAt(1)
	if isIdentStartByte(next) || next >= utf8RuneSelf {
		// Identifier run after the quote: lifetime unless the run is
		// exactly one character closed by another quote.
		n := uint32(1)
		for isIdentContinueByte(lx.cursor.PeekAt(n)) {
			n++
		}
		if lx.cursor.PeekAt(n) != '\'' {
			start := lx.cursor.Off
			lx.cursor.BumpN(n)
			return token.Token{
				Kind: token.Lifetime,
				Span: lx.cursor.SpanFrom(start),
				Text: lx.cursor.Slice(start),
			}
		}
	}
	return lx.scanCharFrom(0)
}

// scanCharFrom scans a character literal whose opening quote sits prefix
// bytes ahead (prefix covers a leading `b`).
func (lx *Lexer) scanCharFrom(prefix uint32) token.Token {
	start := lx.cursor.Off
	lx.cursor.BumpN(prefix + 1)

	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch ch {
		case '\\':
			lx.cursor.BumpN(2)
		case '\'':
			lx.cursor.Bump()
			return token.Token{
				Kind: token.CharLit,
				Span: lx.cursor.SpanFrom(start),
				Text: lx.cursor.Slice(start),
			}
		case '\n':
			span := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedChar, span, "unterminated character literal")
			return token.Token{Kind: token.CharLit, Span: span, Text: lx.cursor.Slice(start)}
		default:
			lx.cursor.Bump()
		}
	}

	span := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedChar, span, "unterminated character literal")
	return token.Token{Kind: token.CharLit, Span: span, Text: lx.cursor.Slice(start)}
}
