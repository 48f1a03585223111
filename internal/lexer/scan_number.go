package lexer

import (
	"gentests/internal/token"
)

// scanNumber scans integer and float literals, including base prefixes,
// digit separators, exponents, and type suffixes (1_000u32, 0xFF, 1.5e3).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.BumpN(2)
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.finishNumber(start, kind)
		case 'o', 'O', 'b', 'B':
			lx.cursor.BumpN(2)
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.finishNumber(start, kind)
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// Fraction: a dot followed by a digit. `1..2` keeps its range dots.
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// Exponent.
	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n++
		}
		if isDec(lx.cursor.PeekAt(n)) {
			kind = token.FloatLit
			lx.cursor.BumpN(n)
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	return lx.finishNumber(start, kind)
}

// finishNumber consumes a trailing type suffix (u32, f64, usize, ...).
func (lx *Lexer) finishNumber(start uint32, kind token.Kind) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.Slice(start),
	}
}
