package lexer

import (
	"gentests/internal/token"
)

// scanIdentOrKeyword scans an identifier or keyword. Raw-string and
// byte-literal prefixes (r"", r#""#, b"", b'', br"") are detected here
// because they start with identifier bytes.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	ch := lx.cursor.Peek()
	next := lx.cursor.PeekAt(1)

	switch ch {
	case 'r':
		if next == '"' || next == '#' {
			return lx.scanRawString(1)
		}
	case 'b':
		switch next {
		case '"':
			return lx.scanStringFrom(1)
		case '\'':
			return lx.scanCharFrom(1)
		case 'r':
			if b2 := lx.cursor.PeekAt(2); b2 == '"' || b2 == '#' {
				return lx.scanRawString(2)
			}
		}
	}

	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Slice(start)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.cursor.SpanFrom(start),
		Text: text,
	}
}
