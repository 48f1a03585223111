package lexer

import (
	"gentests/internal/diag"
	"gentests/internal/token"
)

// collectLeadingTrivia skips whitespace and accumulates comments into
// lx.hold until the next significant token.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case isWhitespace(ch):
			lx.cursor.Bump()

		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanLineComment()

		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment()

		default:
			return
		}
	}
}

func (lx *Lexer) scanLineComment() {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	text := lx.cursor.Slice(start)

	kind := token.TriviaLineComment
	// `///` is an outer doc comment; `////...` is decoration, not doc.
	if len(text) >= 3 && text[2] == '/' && (len(text) == 3 || text[3] != '/') {
		kind = token.TriviaDocLine
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: text,
	})
}

func (lx *Lexer) scanBlockComment() {
	start := lx.cursor.Off
	lx.cursor.BumpN(2) // consume /*

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		b0, b1, ok := lx.cursor.Peek2()
		switch {
		case ok && b0 == '/' && b1 == '*':
			depth++
			lx.cursor.BumpN(2)
		case ok && b0 == '*' && b1 == '/':
			depth--
			lx.cursor.BumpN(2)
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start),
			"unterminated block comment")
	}

	text := lx.cursor.Slice(start)
	kind := token.TriviaBlockComment
	// `/**` (but not `/***` or the empty `/**/`) is an outer doc block.
	if len(text) > 4 && text[2] == '*' && text[3] != '*' && text[3] != '/' {
		kind = token.TriviaDocBlock
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: text,
	})
}
