package lexer

import (
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// Lexer produces significant tokens with leading comment trivia attached.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   []token.Token
	hold   []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file the lexer reads from.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekN(0)
}

// PeekN returns the n-th upcoming token without consuming anything.
// PeekN(0) is the same as Peek.
func (lx *Lexer) PeekN(n int) token.Token {
	for len(lx.look) <= n {
		lx.look = append(lx.look, lx.scan())
	}
	return lx.look[n]
}

// Next returns the next significant token with its leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.look) > 0 {
		tok := lx.look[0]
		lx.look = lx.look[1:]
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_':
		if isIdentContinueByte(lx.cursor.PeekAt(1)) {
			tok = lx.scanIdentOrKeyword()
		} else {
			start := lx.cursor.Off
			lx.cursor.Bump()
			tok = token.Token{Kind: token.Underscore, Span: lx.cursor.SpanFrom(start), Text: "_"}
		}

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '\'':
		tok = lx.scanLifetimeOrChar()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Tokenize drains the lexer and returns every significant token including
// the trailing EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	lx.opts.reporter().Report(code, diag.SevError, span, msg, nil)
}
