package lexer

import (
	"gentests/internal/diag"
	"gentests/internal/token"
)

// scanOperatorOrPunct scans punctuation and the few multi-byte operators
// the declaration grammar needs. `<<`, `>>`, and `&&` are intentionally
// not glued: nested generic arguments (`Vec<Vec<u8>>`) and double
// references (`&&T`) read naturally as single-byte tokens, and opaque
// regions only need balanced delimiters.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Peek()

	single := func(k token.Kind) token.Token {
		lx.cursor.Bump()
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Slice(start)}
	}
	multi := func(k token.Kind, n uint32) token.Token {
		lx.cursor.BumpN(n)
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Slice(start)}
	}

	switch ch {
	case '#':
		return single(token.Pound)
	case '!':
		return single(token.Bang)
	case '(':
		return single(token.LParen)
	case ')':
		return single(token.RParen)
	case '[':
		return single(token.LBracket)
	case ']':
		return single(token.RBracket)
	case '{':
		return single(token.LBrace)
	case '}':
		return single(token.RBrace)
	case '<':
		return single(token.Lt)
	case '>':
		return single(token.Gt)
	case ',':
		return single(token.Comma)
	case ';':
		return single(token.Semicolon)
	case ':':
		if lx.cursor.PeekAt(1) == ':' {
			return multi(token.PathSep, 2)
		}
		return single(token.Colon)
	case '-':
		if lx.cursor.PeekAt(1) == '>' {
			return multi(token.Arrow, 2)
		}
		return single(token.Minus)
	case '=':
		if lx.cursor.PeekAt(1) == '>' {
			return multi(token.FatArrow, 2)
		}
		return single(token.Eq)
	case '&':
		return single(token.Amp)
	case '*':
		return single(token.Star)
	case '+':
		return single(token.Plus)
	case '/':
		return single(token.Slash)
	case '%':
		return single(token.Percent)
	case '?':
		return single(token.Question)
	case '.':
		if lx.cursor.PeekAt(1) == '.' {
			switch lx.cursor.PeekAt(2) {
			case '=':
				return multi(token.DotDotEq, 3)
			case '.':
				return multi(token.DotDotDot, 3)
			default:
				return multi(token.DotDot, 2)
			}
		}
		return single(token.Dot)
	case '|':
		return single(token.Pipe)
	case '^':
		return single(token.Caret)
	case '@':
		return single(token.At)
	case '~':
		return single(token.Tilde)
	case '$':
		return single(token.Dollar)
	}

	tok := single(token.Unknown)
	lx.report(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
	return tok
}
