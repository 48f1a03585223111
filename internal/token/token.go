package token

import (
	"gentests/internal/source"
)

// Token represents a single source token with its location and leading
// trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a declaration-grammar keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwMod, KwFn, KwPub, KwConst, KwAsync, KwUnsafe, KwExtern, KwWhere,
		KwMut, KwDyn, KwFor, KwImpl, KwUse, KwStatic, KwCrate, KwSuper, KwSelf:
		return true
	default:
		return false
	}
}

// OpenDelim reports whether the token opens a bracketed group.
func (t Token) OpenDelim() bool {
	switch t.Kind {
	case LParen, LBracket, LBrace:
		return true
	default:
		return false
	}
}

// CloseDelim reports whether the token closes a bracketed group.
func (t Token) CloseDelim() bool {
	switch t.Kind {
	case RParen, RBracket, RBrace:
		return true
	default:
		return false
	}
}

// MatchingClose returns the closing delimiter kind paired with an opener.
func MatchingClose(k Kind) (Kind, bool) {
	switch k {
	case LParen:
		return RParen, true
	case LBracket:
		return RBracket, true
	case LBrace:
		return RBrace, true
	default:
		return EOF, false
	}
}

// DocText returns the accumulated outer doc-comment lines attached to the
// token, in source order, with their comment markers preserved.
func (t Token) DocText() []string {
	var docs []string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDocLine || tr.Kind == TriviaDocBlock {
			docs = append(docs, tr.Text)
		}
	}
	return docs
}
