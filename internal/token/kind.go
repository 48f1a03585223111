package token

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota
	Unknown

	Ident
	Lifetime // 'a, '_, 'static; Text keeps the leading quote
	Underscore

	IntLit
	FloatLit
	StringLit
	RawStringLit
	CharLit

	// Keywords of the declaration grammar. Everything else that looks
	// like a keyword in function bodies is scanned as Ident; bodies are
	// opaque so the distinction never matters there.
	KwMod
	KwFn
	KwPub
	KwConst
	KwAsync
	KwUnsafe
	KwExtern
	KwWhere
	KwMut
	KwDyn
	KwFor
	KwImpl
	KwUse
	KwStatic
	KwCrate
	KwSuper
	KwSelf

	Pound     // #
	Bang      // !
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Lt        // <
	Gt        // >
	Comma     // ,
	Semicolon // ;
	Colon     // :
	PathSep   // ::
	Arrow     // ->
	FatArrow  // =>
	Amp       // &
	Star      // *
	Plus      // +
	Minus     // -
	Slash     // /
	Percent   // %
	Eq        // =
	Question  // ?
	Dot       // .
	DotDot    // ..
	DotDotEq  // ..=
	DotDotDot // ...
	Pipe      // |
	Caret     // ^
	At        // @
	Tilde     // ~
	Dollar    // $
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	Unknown:      "Unknown",
	Ident:        "Ident",
	Lifetime:     "Lifetime",
	Underscore:   "Underscore",
	IntLit:       "IntLit",
	FloatLit:     "FloatLit",
	StringLit:    "StringLit",
	RawStringLit: "RawStringLit",
	CharLit:      "CharLit",
	KwMod:        "mod",
	KwFn:         "fn",
	KwPub:        "pub",
	KwConst:      "const",
	KwAsync:      "async",
	KwUnsafe:     "unsafe",
	KwExtern:     "extern",
	KwWhere:      "where",
	KwMut:        "mut",
	KwDyn:        "dyn",
	KwFor:        "for",
	KwImpl:       "impl",
	KwUse:        "use",
	KwStatic:     "static",
	KwCrate:      "crate",
	KwSuper:      "super",
	KwSelf:       "self",
	Pound:        "#",
	Bang:         "!",
	LParen:       "(",
	RParen:       ")",
	LBracket:     "[",
	RBracket:     "]",
	LBrace:       "{",
	RBrace:       "}",
	Lt:           "<",
	Gt:           ">",
	Comma:        ",",
	Semicolon:    ";",
	Colon:        ":",
	PathSep:      "::",
	Arrow:        "->",
	FatArrow:     "=>",
	Amp:          "&",
	Star:         "*",
	Plus:         "+",
	Minus:        "-",
	Slash:        "/",
	Percent:      "%",
	Eq:           "=",
	Question:     "?",
	Dot:          ".",
	DotDot:       "..",
	DotDotEq:     "..=",
	DotDotDot:    "...",
	Pipe:         "|",
	Caret:        "^",
	At:           "@",
	Tilde:        "~",
	Dollar:       "$",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}
