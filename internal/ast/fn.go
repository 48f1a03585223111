package ast

import (
	"gentests/internal/source"
)

// FnQualifiers records the qualifier keywords preceding `fn`.
type FnQualifiers struct {
	Const  bool
	Async  bool
	Unsafe bool
	Extern bool
	Abi    string // the literal after `extern`, "" when absent

	ConstSpan  source.Span
	ExternSpan source.Span
}

// PatKind classifies a parameter pattern. Only plain identifier bindings
// are representable in generated carrier types; the rest are recognized so
// the extractor can report them precisely.
type PatKind uint8

const (
	PatIdent    PatKind = iota // x: T, mut x: T
	PatWild                    // _: T
	PatReceiver                // self, &self, &mut self, self: T
	PatOther                   // tuples, refs, structs, ...
)

// Param is one entry of a function parameter list.
type Param struct {
	Attrs []Attr
	Pat   PatKind
	Mut   bool
	Name  string // binding name for PatIdent
	Raw   string // original pattern text for diagnostics on PatOther
	Type  TypeExpr
	Span  source.Span
}

// FnItem is a function declaration. The body is never inspected: it is
// kept as the raw byte range between (and including) its braces.
type FnItem struct {
	Doc   []string
	Attrs []Attr
	Vis   string
	Quals FnQualifiers
	Name  string

	Generics GenericParams
	Params   []Param
	Variadic bool
	Return   TypeExpr // nil for the default unit return

	// Raw text slices of the original source, used when the generated
	// forwarding function must reproduce the author's exact surface.
	ParamsRaw string // between the parameter parens, exclusive
	ReturnRaw string // `-> T` including the arrow, "" when absent
	WhereRaw  string // `where ...` including the keyword, "" when absent
	BodyRaw   string // `{ ... }` including braces, "" for `fn f();`
	HasBody   bool

	NameSpan     source.Span
	GenericsSpan source.Span
	VariadicSpan source.Span
	ItemSpan     source.Span
}

func (*FnItem) isItem()              {}
func (f *FnItem) Span() source.Span { return f.ItemSpan }
