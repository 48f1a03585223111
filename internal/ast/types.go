package ast

import (
	"gentests/internal/source"
)

// TypeExpr is a structured type expression from a test-function signature.
// Interiors the engine never rewrites (const expressions, attribute
// arguments) remain raw text.
type TypeExpr interface {
	isType()
	Span() source.Span
	Clone() TypeExpr
}

// PathType is `a::b::Name<args>` with optional leading `::`.
type PathType struct {
	Leading  bool
	Segments []PathSegment
	TypeSpan source.Span
}

// PathSegment is one `::`-separated segment. At most one of Args and
// Paren is set.
type PathSegment struct {
	Name  string
	Args  *GenericArgs // Name<...>
	Paren *ParenArgs   // Name(...) -> Ret, the call-style trait form
}

// GenericArgs is an angle-bracketed argument list.
type GenericArgs struct {
	Args []GenericArg
	Span source.Span
}

// GenericArgKind discriminates GenericArg payloads.
type GenericArgKind uint8

const (
	ArgLifetime GenericArgKind = iota
	ArgType
	ArgBinding   // Item = T
	ArgConstExpr // { N + 1 }, 3, -1
)

// GenericArg is one entry of a GenericArgs list.
type GenericArg struct {
	Kind     GenericArgKind
	Lifetime *LifetimeRef // ArgLifetime
	Type     TypeExpr     // ArgType, ArgBinding
	Name     string       // ArgBinding
	Raw      string       // ArgConstExpr
	Span     source.Span
}

// ParenArgs is the call-style trait argument form `(A, B) -> C` used by
// closure traits. It forms its own lifetime inference context.
type ParenArgs struct {
	Inputs []TypeExpr
	Output TypeExpr // nil when absent
	Span   source.Span
}

// RefType is `&T`, `&'a T`, `&mut T`, `&'a mut T`. A nil Lifetime is an
// elided lifetime.
type RefType struct {
	Lifetime *LifetimeRef
	Mut      bool
	Elem     TypeExpr
	TypeSpan source.Span
}

// SliceType is `[T]`.
type SliceType struct {
	Elem     TypeExpr
	TypeSpan source.Span
}

// ArrayType is `[T; len]` with the length expression kept raw.
type ArrayType struct {
	Elem     TypeExpr
	LenRaw   string
	TypeSpan source.Span
}

// TupleType is `(A, B, ...)`. The empty tuple is the unit type.
type TupleType struct {
	Elems    []TypeExpr
	TypeSpan source.Span
}

// ParenType is a parenthesized type `(T)`, kept distinct so output
// reproduces the author's grouping.
type ParenType struct {
	Elem     TypeExpr
	TypeSpan source.Span
}

// RawPtrType is `*const T` or `*mut T`.
type RawPtrType struct {
	Mut      bool
	Elem     TypeExpr
	TypeSpan source.Span
}

// BareFnType is a function pointer type, optionally with its own
// higher-ranked lifetime binder: `for<'a> unsafe extern "C" fn(&'a u8)`.
// The binder opens a local lifetime scope.
type BareFnType struct {
	Binder   []LifetimeDef
	Unsafe   bool
	Abi      string // literal after `extern`, "" when absent
	Inputs   []BareFnParam
	Variadic bool
	Output   TypeExpr
	TypeSpan source.Span
}

// BareFnParam is one parameter of a function pointer type; the name is
// optional.
type BareFnParam struct {
	Name string
	Type TypeExpr
}

// TypeBound is one `+`-separated bound of a trait object or impl-trait
// type: an optional `for<'a>` binder with a trait path, or a lifetime.
type TypeBound struct {
	Binder   []LifetimeDef
	Trait    *PathType
	Lifetime *LifetimeRef
	Maybe    bool // ?Sized
	Span     source.Span
}

// TraitObjectType is `dyn Bound + Bound + 'a`.
type TraitObjectType struct {
	Bounds   []TypeBound
	TypeSpan source.Span
}

// ImplTraitType is `impl Bound + Bound`.
type ImplTraitType struct {
	Bounds   []TypeBound
	TypeSpan source.Span
}

// InferType is `_`.
type InferType struct {
	TypeSpan source.Span
}

// NeverType is `!`.
type NeverType struct {
	TypeSpan source.Span
}

func (*PathType) isType()        {}
func (*RefType) isType()         {}
func (*SliceType) isType()       {}
func (*ArrayType) isType()       {}
func (*TupleType) isType()       {}
func (*ParenType) isType()       {}
func (*RawPtrType) isType()      {}
func (*BareFnType) isType()      {}
func (*TraitObjectType) isType() {}
func (*ImplTraitType) isType()   {}
func (*InferType) isType()       {}
func (*NeverType) isType()       {}

func (t *PathType) Span() source.Span        { return t.TypeSpan }
func (t *RefType) Span() source.Span         { return t.TypeSpan }
func (t *SliceType) Span() source.Span       { return t.TypeSpan }
func (t *ArrayType) Span() source.Span       { return t.TypeSpan }
func (t *TupleType) Span() source.Span       { return t.TypeSpan }
func (t *ParenType) Span() source.Span       { return t.TypeSpan }
func (t *RawPtrType) Span() source.Span      { return t.TypeSpan }
func (t *BareFnType) Span() source.Span      { return t.TypeSpan }
func (t *TraitObjectType) Span() source.Span { return t.TypeSpan }
func (t *ImplTraitType) Span() source.Span   { return t.TypeSpan }
func (t *InferType) Span() source.Span       { return t.TypeSpan }
func (t *NeverType) Span() source.Span       { return t.TypeSpan }
