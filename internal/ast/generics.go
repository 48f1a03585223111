package ast

import (
	"gentests/internal/source"
)

// LifetimeDef is a declared lifetime parameter, e.g. `'a` or `'a: 'b`.
type LifetimeDef struct {
	Name string // with the leading quote
	Raw  string // full original text including bounds
	Span source.Span
}

// GenericParamKind distinguishes type parameters from const parameters.
type GenericParamKind uint8

const (
	GenericTypeParam GenericParamKind = iota
	GenericConstParam
)

func (k GenericParamKind) String() string {
	if k == GenericConstParam {
		return "const"
	}
	return "type"
}

// TypeConstParam is a declared type or const generic parameter. Bounds and
// defaults stay in Raw; the engine only needs the name and the kind.
type TypeConstParam struct {
	Kind GenericParamKind
	Name string
	Raw  string
	Span source.Span
}

// GenericParams is a function's generic parameter list split by kind, with
// source order preserved inside each group.
type GenericParams struct {
	Lifetimes []LifetimeDef
	Params    []TypeConstParam
	Span      source.Span
}

// Arity returns the number of type and const parameters; lifetimes do not
// count, since instantiation arguments never bind them explicitly.
func (g *GenericParams) Arity() int {
	return len(g.Params)
}

// ParamNames returns the set of type/const parameter names, used to detect
// generic-parameter leakage into signatures.
func (g *GenericParams) ParamNames() map[string]bool {
	if len(g.Params) == 0 {
		return nil
	}
	names := make(map[string]bool, len(g.Params))
	for _, p := range g.Params {
		names[p.Name] = true
	}
	return names
}
