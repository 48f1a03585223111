package ast

import (
	"testing"
)

func path(names ...string) *PathType {
	segs := make([]PathSegment, len(names))
	for i, n := range names {
		segs[i] = PathSegment{Name: n}
	}
	return &PathType{Segments: segs}
}

func pathWith(name string, args ...GenericArg) *PathType {
	return &PathType{Segments: []PathSegment{{
		Name: name,
		Args: &GenericArgs{Args: args},
	}}}
}

func typeArg(t TypeExpr) GenericArg {
	return GenericArg{Kind: ArgType, Type: t}
}

func TestPrintType(t *testing.T) {
	tests := []struct {
		name string
		typ  TypeExpr
		want string
	}{
		{
			name: "simple path",
			typ:  path("u8"),
			want: "u8",
		},
		{
			name: "qualified path",
			typ:  path("std", "string", "String"),
			want: "std::string::String",
		},
		{
			name: "leading colons",
			typ:  &PathType{Leading: true, Segments: []PathSegment{{Name: "core"}, {Name: "fmt"}, {Name: "Debug"}}},
			want: "::core::fmt::Debug",
		},
		{
			name: "generic args",
			typ:  pathWith("Vec", typeArg(pathWith("Vec", typeArg(path("u8"))))),
			want: "Vec<Vec<u8>>",
		},
		{
			name: "lifetime arg",
			typ: pathWith("Cow",
				GenericArg{Kind: ArgLifetime, Lifetime: &LifetimeRef{Name: "'a"}},
				typeArg(path("str")),
			),
			want: "Cow<'a, str>",
		},
		{
			name: "const arg",
			typ:  pathWith("ArrayVec", typeArg(path("u8")), GenericArg{Kind: ArgConstExpr, Raw: "4"}),
			want: "ArrayVec<u8, 4>",
		},
		{
			name: "binding arg",
			typ:  pathWith("Iterator", GenericArg{Kind: ArgBinding, Name: "Item", Type: path("u8")}),
			want: "Iterator<Item = u8>",
		},
		{
			name: "shared ref",
			typ:  &RefType{Elem: path("str")},
			want: "&str",
		},
		{
			name: "named mut ref",
			typ:  &RefType{Lifetime: &LifetimeRef{Name: "'a"}, Mut: true, Elem: path("u8")},
			want: "&'a mut u8",
		},
		{
			name: "slice of refs",
			typ:  &SliceType{Elem: &RefType{Elem: path("str")}},
			want: "[&str]",
		},
		{
			name: "array",
			typ:  &ArrayType{Elem: path("u8"), LenRaw: "N + 1"},
			want: "[u8; N + 1]",
		},
		{
			name: "unit",
			typ:  &TupleType{},
			want: "()",
		},
		{
			name: "single tuple keeps trailing comma",
			typ:  &TupleType{Elems: []TypeExpr{path("u8")}},
			want: "(u8,)",
		},
		{
			name: "pair",
			typ:  &TupleType{Elems: []TypeExpr{path("u8"), path("u16")}},
			want: "(u8, u16)",
		},
		{
			name: "raw pointers",
			typ:  &RawPtrType{Mut: true, Elem: &RawPtrType{Elem: path("u8")}},
			want: "*mut *const u8",
		},
		{
			name: "bare fn",
			typ: &BareFnType{
				Inputs: []BareFnParam{{Type: path("u8")}, {Name: "len", Type: path("usize")}},
				Output: path("bool"),
			},
			want: "fn(u8, len: usize) -> bool",
		},
		{
			name: "bare fn with binder and abi",
			typ: &BareFnType{
				Binder: []LifetimeDef{{Name: "'a"}},
				Unsafe: true,
				Abi:    `"C"`,
				Inputs: []BareFnParam{{Type: &RefType{Lifetime: &LifetimeRef{Name: "'a"}, Elem: path("u8")}}},
			},
			want: `for<'a> unsafe extern "C" fn(&'a u8)`,
		},
		{
			name: "variadic fn",
			typ: &BareFnType{
				Abi:      `"C"`,
				Inputs:   []BareFnParam{{Type: path("u8")}},
				Variadic: true,
			},
			want: `extern "C" fn(u8, ...)`,
		},
		{
			name: "trait object",
			typ: &TraitObjectType{Bounds: []TypeBound{
				{Trait: path("Send")},
				{Lifetime: &LifetimeRef{Name: "'static"}},
			}},
			want: "dyn Send + 'static",
		},
		{
			name: "impl trait with maybe bound",
			typ: &ImplTraitType{Bounds: []TypeBound{
				{Trait: path("Read")},
				{Maybe: true, Trait: path("Sized")},
			}},
			want: "impl Read + ?Sized",
		},
		{
			name: "higher ranked bound",
			typ: &TraitObjectType{Bounds: []TypeBound{
				{Binder: []LifetimeDef{{Name: "'a"}}, Trait: pathWith("Fn", typeArg(&RefType{Lifetime: &LifetimeRef{Name: "'a"}, Elem: path("u8")}))},
			}},
			want: "dyn for<'a> Fn<&'a u8>",
		},
		{
			name: "call style trait args",
			typ: &PathType{Segments: []PathSegment{{
				Name: "Fn",
				Paren: &ParenArgs{
					Inputs: []TypeExpr{&RefType{Elem: path("str")}},
					Output: path("bool"),
				},
			}}},
			want: "Fn(&str) -> bool",
		},
		{
			name: "infer and never",
			typ:  &TupleType{Elems: []TypeExpr{&InferType{}, &NeverType{}}},
			want: "(_, !)",
		},
		{
			name: "paren grouping",
			typ:  &RefType{Elem: &ParenType{Elem: &TraitObjectType{Bounds: []TypeBound{{Trait: path("Send")}}}}},
			want: "&(dyn Send)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrintType(tt.typ)
			if got != tt.want {
				t.Fatalf("PrintType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := &RefType{
		Lifetime: &LifetimeRef{Name: "'_"},
		Elem: pathWith("Cow",
			GenericArg{Kind: ArgLifetime, Lifetime: &LifetimeRef{Name: "'_"}},
			typeArg(path("str")),
		),
	}
	before := PrintType(orig)

	cl := orig.Clone().(*RefType)
	cl.Lifetime.Name = "'x"
	cl.Elem.(*PathType).Segments[0].Args.Args[0].Lifetime.Name = "'x"

	if got := PrintType(orig); got != before {
		t.Fatalf("original mutated through clone: %q, want %q", got, before)
	}
	if got := PrintType(cl); got != "&'x Cow<'x, str>" {
		t.Fatalf("clone render = %q", got)
	}
}

func TestCloneBareFnBinder(t *testing.T) {
	orig := &BareFnType{
		Binder: []LifetimeDef{{Name: "'a"}},
		Inputs: []BareFnParam{{Type: &RefType{Lifetime: &LifetimeRef{Name: "'a"}, Elem: path("u8")}}},
	}
	cl := orig.Clone().(*BareFnType)
	cl.Binder[0].Name = "'z"
	if orig.Binder[0].Name != "'a" {
		t.Fatalf("binder shared between clone and original")
	}
}
