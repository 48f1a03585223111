package parser

import (
	"testing"

	"gentests/internal/ast"
)

// parseTypeOf parses a one-parameter function and returns the structured
// parameter type.
func parseTypeOf(t *testing.T, typ string) ast.TypeExpr {
	t.Helper()
	fn := singleFn(t, "fn f(x: "+typ+") {}")
	if len(fn.Params) != 1 {
		t.Fatalf("params = %d", len(fn.Params))
	}
	return fn.Params[0].Type
}

func TestParseTypeRoundtrip(t *testing.T) {
	// Canonical rendering of the parsed tree must reproduce the input
	// for types already written in canonical form.
	tests := []string{
		"u8",
		"std::string::String",
		"::core::fmt::Error",
		"Vec<Vec<u8>>",
		"Cow<'a, str>",
		"Iterator<Item = u8>",
		"ArrayVec<u8, 4>",
		"ArrayVec<u8, { N + 1 }>",
		"&str",
		"&'a mut u8",
		"&&u8",
		"[u8]",
		"[u8; 16]",
		"()",
		"(u8,)",
		"(u8, u16, u32)",
		"*const u8",
		"*mut *const u8",
		"fn(u8) -> bool",
		"for<'a> unsafe extern \"C\" fn(&'a u8)",
		"extern \"C\" fn(u8, ...)",
		"dyn Send + 'static",
		"dyn for<'a> Fn(&'a str) -> bool",
		"impl Iterator<Item = u8> + ?Sized",
		"&(dyn Send)",
		"_",
		"Option<!>",
		"Box<dyn Fn(&str) -> bool>",
		"&'_ u8",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			ty := parseTypeOf(t, src)
			if got := ast.PrintType(ty); got != src {
				t.Fatalf("rendered %q, want %q", got, src)
			}
		})
	}
}

func TestParseTypeShapes(t *testing.T) {
	t.Run("elided ref lifetime is nil", func(t *testing.T) {
		ref, ok := parseTypeOf(t, "&str").(*ast.RefType)
		if !ok || ref.Lifetime != nil {
			t.Fatalf("got %+v", ref)
		}
	})

	t.Run("placeholder lifetime is kept", func(t *testing.T) {
		ref := parseTypeOf(t, "&'_ str").(*ast.RefType)
		if ref.Lifetime == nil || !ref.Lifetime.IsPlaceholder() {
			t.Fatalf("got %+v", ref.Lifetime)
		}
	})

	t.Run("single parenthesized type is grouping", func(t *testing.T) {
		if _, ok := parseTypeOf(t, "(u8)").(*ast.ParenType); !ok {
			t.Fatal("want ParenType")
		}
	})

	t.Run("one element tuple needs trailing comma", func(t *testing.T) {
		tup, ok := parseTypeOf(t, "(u8,)").(*ast.TupleType)
		if !ok || len(tup.Elems) != 1 {
			t.Fatalf("got %T", parseTypeOf(t, "(u8,)"))
		}
	})

	t.Run("call style args form own context", func(t *testing.T) {
		p := parseTypeOf(t, "Fn(&str) -> bool").(*ast.PathType)
		seg := p.Segments[0]
		if seg.Paren == nil || len(seg.Paren.Inputs) != 1 || seg.Paren.Output == nil {
			t.Fatalf("paren args = %+v", seg.Paren)
		}
	})

	t.Run("binder scopes its lifetimes", func(t *testing.T) {
		fnTy := parseTypeOf(t, "for<'a> fn(&'a u8)").(*ast.BareFnType)
		if len(fnTy.Binder) != 1 || fnTy.Binder[0].Name != "'a" {
			t.Fatalf("binder = %+v", fnTy.Binder)
		}
	})

	t.Run("array length stays raw", func(t *testing.T) {
		arr := parseTypeOf(t, "[u8; N * 2]").(*ast.ArrayType)
		if arr.LenRaw != "N * 2" {
			t.Fatalf("len raw = %q", arr.LenRaw)
		}
	})

	t.Run("negative const argument", func(t *testing.T) {
		p := parseTypeOf(t, "Shift<-1>").(*ast.PathType)
		arg := p.Segments[0].Args.Args[0]
		if arg.Kind != ast.ArgConstExpr || arg.Raw != "-1" {
			t.Fatalf("arg = %+v", arg)
		}
	})
}

func TestParseTypeErrors(t *testing.T) {
	tests := []string{
		"fn f(x: ) {}",
		"fn f(x: *u8) {}",
		"fn f(x: Vec<u8) {}",
		"fn f() -> {}",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, bag := parseSource(t, src)
			if !bag.HasErrors() {
				t.Fatal("expected diagnostics")
			}
		})
	}
}
