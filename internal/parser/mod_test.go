package parser

import (
	"testing"

	"gentests/internal/ast"
	"gentests/internal/diag"
)

func TestParseModInline(t *testing.T) {
	m := singleMod(t, `
#[generic_tests]
mod tests {
    #![allow(dead_code)]

    fn check<T>(x: T) {}

    mod u8_case {}
}`)

	if m.Name != "tests" {
		t.Fatalf("name = %q", m.Name)
	}
	if !m.Inline {
		t.Fatal("inline not recorded")
	}
	if m.AttrByIdent("generic_tests") == nil {
		t.Fatal("outer attribute not found")
	}
	if len(m.InnerAttrs) != 1 || !m.InnerAttrs[0].Inner {
		t.Fatalf("inner attrs = %+v", m.InnerAttrs)
	}
	if len(m.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.Items))
	}
	if _, ok := m.Items[0].(*ast.FnItem); !ok {
		t.Fatalf("item 0 is %T", m.Items[0])
	}
	inner, ok := m.Items[1].(*ast.ModItem)
	if !ok {
		t.Fatalf("item 1 is %T", m.Items[1])
	}
	if inner.Name != "u8_case" || !inner.Inline || len(inner.Items) != 0 {
		t.Fatalf("inner mod = %+v", inner)
	}
}

func TestParseModOpaque(t *testing.T) {
	m := singleMod(t, "mod elsewhere;")
	if m.Inline {
		t.Fatal("opaque module marked inline")
	}
}

func TestParseModBodySpanCoversBraces(t *testing.T) {
	src := "mod t { fn a() {} }"
	m := singleMod(t, src)
	if got := src[m.BodySpan.Start:m.BodySpan.End]; got != "{ fn a() {} }" {
		t.Fatalf("body span covers %q", got)
	}
}

func TestParseModUnclosed(t *testing.T) {
	_, bag := parseSource(t, "mod t { fn a() {}")
	if !hasCode(bag, diag.SynUnclosedDelimiter) {
		t.Fatal("expected SynUnclosedDelimiter diagnostic")
	}
}

func TestParseVerbatimItems(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"use", "use std::fmt::Debug;", "use std::fmt::Debug;"},
		{"use with braces", "use a::{b, c};", "use a::{b, c};"},
		{"struct", "struct S { a: u8 }", "struct S { a: u8 }"},
		{"tuple struct", "struct S(u8);", "struct S(u8);"},
		{"const item", "const X: u8 = 1;", "const X: u8 = 1;"},
		{"static item", "static S: &str = \"x\";", "static S: &str = \"x\";"},
		{"impl block", "impl S { fn m(&self) {} }", "impl S { fn m(&self) {} }"},
		{"unsafe impl", "unsafe impl Send for S {}", "unsafe impl Send for S {}"},
		{"extern crate", "extern crate core;", "extern crate core;"},
		{"foreign block", `extern "C" { fn abort(); }`, `extern "C" { fn abort(); }`},
		{"type alias", "type F = fn() -> u8;", "type F = fn() -> u8;"},
		{"macro call", "macro_rules! m { () => {}; }", "macro_rules! m { () => {}; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, tt.src)
			if len(file.Items) != 1 {
				t.Fatalf("items = %d", len(file.Items))
			}
			v, ok := file.Items[0].(*ast.VerbatimItem)
			if !ok {
				t.Fatalf("item is %T, want *ast.VerbatimItem", file.Items[0])
			}
			if v.Raw != tt.want {
				t.Fatalf("raw = %q, want %q", v.Raw, tt.want)
			}
		})
	}
}

func TestParseFileInnerAttrs(t *testing.T) {
	file := mustParse(t, "#![allow(unused)]\n\nfn a() {}")
	if len(file.InnerAttrs) != 1 || !file.InnerAttrs[0].Inner {
		t.Fatalf("inner attrs = %+v", file.InnerAttrs)
	}
	if len(file.Items) != 1 {
		t.Fatalf("items = %d", len(file.Items))
	}
}

func TestParseMixedTopLevel(t *testing.T) {
	file := mustParse(t, `
use std::fmt::Debug;

struct Fixture;

#[generic_tests]
mod tests {
    fn check() {}
}
`)
	if len(file.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(file.Items))
	}
	if _, ok := file.Items[2].(*ast.ModItem); !ok {
		t.Fatalf("item 2 is %T", file.Items[2])
	}
}
