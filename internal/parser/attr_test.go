package parser

import (
	"testing"

	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/token"
)

func TestParseAttrStyles(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		path  string
		style ast.AttrStyle
		args  int
	}{
		{"plain", "#[test]\nfn f() {}", "test", ast.AttrPlain, 0},
		{"list", `#[cfg(feature = "x")]` + "\nfn f() {}", "cfg", ast.AttrList, 3},
		{"name value", `#[ignore = "reason"]` + "\nfn f() {}", "ignore", ast.AttrNameValue, 1},
		{"qualified path", "#[generic_tests::define]\nfn f() {}", "generic_tests::define", ast.AttrPlain, 0},
		{"nested groups", "#[generic_test(attrs(test, ignore))]\nfn f() {}", "generic_test", ast.AttrList, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := singleFn(t, tt.src)
			if len(fn.Attrs) != 1 {
				t.Fatalf("attrs = %d", len(fn.Attrs))
			}
			attr := fn.Attrs[0]
			if attr.PathString() != tt.path {
				t.Fatalf("path = %q, want %q", attr.PathString(), tt.path)
			}
			if attr.Style != tt.style {
				t.Fatalf("style = %d, want %d", attr.Style, tt.style)
			}
			if len(attr.Args) != tt.args {
				t.Fatalf("args = %d, want %d", len(attr.Args), tt.args)
			}
			if attr.Inner {
				t.Fatal("outer attribute marked inner")
			}
		})
	}
}

func TestParseAttrSpanCoversBrackets(t *testing.T) {
	src := "#[should_panic(expected = \"boom\")]\nfn f() {}"
	fn := singleFn(t, src)
	attr := fn.Attrs[0]
	if got := src[attr.Span.Start:attr.Span.End]; got != `#[should_panic(expected = "boom")]` {
		t.Fatalf("span covers %q", got)
	}
}

func TestParseAttrArgTokensKeepSpans(t *testing.T) {
	src := "#[instantiate_tests(<String>)]\nmod string_case {}"
	m := singleMod(t, src)
	attr := m.Attrs[0]
	if len(attr.Args) != 3 {
		t.Fatalf("args = %d, want 3", len(attr.Args))
	}
	if attr.Args[0].Kind != token.Lt || attr.Args[1].Text != "String" || attr.Args[2].Kind != token.Gt {
		t.Fatalf("args = %+v", attr.Args)
	}
	if got := src[attr.Args[1].Span.Start:attr.Args[1].Span.End]; got != "String" {
		t.Fatalf("arg span covers %q", got)
	}
}

func TestParseAttrMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing bracket", "#test]\nfn f() {}"},
		{"missing path", "#[]\nfn f() {}"},
		{"unterminated", "#[cfg(test\nfn f() {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSource(t, tt.src)
			if !bag.HasErrors() {
				t.Fatal("expected diagnostics")
			}
		})
	}
}

func TestParseAttrBadPathCode(t *testing.T) {
	_, bag := parseSource(t, "#[1]\nfn f() {}")
	if !hasCode(bag, diag.SynBadAttribute) {
		t.Fatal("expected SynBadAttribute diagnostic")
	}
}
