package parser

import (
	"testing"

	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
)

// parseSource parses src as a virtual file and returns the tree together
// with collected diagnostics.
func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	bag := diag.NewBag(64)
	res := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	if res.File == nil {
		t.Fatal("ParseFile returned nil file")
	}
	return res.File, bag
}

// mustParse parses src and fails the test on any diagnostic.
func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, bag := parseSource(t, src)
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Logf("unexpected diagnostic: %s", d.Message)
		}
		t.Fatalf("parse of %q produced %d diagnostics", src, bag.Len())
	}
	return file
}

// singleFn parses src expecting exactly one top-level function.
func singleFn(t *testing.T, src string) *ast.FnItem {
	t.Helper()
	file := mustParse(t, src)
	if len(file.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(file.Items))
	}
	fn, ok := file.Items[0].(*ast.FnItem)
	if !ok {
		t.Fatalf("item is %T, want *ast.FnItem", file.Items[0])
	}
	return fn
}

// singleMod parses src expecting exactly one top-level module.
func singleMod(t *testing.T, src string) *ast.ModItem {
	t.Helper()
	file := mustParse(t, src)
	if len(file.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(file.Items))
	}
	m, ok := file.Items[0].(*ast.ModItem)
	if !ok {
		t.Fatalf("item is %T, want *ast.ModItem", file.Items[0])
	}
	return m
}

// hasCode reports whether the bag contains a diagnostic with the code.
func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
