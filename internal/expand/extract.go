package expand

import (
	"fmt"

	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
)

// TestFn is one extracted generic test case, carrying everything the
// instantiator needs to emit a forwarding function.
type TestFn struct {
	Doc       []string
	TestAttrs []string // marker attr texts, then copied attr texts, original relative order
	Async     bool
	Unsafe    bool
	Name      string

	LifetimeParams []ast.LifetimeDef
	ParamsRaw      string
	ReturnRaw      string

	Input *InputSig  // nil when the function takes no parameters
	Ret   *ReturnSig // nil for the default unit return
}

// Tests is the per-unit extraction result.
type Tests struct {
	TestFns []*TestFn
	Catalog *Catalog
}

// extractor runs attribute classification and signature extraction over
// one processing unit's items.
type extractor struct {
	file  *source.File
	opts  MacroOpts
	rep   diag.Reporter
	edits *editList

	arity      int
	arityKinds []ast.GenericParamKind
	arityFn    string
	aritySeen  bool
}

func (x *extractor) errorf(code diag.Code, sp source.Span, msg string) {
	x.rep.Report(code, diag.SevError, sp, msg, nil)
}

func (x *extractor) text(sp source.Span) string {
	return string(x.file.Content[sp.Start:sp.End])
}

// extract walks the unit's direct items collecting test functions.
// Marker and override attributes are removed from the surviving
// definitions as a side effect of classification.
func (x *extractor) extract(items []ast.Item) *Tests {
	tests := &Tests{Catalog: NewCatalog()}
	for _, item := range items {
		fn, ok := item.(*ast.FnItem)
		if !ok {
			continue
		}
		test, isTest := x.extractTestFn(fn)
		if !isTest {
			continue
		}
		if !x.checkArity(fn) {
			continue
		}
		if !x.buildSigs(fn, test, tests.Catalog) {
			continue
		}
		tests.TestFns = append(tests.TestFns, test)
	}
	return tests
}

// extractTestFn classifies one function's attributes. It returns nil
// when the function carries no marker attribute and is left alone.
func (x *extractor) extractTestFn(fn *ast.FnItem) (*TestFn, bool) {
	var fnOpts TestFnOpts
	overrideOK := true

	// Override attrs are stripped first, regardless of whether the
	// function turns out to be a test case.
	kept := fn.Attrs[:0]
	for i := range fn.Attrs {
		attr := fn.Attrs[i]
		if attr.IsIdent("generic_test") {
			x.edits.deleteAttr(x.file.Content, attr.Span)
			if !ParseTestFnOpts(&attr, &fnOpts, x.rep) {
				overrideOK = false
			}
			continue
		}
		kept = append(kept, attr)
	}
	fn.Attrs = kept

	var markers, copied []string
	kept = fn.Attrs[:0]
	for i := range fn.Attrs {
		attr := fn.Attrs[i]
		if x.opts.IsTestAttr(&attr, &fnOpts) {
			markers = append(markers, x.text(attr.Span))
			x.edits.deleteAttr(x.file.Content, attr.Span)
			continue
		}
		kept = append(kept, attr)
	}
	fn.Attrs = kept

	if len(markers) == 0 {
		return nil, false
	}
	for i := range fn.Attrs {
		attr := fn.Attrs[i]
		if x.opts.IsCopiedAttr(&attr, &fnOpts) {
			copied = append(copied, x.text(attr.Span))
		}
	}
	if !overrideOK {
		return nil, false
	}

	return &TestFn{
		Doc:            fn.Doc,
		TestAttrs:      append(markers, copied...),
		Async:          fn.Quals.Async,
		Unsafe:         fn.Quals.Unsafe,
		Name:           fn.Name,
		LifetimeParams: fn.Generics.Lifetimes,
		ParamsRaw:      fn.ParamsRaw,
		ReturnRaw:      fn.ReturnRaw,
	}, true
}

// checkArity enforces that all test functions in one unit agree on the
// number and kinds of their type/const generic parameters, since every
// instantiation marker supplies one shared argument list.
func (x *extractor) checkArity(fn *ast.FnItem) bool {
	arity := fn.Generics.Arity()
	kinds := make([]ast.GenericParamKind, arity)
	for i, p := range fn.Generics.Params {
		kinds[i] = p.Kind
	}

	if !x.aritySeen {
		x.aritySeen = true
		x.arity = arity
		x.arityKinds = kinds
		x.arityFn = fn.Name
		return true
	}
	if arity != x.arity {
		x.errorf(diag.SigArityMismatch, genericsSpan(fn),
			fmt.Sprintf("test function `%s` has %d generic parameters while others in the same module have %d",
				fn.Name, arity, x.arity))
		return false
	}
	for i := range kinds {
		if kinds[i] != x.arityKinds[i] {
			x.errorf(diag.SigKindMismatch, fn.Generics.Params[i].Span,
				fmt.Sprintf("test function `%s` declares a %s parameter at position %d while `%s` declares a %s parameter",
					fn.Name, kinds[i], i+1, x.arityFn, x.arityKinds[i]))
			return false
		}
	}
	return true
}

func genericsSpan(fn *ast.FnItem) source.Span {
	if !fn.GenericsSpan.Empty() {
		return fn.GenericsSpan
	}
	return fn.NameSpan
}

// buildSigs validates the signature and interns its descriptors.
func (x *extractor) buildSigs(fn *ast.FnItem, test *TestFn, catalog *Catalog) bool {
	if !validateSignature(fn, x.rep) {
		return false
	}

	var inputLifetimes []string
	if len(fn.Params) > 0 {
		sig, ok := buildInputSig(fn.Params, x.rep)
		if !ok {
			return false
		}
		test.Input = catalog.InternInput(sig)
		inputLifetimes = test.Input.Item.Lifetimes
	}
	if fn.Return != nil {
		sig, ok := buildReturnSig(fn.Return, inputLifetimes, x.rep)
		if !ok {
			return false
		}
		test.Ret = catalog.InternReturn(sig)
	}
	return true
}
