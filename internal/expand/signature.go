package expand

import (
	"sort"
	"strings"

	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
)

// FnArg is one resolved parameter of a test function: a plain binding
// name and its lifetime-resolved type.
type FnArg struct {
	Name string
	Type ast.TypeExpr
}

// SigItem carries what both generation sites need about a descriptor:
// the interned carrier name and the lifetime parameters that survived
// resolution. The set is unordered by nature; it is stored sorted so
// every enumeration site produces the same text.
type SigItem struct {
	Name      string
	Lifetimes []string
}

// PathSegment renders the carrier reference, with lifetime arguments
// when the descriptor has any.
func (s *SigItem) PathSegment() string {
	if len(s.Lifetimes) == 0 {
		return s.Name
	}
	return s.Name + "<" + strings.Join(s.Lifetimes, ", ") + ">"
}

// Generics renders the carrier declaration's generic parameter list.
func (s *SigItem) Generics() string {
	if len(s.Lifetimes) == 0 {
		return ""
	}
	return "<" + strings.Join(s.Lifetimes, ", ") + ">"
}

// InputSig is a parameter-list descriptor. Key is the canonical
// structural form; two parameter lists share a carrier iff their keys
// are equal.
type InputSig struct {
	Item SigItem
	Args []FnArg
	Key  string
}

// ReturnSig is a return-type descriptor.
type ReturnSig struct {
	Item SigItem
	Type ast.TypeExpr
	Key  string
}

// buildInputSig resolves a parameter list into a descriptor. Parameters
// must already have passed validateSignature.
func buildInputSig(params []ast.Param, rep diag.Reporter) (*InputSig, bool) {
	c := newLifetimeCollector(ModeInput, "", rep)
	args := make([]FnArg, 0, len(params))
	for _, p := range params {
		ty := p.Type.Clone()
		c.visitType(ty)
		args = append(args, FnArg{Name: p.Name, Type: ty})
	}
	lifetimes, ok := c.finish()
	if !ok {
		return nil, false
	}

	var key strings.Builder
	for i, a := range args {
		if i > 0 {
			key.WriteString("; ")
		}
		key.WriteString(a.Name)
		key.WriteString(": ")
		key.WriteString(ast.PrintType(a.Type))
	}
	return &InputSig{
		Item: SigItem{Lifetimes: sortedLifetimes(lifetimes)},
		Args: args,
		Key:  key.String(),
	}, true
}

// buildReturnSig resolves a return type into a descriptor. The mode
// depends on the input descriptor's resolved lifetime set: exactly one
// member substitutes it for elided and placeholder positions, anything
// else demands a fully explicit return type.
func buildReturnSig(ret ast.TypeExpr, inputLifetimes []string, rep diag.Reporter) (*ReturnSig, bool) {
	mode := ModeFail
	candidate := ""
	if len(inputLifetimes) == 1 {
		mode = ModeOutput
		candidate = inputLifetimes[0]
	}
	c := newLifetimeCollector(mode, candidate, rep)
	ty := ret.Clone()
	c.visitType(ty)
	lifetimes, ok := c.finish()
	if !ok {
		return nil, false
	}
	return &ReturnSig{
		Item: SigItem{Lifetimes: sortedLifetimes(lifetimes)},
		Type: ty,
		Key:  ast.PrintType(ty),
	}, true
}

func sortedLifetimes(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}

// validateSignature checks the rules that make a test function
// representable. Every violation is reported; the function is excluded
// from generation but its siblings are not.
func validateSignature(fn *ast.FnItem, rep diag.Reporter) bool {
	ok := true
	fail := func(code diag.Code, sp source.Span, msg string) {
		ok = false
		rep.Report(code, diag.SevError, sp, msg, nil)
	}

	if fn.Quals.Const {
		fail(diag.SigConstFn, fn.Quals.ConstSpan, "test function cannot be const")
	}
	if fn.Quals.Extern {
		fail(diag.SigExternAbi, fn.Quals.ExternSpan, "test function cannot declare a calling convention")
	}
	if fn.Variadic {
		fail(diag.SigVariadic, fn.VariadicSpan, "test function cannot be variadic")
	}

	for i := range fn.Params {
		p := &fn.Params[i]
		switch p.Pat {
		case ast.PatIdent:
		case ast.PatReceiver:
			fail(diag.SigReceiverParam, p.Span, "unexpected receiver argument in a test function")
		default:
			fail(diag.SigBadParamPattern, p.Span,
				"unsupported argument pattern in test function input")
		}
	}

	names := fn.Generics.ParamNames()
	if len(names) > 0 {
		for i := range fn.Params {
			if fn.Params[i].Type != nil && !checkGenericLeak(fn.Params[i].Type, names, rep) {
				ok = false
			}
		}
		if fn.Return != nil && !checkGenericLeak(fn.Return, names, rep) {
			ok = false
		}
	}
	return ok
}

// checkGenericLeak reports any use of the function's own type or const
// generic parameters inside a signature type. Those parameters are only
// concrete at the instantiation site and cannot flow through a shared
// carrier.
func checkGenericLeak(t ast.TypeExpr, params map[string]bool, rep diag.Reporter) bool {
	ok := true
	leak := func(sp source.Span) {
		ok = false
		rep.Report(diag.SigGenericLeak, diag.SevError, sp,
			"use of generic parameters in test function signatures is not supported", nil)
	}

	var walk func(t ast.TypeExpr)
	walkRaw := func(raw string, sp source.Span) {
		if rawMentionsIdent(raw, params) {
			leak(sp)
		}
	}
	walk = func(t ast.TypeExpr) {
		switch t := t.(type) {
		case *ast.PathType:
			if len(t.Segments) == 1 && t.Segments[0].Args == nil && t.Segments[0].Paren == nil &&
				!t.Leading && params[t.Segments[0].Name] {
				leak(t.TypeSpan)
				return
			}
			for _, seg := range t.Segments {
				if seg.Args != nil {
					for _, arg := range seg.Args.Args {
						switch arg.Kind {
						case ast.ArgType, ast.ArgBinding:
							walk(arg.Type)
						case ast.ArgConstExpr:
							walkRaw(arg.Raw, arg.Span)
						}
					}
				}
				if seg.Paren != nil {
					for _, in := range seg.Paren.Inputs {
						walk(in)
					}
					if seg.Paren.Output != nil {
						walk(seg.Paren.Output)
					}
				}
			}
		case *ast.RefType:
			walk(t.Elem)
		case *ast.SliceType:
			walk(t.Elem)
		case *ast.ArrayType:
			walk(t.Elem)
			walkRaw(t.LenRaw, t.TypeSpan)
		case *ast.TupleType:
			for _, e := range t.Elems {
				walk(e)
			}
		case *ast.ParenType:
			walk(t.Elem)
		case *ast.RawPtrType:
			walk(t.Elem)
		case *ast.BareFnType:
			for _, in := range t.Inputs {
				walk(in.Type)
			}
			if t.Output != nil {
				walk(t.Output)
			}
		case *ast.TraitObjectType:
			for _, b := range t.Bounds {
				if b.Trait != nil {
					walk(b.Trait)
				}
			}
		case *ast.ImplTraitType:
			for _, b := range t.Bounds {
				if b.Trait != nil {
					walk(b.Trait)
				}
			}
		}
	}
	walk(t)
	return ok
}

// rawMentionsIdent scans raw expression text for a whole-word occurrence
// of any of the given identifiers. Raw interiors are not parsed, so this
// is a token-shaped approximation that errs on reporting.
func rawMentionsIdent(raw string, idents map[string]bool) bool {
	start := -1
	flush := func(end int) bool {
		if start < 0 {
			return false
		}
		word := raw[start:end]
		start = -1
		return idents[word]
	}
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		isWord := ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
			ch >= '0' && ch <= '9' || ch >= 0x80
		if isWord {
			if start < 0 {
				start = i
			}
			continue
		}
		if flush(i) {
			return true
		}
	}
	return flush(len(raw))
}
