package expand

import (
	"strings"

	"gentests/internal/ast"
)

const carrierModName = "_gentests_call_sigs"

// indentUnit is appended once per brace level of generated code.
const indentUnit = "    "

// lineIndent returns the whitespace prefix of the line containing off.
func lineIndent(content []byte, off uint32) string {
	start := off
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := start
	for end < off && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[start:end])
}

// superPath builds `super::...::super` with n segments.
func superPath(n int) string {
	segs := make([]string, n)
	for i := range segs {
		segs[i] = "super"
	}
	return strings.Join(segs, "::")
}

// emitter assembles generated text line by line at a base indentation.
type emitter struct {
	b      strings.Builder
	indent string
}

func (e *emitter) line(depth int, parts ...string) {
	e.b.WriteString(e.indent)
	for i := 0; i < depth; i++ {
		e.b.WriteString(indentUnit)
	}
	for _, p := range parts {
		e.b.WriteString(p)
	}
	e.b.WriteByte('\n')
}

func (e *emitter) blank() {
	e.b.WriteByte('\n')
}

// markerInterior generates the replacement text for the braces of one
// instantiation marker. The text starts after the opening brace and
// ends right before the closing one, which keeps the brace's own
// indentation intact.
func (u *unit) markerInterior(mk marker) string {
	indent := lineIndent(u.file.Content, mk.mod.BodySpan.Start)
	e := &emitter{indent: indent}
	e.b.WriteByte('\n')

	for i := range mk.mod.InnerAttrs {
		sp := mk.mod.InnerAttrs[i].Span
		e.line(1, string(u.file.Content[sp.Start:sp.End]))
	}

	e.line(1, "#[allow(unused_imports)]")
	e.line(1, "use ", superPath(mk.depth), "::*;")

	for _, test := range u.tests.TestFns {
		e.blank()
		u.emitForwardingFn(e, test, mk)
	}

	e.b.WriteString(indent)
	return e.b.String()
}

// emitForwardingFn writes one generated test function: the original
// surface signature wrapping a shim module that pins the concrete
// instantiation.
func (u *unit) emitForwardingFn(e *emitter, test *TestFn, mk marker) {
	for _, doc := range test.Doc {
		e.line(1, doc)
	}
	for _, attr := range test.TestAttrs {
		e.line(1, attr)
	}

	var sig strings.Builder
	if test.Async {
		sig.WriteString("async ")
	}
	if test.Unsafe {
		sig.WriteString("unsafe ")
	}
	sig.WriteString("fn ")
	sig.WriteString(test.Name)
	if len(test.LifetimeParams) > 0 {
		sig.WriteByte('<')
		for i, lt := range test.LifetimeParams {
			if i > 0 {
				sig.WriteString(", ")
			}
			sig.WriteString(lt.Raw)
		}
		sig.WriteByte('>')
	}
	sig.WriteByte('(')
	sig.WriteString(test.ParamsRaw)
	sig.WriteByte(')')
	if test.ReturnRaw != "" {
		sig.WriteByte(' ')
		sig.WriteString(test.ReturnRaw)
	}
	e.line(1, sig.String(), " {")

	u.emitShimMod(e, test, mk)

	e.line(2, "let args = ", u.argsInit(test), ";")
	e.line(2, "let mut ret = ::core::mem::MaybeUninit::uninit();")
	e.line(2, "unsafe {")
	if test.Async {
		e.line(3, "shim::shim(args, ret.as_mut_ptr()).await;")
	} else {
		e.line(3, "shim::shim(args, ret.as_mut_ptr());")
	}
	e.line(3, "ret.assume_init()")
	e.line(2, "}")
	e.line(1, "}")
}

// emitShimMod writes the nested module holding the monomorphic call.
// The shim lives one module level below the marker, so every path back
// to the unit root takes one extra `super`.
func (u *unit) emitShimMod(e *emitter, test *TestFn, mk marker) {
	rootPath := superPath(mk.depth + 1)

	argsType := "()"
	var callArgs []string
	var lifetimes []string
	if test.Input != nil {
		argsType = rootPath + "::" + carrierModName + "::" + test.Input.Item.PathSegment()
		for _, arg := range test.Input.Args {
			callArgs = append(callArgs, "_args."+arg.Name)
		}
		lifetimes = test.Input.Item.Lifetimes
	}
	retType := "()"
	if test.Ret != nil {
		retType = rootPath + "::" + carrierModName + "::" + test.Ret.Item.PathSegment()
		lifetimes = mergeLifetimes(lifetimes, test.Ret.Item.Lifetimes)
	}

	var ltParams string
	if len(lifetimes) > 0 {
		ltParams = "<" + strings.Join(lifetimes, ", ") + ">"
	}

	qual := "unsafe"
	if test.Async {
		qual = "async unsafe"
	}
	call := rootPath + "::" + test.Name + "::<" + mk.args + ">(" + strings.Join(callArgs, ", ") + ")"
	if test.Async {
		call += ".await"
	}

	e.line(2, "mod shim {")
	e.line(3, "#[allow(unused_imports)]")
	e.line(3, "use super::super::*;")
	e.line(3, "pub(super) ", qual, " fn shim", ltParams, "(_args: ", argsType, ", ret: *mut ", retType, ") {")
	e.line(4, "*ret = ", call, ";")
	e.line(3, "}")
	e.line(2, "}")
}

// argsInit builds the carrier construction expression. The carrier
// module is in scope through the marker's glob import.
func (u *unit) argsInit(test *TestFn) string {
	if test.Input == nil {
		return "()"
	}
	names := make([]string, len(test.Input.Args))
	for i, arg := range test.Input.Args {
		names[i] = arg.Name
	}
	return carrierModName + "::" + test.Input.Item.Name + " { " + strings.Join(names, ", ") + " }"
}

// mergeLifetimes unions two sorted lists, keeping the result sorted.
func mergeLifetimes(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// carrierMod generates the shared signature-carrier module, appended as
// the unit root's last item.
func (u *unit) carrierMod() string {
	indent := lineIndent(u.file.Content, u.root.BodySpan.Start)
	e := &emitter{indent: indent}
	e.b.WriteByte('\n')

	e.line(1, "mod ", carrierModName, " {")
	e.line(2, "#![allow(non_camel_case_types)]")
	e.blank()
	e.line(2, "#[allow(unused_imports)]")
	e.line(2, "use super::*;")

	for _, sig := range u.tests.Catalog.Inputs() {
		e.blank()
		e.line(2, "pub(super) struct ", sig.Item.Name, sig.Item.Generics(), " {")
		for _, arg := range sig.Args {
			e.line(3, "pub ", arg.Name, ": ", ast.PrintType(arg.Type), ",")
		}
		e.line(2, "}")
	}
	for _, sig := range u.tests.Catalog.Returns() {
		e.blank()
		e.line(2, "pub(super) type ", sig.Item.Name, sig.Item.Generics(), " = ", ast.PrintType(sig.Type), ";")
	}

	e.line(1, "}")
	e.b.WriteString(indent)
	return e.b.String()
}
