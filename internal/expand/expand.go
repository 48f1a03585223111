package expand

import (
	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

// Result carries the outcome of expanding one parsed file.
type Result struct {
	// Output is the rewritten file content. When no processing unit was
	// found it equals the input; when any unit failed it is nil.
	Output []byte

	Units       int // processing units discovered
	FailedUnits int
}

// countingReporter forwards to the wrapped reporter and counts errors,
// so unit failure can be decided after the full pass.
type countingReporter struct {
	next diag.Reporter
	errs int
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev >= diag.SevError {
		r.errs++
	}
	r.next.Report(code, sev, primary, msg, notes)
}

// marker is one validated instantiation site.
type marker struct {
	mod   *ast.ModItem
	depth int    // module levels below the unit root, direct child = 1
	args  string // raw text between the angle brackets
}

// ExpandFile rewrites every processing unit in the parsed file. A unit
// that accumulates any diagnostic is excluded from the output entirely;
// if at least one unit fails, no output is produced for the file.
func ExpandFile(file *source.File, parsed *ast.File, base MacroOpts, rep diag.Reporter) (*Result, bool) {
	w := &walker{file: file, base: base, rep: &countingReporter{next: rep}}
	w.walkItems(parsed.Items)

	res := &Result{Units: w.units, FailedUnits: w.failed}
	if w.failed > 0 {
		return res, false
	}
	if w.units == 0 {
		res.Output = file.Content
		return res, true
	}
	out, err := w.edits.apply(file.Content)
	if err != nil {
		// Overlapping edits would be an engine bug, not a user error.
		w.rep.Report(diag.UnknownCode, diag.SevError, parsed.FileSpan, err.Error(), nil)
		res.FailedUnits = res.Units
		return res, false
	}
	res.Output = out
	return res, true
}

type walker struct {
	file *source.File
	base MacroOpts
	rep  *countingReporter

	edits  editList // merged edits of the successful units
	units  int
	failed int
}

// unitAttr returns the attribute marking a module as a processing unit.
func unitAttr(m *ast.ModItem) *ast.Attr {
	for i := range m.Attrs {
		if m.Attrs[i].IsIdent("generic_tests") || m.Attrs[i].IsPath("generic_tests::define") {
			return &m.Attrs[i]
		}
	}
	return nil
}

// walkItems looks for unit roots; modules outside any unit are just
// containers to descend through.
func (w *walker) walkItems(items []ast.Item) {
	for _, item := range items {
		m, ok := item.(*ast.ModItem)
		if !ok {
			continue
		}
		if attr := unitAttr(m); attr != nil {
			w.expandUnit(m, attr)
			continue
		}
		if m.Inline {
			w.walkItems(m.Items)
		}
	}
}

func (w *walker) expandUnit(root *ast.ModItem, attr *ast.Attr) {
	w.units++
	errsBefore := w.rep.errs

	if !root.Inline {
		w.rep.Report(diag.GenRootNotInline, diag.SevError, root.NameSpan,
			"module to expand must be inline", nil)
		w.failed++
		return
	}

	u := &unit{
		walker: w,
		root:   root,
	}
	u.edits.deleteAttr(w.file.Content, attr.Span)

	opts, _ := ParseMacroOpts(attr, w.base, w.rep)

	x := &extractor{
		file:  w.file,
		opts:  opts,
		rep:   w.rep,
		edits: &u.edits,
	}
	u.tests = x.extract(root.Items)

	u.walkMods(root.Items, 1)

	if w.rep.errs > errsBefore {
		w.failed++
		return
	}

	for _, mk := range u.markers {
		u.edits.replace(interiorSpan(mk.mod), u.markerInterior(mk))
	}
	u.edits.insert(w.file.ID, root.BodySpan.End-1, u.carrierMod())
	w.edits.edits = append(w.edits.edits, u.edits.edits...)
}

// unit is the per-processing-unit expansion state.
type unit struct {
	*walker
	root    *ast.ModItem
	tests   *Tests
	edits   editList
	markers []marker
}

// walkMods performs the depth-first marker search inside the unit.
func (u *unit) walkMods(items []ast.Item, depth int) {
	for _, item := range items {
		m, ok := item.(*ast.ModItem)
		if !ok {
			continue
		}
		if u.checkInnerMarkerAttr(m) {
			continue
		}
		attr := m.AttrByIdent("instantiate_tests")
		if attr == nil {
			if m.Inline {
				u.walkMods(m.Items, depth+1)
			}
			continue
		}
		args, ok := markerArgs(u.file, attr, u.rep)
		if !ok {
			continue
		}
		u.edits.deleteAttr(u.file.Content, attr.Span)
		if !m.Inline {
			u.rep.Report(diag.GenMarkerNotInline, diag.SevError, m.NameSpan,
				"module to instantiate tests into must be inline", nil)
			continue
		}
		if len(m.Items) > 0 {
			u.rep.Report(diag.GenMarkerNotEmpty, diag.SevError, m.NameSpan,
				"module to instantiate tests into must be empty", nil)
			continue
		}
		u.markers = append(u.markers, marker{mod: m, depth: depth, args: args})
	}
}

// checkInnerMarkerAttr rejects `#![instantiate_tests(...)]` written
// inside a module body.
func (u *unit) checkInnerMarkerAttr(m *ast.ModItem) bool {
	for i := range m.InnerAttrs {
		if m.InnerAttrs[i].IsIdent("instantiate_tests") {
			u.rep.Report(diag.GenMarkerInnerAttr, diag.SevError, m.InnerAttrs[i].Span,
				"cannot be an inner attribute", nil)
			return true
		}
	}
	return false
}

// markerArgs validates that the attribute arguments form an angle
// bracketed list and returns the raw text between the brackets.
func markerArgs(file *source.File, attr *ast.Attr, rep diag.Reporter) (string, bool) {
	bad := func() (string, bool) {
		rep.Report(diag.GenBadMarkerArgs, diag.SevError, attr.Span,
			"expected generic arguments in angle brackets", nil)
		return "", false
	}
	if attr.Style != ast.AttrList || len(attr.Args) < 2 {
		return bad()
	}
	first, last := attr.Args[0], attr.Args[len(attr.Args)-1]
	if first.Kind != token.Lt || last.Kind != token.Gt {
		return bad()
	}
	return string(file.Content[first.Span.End:last.Span.Start]), true
}

// interiorSpan is the byte range strictly between a module's braces.
func interiorSpan(m *ast.ModItem) source.Span {
	return source.Span{File: m.BodySpan.File, Start: m.BodySpan.Start + 1, End: m.BodySpan.End - 1}
}
