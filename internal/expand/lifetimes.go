package expand

import (
	"fmt"

	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/source"
)

// SubstMode selects how the lifetime collector treats elided and
// placeholder lifetimes.
type SubstMode uint8

const (
	// ModeDisabled leaves lifetime positions untouched and collects
	// nothing. Entered for the interior of nested binder contexts.
	ModeDisabled SubstMode = iota
	// ModeInput mints a fresh synthetic name for every elided reference
	// lifetime.
	ModeInput
	// ModeOutput substitutes elided and placeholder lifetimes with the
	// single candidate input lifetime.
	ModeOutput
	// ModeFail rejects any elided or placeholder lifetime: the return
	// type could not be tied to one input lifetime.
	ModeFail
)

// syntheticLifetime returns the reserved name for the n-th minted
// lifetime. The numbering restarts per descriptor, which keeps output
// stable across runs.
func syntheticLifetime(n int) string {
	return fmt.Sprintf("'_gentests_%d", n)
}

// lifetimeCollector walks a type tree collecting the lifetimes it uses,
// minting names for elided ones and substituting the `'_` placeholder
// when a unique referent exists. The walk mutates the tree, so callers
// hand it a clone.
type lifetimeCollector struct {
	mode      SubstMode
	candidate string // ModeOutput referent

	// Collected lifetimes in first-encounter order. The minted name
	// counter is the current set size, as in add-only insertion the
	// reserved prefix guarantees uniqueness.
	order []string
	seen  map[string]bool

	// Lifetimes bound by enclosing for<...> binders, with a count per
	// name so identical names in nested binders unwind correctly.
	bound map[string]int

	placeholderAt *source.Span
	rep           diag.Reporter
	errs          int
}

func newLifetimeCollector(mode SubstMode, candidate string, rep diag.Reporter) *lifetimeCollector {
	return &lifetimeCollector{
		mode:      mode,
		candidate: candidate,
		seen:      make(map[string]bool),
		bound:     make(map[string]int),
		rep:       rep,
	}
}

func (c *lifetimeCollector) errorf(code diag.Code, sp source.Span, msg string) {
	c.errs++
	if c.rep != nil {
		c.rep.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (c *lifetimeCollector) collect(name string) {
	if c.seen[name] {
		return
	}
	c.seen[name] = true
	c.order = append(c.order, name)
}

func (c *lifetimeCollector) mintElided() string {
	name := syntheticLifetime(len(c.order))
	c.collect(name)
	return name
}

// visitLifetime handles an explicitly written lifetime.
func (c *lifetimeCollector) visitLifetime(lt *ast.LifetimeRef) {
	if lt.IsStatic() {
		return
	}
	if lt.IsPlaceholder() {
		c.substPlaceholder(lt)
		return
	}
	if c.mode == ModeDisabled {
		return
	}
	if c.bound[lt.Name] == 0 {
		c.collect(lt.Name)
	}
}

// substPlaceholder resolves `'_` to the first collected lifetime, or to
// the output candidate when nothing was collected yet. Ambiguity with
// more than one collected lifetime is reported after the walk, once the
// full set is known.
func (c *lifetimeCollector) substPlaceholder(lt *ast.LifetimeRef) {
	if c.mode == ModeDisabled {
		return
	}
	if len(c.bound) > 0 {
		c.errorf(diag.LtPlaceholderInBinder, lt.NameSpan,
			"can't determine the lifetime this placeholder refers to in presence of bound lifetime parameters")
		return
	}
	var name string
	switch {
	case len(c.order) > 0:
		name = c.order[0]
	case c.mode == ModeOutput:
		name = c.candidate
		c.collect(name)
	case c.mode == ModeInput:
		c.errorf(diag.LtPlaceholderAmbiguous, lt.NameSpan,
			"can't determine the lifetime this placeholder refers to")
		return
	default:
		c.errorf(diag.LtPlaceholderAmbiguous, lt.NameSpan,
			"lifetime needs to be disambiguated")
		return
	}
	lt.Name = name
	sp := lt.NameSpan
	c.placeholderAt = &sp
}

// visitType resolves every lifetime position in t.
func (c *lifetimeCollector) visitType(t ast.TypeExpr) {
	switch t := t.(type) {
	case *ast.RefType:
		c.visitRef(t)
	case *ast.PathType:
		c.visitPath(t)
	case *ast.SliceType:
		c.visitType(t.Elem)
	case *ast.ArrayType:
		c.visitType(t.Elem)
	case *ast.TupleType:
		for _, e := range t.Elems {
			c.visitType(e)
		}
	case *ast.ParenType:
		c.visitType(t.Elem)
	case *ast.RawPtrType:
		c.visitType(t.Elem)
	case *ast.BareFnType:
		c.visitBareFn(t)
	case *ast.TraitObjectType:
		for i := range t.Bounds {
			c.visitBound(&t.Bounds[i])
		}
	case *ast.ImplTraitType:
		for i := range t.Bounds {
			c.visitBound(&t.Bounds[i])
		}
	}
}

func (c *lifetimeCollector) visitRef(t *ast.RefType) {
	if t.Lifetime != nil {
		c.visitLifetime(t.Lifetime)
	} else {
		switch c.mode {
		case ModeDisabled:
		case ModeInput:
			t.Lifetime = &ast.LifetimeRef{Name: c.mintElided()}
		case ModeOutput:
			t.Lifetime = &ast.LifetimeRef{Name: c.candidate}
			c.collect(c.candidate)
		case ModeFail:
			c.errorf(diag.LtElidedAmbiguous, t.TypeSpan,
				"elided reference lifetime needs to be disambiguated")
			return
		}
	}
	c.visitType(t.Elem)
}

func (c *lifetimeCollector) visitPath(t *ast.PathType) {
	for i := range t.Segments {
		seg := &t.Segments[i]
		if seg.Args != nil {
			for j := range seg.Args.Args {
				arg := &seg.Args.Args[j]
				switch arg.Kind {
				case ast.ArgLifetime:
					c.visitLifetime(arg.Lifetime)
				case ast.ArgType, ast.ArgBinding:
					c.visitType(arg.Type)
				}
			}
		}
		if seg.Paren != nil {
			// A closure trait signature forms its own lifetime
			// inference context.
			restore := c.suspend()
			for _, in := range seg.Paren.Inputs {
				c.visitType(in)
			}
			if seg.Paren.Output != nil {
				c.visitType(seg.Paren.Output)
			}
			restore()
		}
	}
}

func (c *lifetimeCollector) visitBareFn(t *ast.BareFnType) {
	// A function pointer type forms its own lifetime inference context;
	// its binder additionally shadows same-named outer lifetimes.
	restore := c.suspend()
	unbind := c.bind(t.Binder)
	for i := range t.Inputs {
		c.visitType(t.Inputs[i].Type)
	}
	if t.Output != nil {
		c.visitType(t.Output)
	}
	unbind()
	restore()
}

func (c *lifetimeCollector) visitBound(b *ast.TypeBound) {
	if b.Lifetime != nil {
		c.visitLifetime(b.Lifetime)
		return
	}
	unbind := c.bind(b.Binder)
	if b.Trait != nil {
		c.visitPath(b.Trait)
	}
	unbind()
}

// suspend switches to ModeDisabled and returns the restorer. Callers
// must invoke the restorer on every exit path so stacked suspensions
// unwind in order.
func (c *lifetimeCollector) suspend() func() {
	prev := c.mode
	prevCandidate := c.candidate
	c.mode = ModeDisabled
	return func() {
		c.mode = prev
		c.candidate = prevCandidate
	}
}

// bind registers a for<...> binder's lifetimes and returns the restorer.
func (c *lifetimeCollector) bind(defs []ast.LifetimeDef) func() {
	if len(defs) == 0 {
		return func() {}
	}
	for _, def := range defs {
		c.bound[def.Name]++
	}
	return func() {
		for _, def := range defs {
			if c.bound[def.Name] <= 1 {
				delete(c.bound, def.Name)
			} else {
				c.bound[def.Name]--
			}
		}
	}
}

// finish runs the post-walk ambiguity check and reports whether the walk
// succeeded. The collected set stays in first-encounter order.
func (c *lifetimeCollector) finish() ([]string, bool) {
	if c.placeholderAt != nil && len(c.order) > 1 {
		c.errorf(diag.LtPlaceholderAmbiguous, *c.placeholderAt,
			"lifetime needs to be disambiguated")
	}
	return c.order, c.errs == 0
}
