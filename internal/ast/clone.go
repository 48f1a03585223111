package ast

// Deep clones for type trees. Lifetime resolution rewrites names in
// place on a per-function copy, so shared parse results must never be
// mutated directly.

func cloneType(t TypeExpr) TypeExpr {
	if t == nil {
		return nil
	}
	return t.Clone()
}

func cloneLifetimeDefs(defs []LifetimeDef) []LifetimeDef {
	if defs == nil {
		return nil
	}
	out := make([]LifetimeDef, len(defs))
	copy(out, defs)
	return out
}

func cloneBounds(bounds []TypeBound) []TypeBound {
	out := make([]TypeBound, len(bounds))
	for i, b := range bounds {
		nb := TypeBound{
			Binder: cloneLifetimeDefs(b.Binder),
			Maybe:  b.Maybe,
			Span:   b.Span,
		}
		if b.Trait != nil {
			nb.Trait = b.Trait.Clone().(*PathType)
		}
		if b.Lifetime != nil {
			nb.Lifetime = b.Lifetime.Clone()
		}
		out[i] = nb
	}
	return out
}

// Clone returns a deep copy of the path and its generic arguments.
func (t *PathType) Clone() TypeExpr {
	segs := make([]PathSegment, len(t.Segments))
	for i, s := range t.Segments {
		ns := PathSegment{Name: s.Name}
		if s.Args != nil {
			args := make([]GenericArg, len(s.Args.Args))
			for j, a := range s.Args.Args {
				na := GenericArg{Kind: a.Kind, Name: a.Name, Raw: a.Raw, Span: a.Span}
				if a.Lifetime != nil {
					na.Lifetime = a.Lifetime.Clone()
				}
				na.Type = cloneType(a.Type)
				args[j] = na
			}
			ns.Args = &GenericArgs{Args: args, Span: s.Args.Span}
		}
		if s.Paren != nil {
			inputs := make([]TypeExpr, len(s.Paren.Inputs))
			for j, in := range s.Paren.Inputs {
				inputs[j] = cloneType(in)
			}
			ns.Paren = &ParenArgs{
				Inputs: inputs,
				Output: cloneType(s.Paren.Output),
				Span:   s.Paren.Span,
			}
		}
		segs[i] = ns
	}
	return &PathType{Leading: t.Leading, Segments: segs, TypeSpan: t.TypeSpan}
}

func (t *RefType) Clone() TypeExpr {
	nt := &RefType{Mut: t.Mut, Elem: cloneType(t.Elem), TypeSpan: t.TypeSpan}
	if t.Lifetime != nil {
		nt.Lifetime = t.Lifetime.Clone()
	}
	return nt
}

func (t *SliceType) Clone() TypeExpr {
	return &SliceType{Elem: cloneType(t.Elem), TypeSpan: t.TypeSpan}
}

func (t *ArrayType) Clone() TypeExpr {
	return &ArrayType{Elem: cloneType(t.Elem), LenRaw: t.LenRaw, TypeSpan: t.TypeSpan}
}

func (t *TupleType) Clone() TypeExpr {
	elems := make([]TypeExpr, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = cloneType(e)
	}
	return &TupleType{Elems: elems, TypeSpan: t.TypeSpan}
}

func (t *ParenType) Clone() TypeExpr {
	return &ParenType{Elem: cloneType(t.Elem), TypeSpan: t.TypeSpan}
}

func (t *RawPtrType) Clone() TypeExpr {
	return &RawPtrType{Mut: t.Mut, Elem: cloneType(t.Elem), TypeSpan: t.TypeSpan}
}

func (t *BareFnType) Clone() TypeExpr {
	inputs := make([]BareFnParam, len(t.Inputs))
	for i, p := range t.Inputs {
		inputs[i] = BareFnParam{Name: p.Name, Type: cloneType(p.Type)}
	}
	return &BareFnType{
		Binder:   cloneLifetimeDefs(t.Binder),
		Unsafe:   t.Unsafe,
		Abi:      t.Abi,
		Inputs:   inputs,
		Variadic: t.Variadic,
		Output:   cloneType(t.Output),
		TypeSpan: t.TypeSpan,
	}
}

func (t *TraitObjectType) Clone() TypeExpr {
	return &TraitObjectType{Bounds: cloneBounds(t.Bounds), TypeSpan: t.TypeSpan}
}

func (t *ImplTraitType) Clone() TypeExpr {
	return &ImplTraitType{Bounds: cloneBounds(t.Bounds), TypeSpan: t.TypeSpan}
}

func (t *InferType) Clone() TypeExpr { return &InferType{TypeSpan: t.TypeSpan} }
func (t *NeverType) Clone() TypeExpr { return &NeverType{TypeSpan: t.TypeSpan} }
