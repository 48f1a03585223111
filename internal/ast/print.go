package ast

import (
	"strings"
)

// PrintType renders a type tree to canonical source text. The rendering
// is deterministic for a given tree, so it doubles as the structural
// equality key when signatures are interned: two types render the same
// string iff they describe the same shape.
func PrintType(t TypeExpr) string {
	var sb strings.Builder
	writeType(&sb, t)
	return sb.String()
}

func writeType(sb *strings.Builder, t TypeExpr) {
	switch t := t.(type) {
	case *PathType:
		writePath(sb, t)
	case *RefType:
		sb.WriteByte('&')
		if t.Lifetime != nil {
			sb.WriteString(t.Lifetime.Name)
			sb.WriteByte(' ')
		}
		if t.Mut {
			sb.WriteString("mut ")
		}
		writeType(sb, t.Elem)
	case *SliceType:
		sb.WriteByte('[')
		writeType(sb, t.Elem)
		sb.WriteByte(']')
	case *ArrayType:
		sb.WriteByte('[')
		writeType(sb, t.Elem)
		sb.WriteString("; ")
		sb.WriteString(t.LenRaw)
		sb.WriteByte(']')
	case *TupleType:
		sb.WriteByte('(')
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, e)
		}
		if len(t.Elems) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case *ParenType:
		sb.WriteByte('(')
		writeType(sb, t.Elem)
		sb.WriteByte(')')
	case *RawPtrType:
		if t.Mut {
			sb.WriteString("*mut ")
		} else {
			sb.WriteString("*const ")
		}
		writeType(sb, t.Elem)
	case *BareFnType:
		writeBinder(sb, t.Binder)
		if t.Unsafe {
			sb.WriteString("unsafe ")
		}
		if t.Abi != "" {
			sb.WriteString("extern ")
			sb.WriteString(t.Abi)
			sb.WriteByte(' ')
		}
		sb.WriteString("fn(")
		for i, p := range t.Inputs {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Name != "" {
				sb.WriteString(p.Name)
				sb.WriteString(": ")
			}
			writeType(sb, p.Type)
		}
		if t.Variadic {
			if len(t.Inputs) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("...")
		}
		sb.WriteByte(')')
		if t.Output != nil {
			sb.WriteString(" -> ")
			writeType(sb, t.Output)
		}
	case *TraitObjectType:
		sb.WriteString("dyn ")
		writeBounds(sb, t.Bounds)
	case *ImplTraitType:
		sb.WriteString("impl ")
		writeBounds(sb, t.Bounds)
	case *InferType:
		sb.WriteByte('_')
	case *NeverType:
		sb.WriteByte('!')
	}
}

func writePath(sb *strings.Builder, t *PathType) {
	if t.Leading {
		sb.WriteString("::")
	}
	for i, seg := range t.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Name)
		if seg.Args != nil {
			writeGenericArgs(sb, seg.Args)
		}
		if seg.Paren != nil {
			sb.WriteByte('(')
			for j, in := range seg.Paren.Inputs {
				if j > 0 {
					sb.WriteString(", ")
				}
				writeType(sb, in)
			}
			sb.WriteByte(')')
			if seg.Paren.Output != nil {
				sb.WriteString(" -> ")
				writeType(sb, seg.Paren.Output)
			}
		}
	}
}

func writeGenericArgs(sb *strings.Builder, args *GenericArgs) {
	sb.WriteByte('<')
	for i, a := range args.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch a.Kind {
		case ArgLifetime:
			sb.WriteString(a.Lifetime.Name)
		case ArgType:
			writeType(sb, a.Type)
		case ArgBinding:
			sb.WriteString(a.Name)
			sb.WriteString(" = ")
			writeType(sb, a.Type)
		case ArgConstExpr:
			sb.WriteString(a.Raw)
		}
	}
	sb.WriteByte('>')
}

func writeBinder(sb *strings.Builder, binder []LifetimeDef) {
	if len(binder) == 0 {
		return
	}
	sb.WriteString("for<")
	for i, def := range binder {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(def.Name)
	}
	sb.WriteString("> ")
}

func writeBounds(sb *strings.Builder, bounds []TypeBound) {
	for i, b := range bounds {
		if i > 0 {
			sb.WriteString(" + ")
		}
		if b.Maybe {
			sb.WriteByte('?')
		}
		if b.Lifetime != nil {
			sb.WriteString(b.Lifetime.Name)
			continue
		}
		writeBinder(sb, b.Binder)
		writePath(sb, b.Trait)
	}
}
