package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"gentests/internal/ast"
	"gentests/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every item span is non-empty and within file content bounds
// 2) inline module bodies contain every child item span
// 3) the file span covers the union of top-level item spans
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var union source.Span
	var haveItem bool
	for _, it := range f.Items {
		if err := checkItem(it, sf.ID, lenContent); err != nil {
			return err
		}
		sp := it.Span()
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveItem {
		if union.Start < f.FileSpan.Start || union.End > f.FileSpan.End {
			return fmt.Errorf("file span %v does not cover union of items %v", f.FileSpan, union)
		}
	}
	return nil
}

func checkItem(it ast.Item, fileID source.FileID, lenContent uint32) error {
	sp := it.Span()
	if sp.End <= sp.Start {
		return fmt.Errorf("empty item span: %v", sp)
	}
	if sp.File != fileID {
		return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, fileID)
	}
	if sp.End > lenContent {
		return fmt.Errorf("item span end beyond content: %d > %d", sp.End, lenContent)
	}

	mod, ok := it.(*ast.ModItem)
	if !ok || !mod.Inline {
		return nil
	}
	if mod.BodySpan.End <= mod.BodySpan.Start {
		return fmt.Errorf("empty body span on inline module %q", mod.Name)
	}
	for _, child := range mod.Items {
		if err := checkItem(child, fileID, lenContent); err != nil {
			return err
		}
		csp := child.Span()
		if csp.Start < mod.BodySpan.Start || csp.End > mod.BodySpan.End {
			return fmt.Errorf("item span %v escapes body span %v of module %q", csp, mod.BodySpan, mod.Name)
		}
	}
	return nil
}
