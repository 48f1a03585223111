// Package edit applies byte-range replacements to a source buffer.
//
// Expansion never reprints a whole file. It records a small set of
// edits against the original bytes (attribute deletions, marker module
// bodies, the appended support module) and splices them in here, so
// every untouched byte of the input survives verbatim.
package edit

import (
	"fmt"
	"sort"

	"gentests/internal/source"
)

// Edit replaces the half-open byte range [Span.Start, Span.End) with
// NewText. A zero-length span is an insertion at Start.
type Edit struct {
	Span    source.Span
	NewText string
}

// Insert builds a zero-length edit at off.
func Insert(file source.FileID, off uint32, text string) Edit {
	return Edit{
		Span:    source.Span{File: file, Start: off, End: off},
		NewText: text,
	}
}

// Replace builds an edit covering span.
func Replace(span source.Span, text string) Edit {
	return Edit{Span: span, NewText: text}
}

// Delete builds an edit that removes span.
func Delete(span source.Span) Edit {
	return Edit{Span: span}
}

// Apply splices edits into content and returns the result. Edits may
// arrive in any order; they are applied back to front so earlier
// offsets stay valid. Overlapping edits are a programming error and
// are rejected. Insertions at the same offset keep their given order.
func Apply(content []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		out := make([]byte, len(content))
		copy(out, content)
		return out, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})

	size := uint32(len(content))
	for i, e := range sorted {
		if e.Span.End < e.Span.Start || e.Span.End > size {
			return nil, fmt.Errorf("edit: span [%d,%d) out of range for %d bytes", e.Span.Start, e.Span.End, size)
		}
		if i > 0 && overlaps(sorted[i-1], e) {
			return nil, fmt.Errorf("edit: overlapping edits at [%d,%d) and [%d,%d)",
				sorted[i-1].Span.Start, sorted[i-1].Span.End, e.Span.Start, e.Span.End)
		}
	}

	out := make([]byte, 0, len(content))
	cursor := uint32(0)
	for _, e := range sorted {
		out = append(out, content[cursor:e.Span.Start]...)
		out = append(out, e.NewText...)
		cursor = e.Span.End
	}
	out = append(out, content[cursor:]...)
	return out, nil
}

// overlaps reports whether a and b intersect. a is ordered before b.
// Two insertions at the same offset coexist; an insertion inside a
// replaced range does not.
func overlaps(a, b Edit) bool {
	if a.Span.Start == a.Span.End && b.Span.Start == b.Span.End {
		return false
	}
	return b.Span.Start < a.Span.End
}
