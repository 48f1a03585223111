package expand

import (
	"gentests/internal/edit"
	"gentests/internal/source"
)

// editList accumulates the text edits for one source file.
type editList struct {
	edits []edit.Edit
}

func (l *editList) insert(file source.FileID, off uint32, text string) {
	l.edits = append(l.edits, edit.Insert(file, off, text))
}

func (l *editList) replace(sp source.Span, text string) {
	l.edits = append(l.edits, edit.Replace(sp, text))
}

// deleteAttr removes an attribute. When the attribute sits alone on its
// line the whole line goes, so stripping does not leave blank holes;
// otherwise the span is widened over adjacent spaces to keep single
// spacing between the neighbors.
func (l *editList) deleteAttr(content []byte, sp source.Span) {
	start, end := sp.Start, sp.End

	lineStart := start
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	onlyIndent := true
	for i := lineStart; i < start; i++ {
		if content[i] != ' ' && content[i] != '\t' {
			onlyIndent = false
			break
		}
	}

	trail := end
	for trail < uint32(len(content)) && (content[trail] == ' ' || content[trail] == '\t') {
		trail++
	}

	if onlyIndent && (trail == uint32(len(content)) || content[trail] == '\n') {
		if trail < uint32(len(content)) {
			trail++ // swallow the newline
		}
		l.edits = append(l.edits, edit.Delete(source.Span{File: sp.File, Start: lineStart, End: trail}))
		return
	}
	l.edits = append(l.edits, edit.Delete(source.Span{File: sp.File, Start: start, End: trail}))
}

func (l *editList) apply(content []byte) ([]byte, error) {
	return edit.Apply(content, l.edits)
}
