package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"gentests/internal/diag"
	"gentests/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty renders diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <severity> [<CODE>]: <message>
//	   12 |     fn two<T, U>() {}
//	      |        ^~~~~~
//
// followed by the notes of each diagnostic when ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, &d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n",
		formatPath(fs, d.Primary.File, opts.PathMode),
		start.Line, start.Col,
		severityText(d.Severity, opts.Color),
		codeText(d.Code, opts.Color),
		d.Message)

	if opts.ShowSource {
		writeSourceLine(w, fs, d.Primary, opts.Color)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				formatPath(fs, n.Span.File, opts.PathMode),
				nStart.Line, nStart.Col, n.Msg)
			if opts.ShowSource {
				writeSourceLine(w, fs, n.Span, opts.Color)
			}
		}
	}
}

// writeSourceLine prints the first line covered by span with a caret
// underline. Multi-line spans are underlined to the end of the line.
func writeSourceLine(w io.Writer, fs *source.FileSet, span source.Span, colored bool) {
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && span.Len() == 0 {
		return
	}
	lineNo := fmt.Sprintf("%5d", start.Line)
	fmt.Fprintf(w, "%s | %s\n", lineNo, strings.ReplaceAll(line, "\t", " "))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		width = len(line) - int(start.Col) + 1
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if colored {
		marker = caretColor.Sprint(marker)
	}
	fmt.Fprintf(w, "%s | %s%s\n", strings.Repeat(" ", 5), strings.Repeat(" ", int(start.Col)-1), marker)
}

func severityText(sev diag.Severity, colored bool) string {
	text := strings.ToLower(sev.String())
	if !colored {
		return text
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(text)
	case diag.SevWarning:
		return warningColor.Sprint(text)
	default:
		return infoColor.Sprint(text)
	}
}

func codeText(code diag.Code, colored bool) string {
	if colored {
		return codeColor.Sprint(code.ID())
	}
	return code.ID()
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	file := fs.Get(id)
	if file == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return file.Path
	case PathModeBasename:
		return filepath.Base(file.Path)
	default:
		return file.FormatPath(fs.BaseDir())
	}
}
