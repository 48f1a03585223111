package diagfmt

import (
	"strings"
	"testing"

	"gentests/internal/diag"
	"gentests/internal/source"
)

func makeBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.rs", []byte("mod tests {\n    fn two<T, U>() {}\n}\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SigArityMismatch,
		Message:  "test function `two` has 2 generic parameters while others in the same module have 1",
		// the `<T, U>` range on line 2
		Primary: source.Span{File: id, Start: 22, End: 28},
	})
	return bag, fs, id
}

func TestPrettyPlain(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowSource: true})
	out := sb.String()

	for _, want := range []string{
		"lib.rs:2:11: error [SIG4007]:",
		"test function `two` has 2 generic parameters",
		"    2 |     fn two<T, U>() {}",
		"^~~~~",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.rs", []byte("mod tests {\n    fn two<T, U>() {}\n}\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SigArityMismatch,
		Message:  "arity mismatch",
		Primary:  source.Span{File: id, Start: 22, End: 28},
		Notes: []diag.Note{{
			Span: source.Span{File: id, Start: 16, End: 23},
			Msg:  "first declared here",
		}},
	})
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(sb.String(), "note: lib.rs:2:5: first declared here") {
		t.Errorf("missing note line:\n%s", sb.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`"severity": "ERROR"`,
		`"code": "SIG4007"`,
		`"start_line": 2`,
		`"count": 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %q:\n%s", want, out)
		}
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.rs", []byte("fn f() {}\n"))
	bag := diag.NewBag(8)
	for i := 0; i < 3; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.SynUnexpectedToken,
			Message:  "x",
			Primary:  source.Span{File: id, Start: 0, End: 1},
		})
	}
	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), `"message"`); n != 1 {
		t.Errorf("want 1 diagnostic after truncation, got %d", n)
	}
	if !strings.Contains(sb.String(), `"count": 3`) {
		t.Error("count must report the untruncated total")
	}
}
