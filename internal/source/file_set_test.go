package source

import (
	"testing"
)

func TestFileSetAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("mod m {\n    fn f() {}\n}\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if f.Path != "test.rs" {
		t.Errorf("path: got %q", f.Path)
	}

	start, end := fs.Resolve(Span{File: id, Start: 12, End: 14})
	if start.Line != 2 || start.Col != 5 {
		t.Errorf("start: got %+v, want 2:5", start)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Errorf("end: got %+v, want 2:7", end)
	}
}

func TestFileSetGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a/b.rs", []byte("x"))

	if _, ok := fs.GetByPath("a/b.rs"); !ok {
		t.Error("expected file by path")
	}
	if _, ok := fs.GetByPath("missing.rs"); ok {
		t.Error("unexpected file for missing path")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Errorf("Cover: got %+v", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files should be identity, got %+v", got)
	}
}
