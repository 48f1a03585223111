package source

import (
	"testing"
)

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nxyz")
	idx := buildLineIndex(content)

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"first byte", 0, LineCol{Line: 1, Col: 1}},
		{"last byte of first line", 1, LineCol{Line: 1, Col: 2}},
		{"newline belongs to its line", 2, LineCol{Line: 1, Col: 3}},
		{"start of second line", 3, LineCol{Line: 2, Col: 1}},
		{"empty line", 6, LineCol{Line: 3, Col: 1}},
		{"last line", 7, LineCol{Line: 4, Col: 1}},
		{"end of file", 9, LineCol{Line: 4, Col: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toLineCol(idx, tt.off)
			if got != tt.want {
				t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestToLineColNoNewlines(t *testing.T) {
	got := toLineCol(nil, 5)
	want := LineCol{Line: 1, Col: 6}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantChanged bool
	}{
		{"no cr", "a\nb", "a\nb", false},
		{"crlf", "a\r\nb", "a\nb", true},
		{"lone cr kept", "a\rb", "a\rb", false},
		{"mixed", "a\r\nb\rc\r\n", "a\nb\rc\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.input))
			if string(got) != tt.want || changed != tt.wantChanged {
				t.Errorf("normalizeCRLF(%q) = %q, %v; want %q, %v",
					tt.input, got, changed, tt.want, tt.wantChanged)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("fn")...)
	got, had := removeBOM(withBOM)
	if !had || string(got) != "fn" {
		t.Errorf("removeBOM failed: %q, %v", got, had)
	}

	got, had = removeBOM([]byte("fn"))
	if had || string(got) != "fn" {
		t.Errorf("removeBOM on plain content: %q, %v", got, had)
	}
}
