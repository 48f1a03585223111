package lexer

import (
	"testing"

	"gentests/internal/diag"
	"gentests/internal/source"
	"gentests/internal/token"
)

func tokenize(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(input))
	bag := diag.NewBag(16)
	toks := Tokenize(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "fn header",
			input: "fn foo()",
			want:  []token.Kind{token.KwFn, token.Ident, token.LParen, token.RParen, token.EOF},
		},
		{
			name:  "mod with attr",
			input: "#[test] mod m {}",
			want: []token.Kind{token.Pound, token.LBracket, token.Ident, token.RBracket,
				token.KwMod, token.Ident, token.LBrace, token.RBrace, token.EOF},
		},
		{
			name:  "generics with lifetime",
			input: "<'a, T>",
			want: []token.Kind{token.Lt, token.Lifetime, token.Comma, token.Ident,
				token.Gt, token.EOF},
		},
		{
			name:  "reference type",
			input: "&'a mut str",
			want: []token.Kind{token.Amp, token.Lifetime, token.KwMut, token.Ident,
				token.EOF},
		},
		{
			name:  "path and arrow",
			input: "a::b -> c",
			want: []token.Kind{token.Ident, token.PathSep, token.Ident, token.Arrow,
				token.Ident, token.EOF},
		},
		{
			name:  "nested generics are single gt",
			input: "Vec<Vec<u8>>",
			want: []token.Kind{token.Ident, token.Lt, token.Ident, token.Lt, token.Ident,
				token.Gt, token.Gt, token.EOF},
		},
		{
			name:  "placeholder lifetime",
			input: "&'_ str",
			want:  []token.Kind{token.Amp, token.Lifetime, token.Ident, token.EOF},
		},
		{
			name:  "underscore alone",
			input: "_",
			want:  []token.Kind{token.Underscore, token.EOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := tokenize(t, tt.input)
			if bag.HasErrors() {
				t.Fatalf("unexpected errors: %v", bag.Items())
			}
			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind token.Kind
		wantText string
	}{
		{"int", "42", token.IntLit, "42"},
		{"int with suffix", "42u32", token.IntLit, "42u32"},
		{"hex", "0xFF_aa", token.IntLit, "0xFF_aa"},
		{"float", "1.5", token.FloatLit, "1.5"},
		{"float exponent", "1e10", token.FloatLit, "1e10"},
		{"string", `"ab\"c"`, token.StringLit, `"ab\"c"`},
		{"byte string", `b"ab"`, token.StringLit, `b"ab"`},
		{"raw string", `r"a\b"`, token.RawStringLit, `r"a\b"`},
		{"raw string hashes", `r#"a"b"#`, token.RawStringLit, `r#"a"b"#`},
		{"char", `'a'`, token.CharLit, `'a'`},
		{"escaped char", `'\''`, token.CharLit, `'\''`},
		{"byte char", `b'x'`, token.CharLit, `b'x'`},
		{"static lifetime", "'static", token.Lifetime, "'static"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := tokenize(t, tt.input)
			if bag.HasErrors() {
				t.Fatalf("unexpected errors: %v", bag.Items())
			}
			if toks[0].Kind != tt.wantKind {
				t.Errorf("kind: got %v, want %v", toks[0].Kind, tt.wantKind)
			}
			if toks[0].Text != tt.wantText {
				t.Errorf("text: got %q, want %q", toks[0].Text, tt.wantText)
			}
		})
	}
}

func TestRangeAfterInt(t *testing.T) {
	toks, bag := tokenize(t, "1..2")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	want := []token.Kind{token.IntLit, token.DotDot, token.IntLit, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDocCommentTrivia(t *testing.T) {
	toks, bag := tokenize(t, "/// doc line\n// plain\n/** doc block */\nfn")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if toks[0].Kind != token.KwFn {
		t.Fatalf("first token: got %v", toks[0].Kind)
	}
	docs := toks[0].DocText()
	if len(docs) != 2 {
		t.Fatalf("doc count: got %d (%v)", len(docs), docs)
	}
	if docs[0] != "/// doc line" || docs[1] != "/** doc block */" {
		t.Errorf("docs: %v", docs)
	}
	if len(toks[0].Leading) != 3 {
		t.Errorf("leading trivia count: got %d", len(toks[0].Leading))
	}
}

func TestNestedBlockComment(t *testing.T) {
	toks, bag := tokenize(t, "/* a /* b */ c */ fn")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if toks[0].Kind != token.KwFn {
		t.Errorf("got %v, want fn after nested comment", toks[0].Kind)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, bag := tokenize(t, `"abc`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("code: got %v", bag.Items()[0].Code)
	}
}

func TestSpanOffsets(t *testing.T) {
	toks, _ := tokenize(t, "fn foo")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Errorf("fn span: %+v", toks[0].Span)
	}
	if toks[1].Span.Start != 3 || toks[1].Span.End != 6 {
		t.Errorf("foo span: %+v", toks[1].Span)
	}
}
