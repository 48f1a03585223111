package edit

import (
	"testing"

	"gentests/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		edits   []Edit
		want    string
		wantErr bool
	}{
		{
			name:    "no edits",
			content: "fn foo() {}",
			want:    "fn foo() {}",
		},
		{
			name:    "single replace",
			content: "fn foo() {}",
			edits:   []Edit{Replace(span(3, 6), "bar")},
			want:    "fn bar() {}",
		},
		{
			name:    "delete range",
			content: "#[test]\nfn foo() {}",
			edits:   []Edit{Delete(span(0, 8))},
			want:    "fn foo() {}",
		},
		{
			name:    "insert at end",
			content: "mod tests {}",
			edits:   []Edit{Insert(1, 12, "\nmod extra {}")},
			want:    "mod tests {}\nmod extra {}",
		},
		{
			name:    "unordered edits applied by position",
			content: "abcdef",
			edits: []Edit{
				Replace(span(4, 5), "E"),
				Replace(span(0, 1), "A"),
				Replace(span(2, 3), "C"),
			},
			want: "AbCdEf",
		},
		{
			name:    "adjacent ranges do not conflict",
			content: "abcdef",
			edits: []Edit{
				Delete(span(0, 3)),
				Replace(span(3, 6), "xyz"),
			},
			want: "xyz",
		},
		{
			name:    "stacked insertions keep order",
			content: "ab",
			edits: []Edit{
				Insert(1, 1, "x"),
				Insert(1, 1, "y"),
			},
			want: "axyb",
		},
		{
			name:    "overlap rejected",
			content: "abcdef",
			edits: []Edit{
				Replace(span(0, 4), "x"),
				Replace(span(2, 6), "y"),
			},
			wantErr: true,
		},
		{
			name:    "insertion inside replacement rejected",
			content: "abcdef",
			edits: []Edit{
				Replace(span(0, 4), "x"),
				Insert(1, 2, "y"),
			},
			wantErr: true,
		},
		{
			name:    "span past end rejected",
			content: "ab",
			edits:   []Edit{Delete(span(1, 5))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply([]byte(tt.content), tt.edits)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Apply succeeded, want error; got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("Apply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	content := []byte("abcdef")
	if _, err := Apply(content, []Edit{Replace(span(0, 6), "z")}); err != nil {
		t.Fatal(err)
	}
	if string(content) != "abcdef" {
		t.Fatalf("input mutated: %q", content)
	}
}
