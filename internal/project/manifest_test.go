package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeManifest(t, root, "")

	got, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != want {
		t.Errorf("FindManifest = %q, %v; want %q, true", got, ok, want)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Path != "" {
		t.Errorf("no manifest on disk, Path = %q", m.Path)
	}
	if m.Config.Output.Suffix != DefaultSuffix {
		t.Errorf("Suffix = %q, want %q", m.Config.Output.Suffix, DefaultSuffix)
	}
}

func TestLoadManifestSections(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[attrs]
markers = ["test", "quickcheck"]
copied = ["cfg", "cfg_attr"]

[output]
suffix = ".expanded.rs"
`)
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Attrs: AttrsConfig{
			Markers: []string{"test", "quickcheck"},
			Copied:  []string{"cfg", "cfg_attr"},
		},
		Output: OutputConfig{Suffix: ".expanded.rs"},
	}
	if diff := cmp.Diff(want, m.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if m.Root != dir {
		t.Errorf("Root = %q, want %q", m.Root, dir)
	}
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[attrs]\nmarker = [\"test\"]\n")
	if _, err := LoadManifest(dir); err == nil {
		t.Error("unknown key must be rejected")
	}
}

func TestLoadManifestRejectsBadSuffix(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[output]\nsuffix = \".txt\"\n")
	if _, err := LoadManifest(dir); err == nil {
		t.Error("suffix without .rs must be rejected")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		m      Manifest
		input  string
		want   string
	}{
		{
			name:  "default suffix",
			m:     Manifest{Config: Config{Output: OutputConfig{Suffix: DefaultSuffix}}},
			input: filepath.Join("src", "lib.rs"),
			want:  filepath.Join("src", "lib.gen.rs"),
		},
		{
			name:  "output dir",
			m:     Manifest{Config: Config{Output: OutputConfig{Suffix: DefaultSuffix, Dir: "out"}}},
			input: filepath.Join("src", "lib.rs"),
			want:  filepath.Join("out", "lib.gen.rs"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.OutputPath(tt.input); got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
