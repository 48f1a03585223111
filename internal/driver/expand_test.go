package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const unitSource = `#[generic_tests::define]
mod tests {
    #[test]
    fn probe<T: Default>() {
        let _ = T::default();
    }

    #[instantiate_tests(<String>)]
    mod string {}
}
`

const brokenSource = `#[generic_tests::define]
mod tests {
    #[test]
    fn one<T>() {}

    #[test]
    fn two<T, U>() {}

    #[instantiate_tests(<u8>)]
    mod a {}
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestExpandDirOrderAndOutcome(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.rs":          unitSource,
		"a.rs":          "fn plain() {}\n",
		"sub/broken.rs": brokenSource,
	})

	_, results, report, err := ExpandDir(context.Background(), dir, &Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// Sorted order: a.rs, b.rs, sub/broken.rs.
	if filepath.Base(results[0].Path) != "a.rs" || filepath.Base(results[1].Path) != "b.rs" {
		t.Errorf("results out of order: %s, %s", results[0].Path, results[1].Path)
	}

	if !results[0].OK || string(results[0].Output) != "fn plain() {}\n" {
		t.Error("file without units must pass through unchanged")
	}
	if !results[1].OK || !strings.Contains(string(results[1].Output), "mod _gentests_call_sigs") {
		t.Error("unit file was not expanded")
	}
	if results[2].OK {
		t.Error("file with an arity mismatch must fail")
	}
	if results[2].Bag == nil || !results[2].Bag.HasErrors() {
		t.Error("failed file must carry diagnostics")
	}

	if report == nil || len(report.Phases) == 0 {
		t.Error("missing timing report")
	}
}

func TestExpandDirSkipsGeneratedFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"lib.rs":     unitSource,
		"lib.gen.rs": "fn stale() {}\n",
	})

	_, results, _, err := ExpandDir(context.Background(), dir, &Options{Suffix: ".gen.rs"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("generated file must be skipped, got %d results", len(results))
	}
	if filepath.Base(results[0].Path) != "lib.rs" {
		t.Errorf("unexpected file %s", results[0].Path)
	}
}

func TestExpandDirCacheRoundTrip(t *testing.T) {
	dir := writeTree(t, map[string]string{"lib.rs": unitSource})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := &Options{Cache: cache}

	_, cold, _, err := ExpandDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cold[0].CacheHit {
		t.Error("first run cannot hit the cache")
	}

	_, warm, _, err := ExpandDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !warm[0].CacheHit {
		t.Error("second run must hit the cache")
	}
	if string(warm[0].Output) != string(cold[0].Output) {
		t.Error("cached output differs from the computed one")
	}
}

func TestExpandDirCacheKeyedByConfig(t *testing.T) {
	dir := writeTree(t, map[string]string{"lib.rs": unitSource})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := ExpandDir(context.Background(), dir, &Options{Cache: cache}); err != nil {
		t.Fatal(err)
	}
	_, results, _, err := ExpandDir(context.Background(), dir,
		&Options{Cache: cache, Markers: []string{"quickcheck"}})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].CacheHit {
		t.Error("a config change must invalidate the cache key")
	}
}

func TestExpandDirFailedFilesNotCached(t *testing.T) {
	dir := writeTree(t, map[string]string{"lib.rs": brokenSource})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := &Options{Cache: cache}

	for run := 0; run < 2; run++ {
		_, results, _, err := ExpandDir(context.Background(), dir, opts)
		if err != nil {
			t.Fatal(err)
		}
		if results[0].OK || results[0].CacheHit {
			t.Fatalf("run %d: failed expansion must be recomputed, not cached", run)
		}
	}
}
