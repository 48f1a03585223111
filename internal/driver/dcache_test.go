package driver

import (
	"path/filepath"
	"testing"

	"gentests/internal/project"
)

func newTestCache(t *testing.T) *DiskCache {
	t.Helper()
	c, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	input := project.HashBytes([]byte("content"))
	key := project.Combine(input, project.HashBytes([]byte("config")))

	want := &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		InputHash: input,
		Output:    []byte("expanded"),
	}
	if err := c.Put(key, want); err != nil {
		t.Fatal(err)
	}

	got, hit, err := c.Get(key, input)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected a hit")
	}
	if string(got.Output) != "expanded" {
		t.Errorf("Output = %q", got.Output)
	}
}

func TestDiskCacheMissOnUnknownKey(t *testing.T) {
	c := newTestCache(t)
	input := project.HashBytes([]byte("x"))
	if _, hit, err := c.Get(input, input); err != nil || hit {
		t.Errorf("Get = hit %v, err %v; want miss, nil", hit, err)
	}
}

func TestDiskCacheMissOnHashMismatch(t *testing.T) {
	c := newTestCache(t)
	input := project.HashBytes([]byte("content"))
	key := project.Combine(input, project.HashBytes([]byte("config")))

	if err := c.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, InputHash: input}); err != nil {
		t.Fatal(err)
	}

	other := project.HashBytes([]byte("changed"))
	if _, hit, err := c.Get(key, other); err != nil || hit {
		t.Error("a changed input hash must miss")
	}
}

func TestDiskCacheMissOnSchemaMismatch(t *testing.T) {
	c := newTestCache(t)
	input := project.HashBytes([]byte("content"))
	key := project.Combine(input, project.HashBytes([]byte("config")))

	if err := c.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1, InputHash: input}); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(key, input); err != nil || hit {
		t.Error("an old schema version must miss")
	}
}

func TestDiskCacheNilSafe(t *testing.T) {
	var c *DiskCache
	input := project.HashBytes(nil)
	if err := c.Put(input, &DiskPayload{}); err != nil {
		t.Error(err)
	}
	if _, hit, err := c.Get(input, input); err != nil || hit {
		t.Error("nil cache must behave as always-miss")
	}
}
