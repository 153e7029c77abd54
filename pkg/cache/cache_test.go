package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("NullCache.Get reported a hit")
	}
	if data != nil {
		t.Error("NullCache.Get returned data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache stored data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	want := []byte(`{"result":{"items":[]}}`)
	if err := c.Set(ctx, "search:abc", want, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := c.Get(ctx, "search:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("Get missed a freshly stored entry")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	_, hit, err := c.Get(context.Background(), "never-stored")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("Get hit an absent key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("stale"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get returned an expired entry")
	}
}

func TestFileCacheNoExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("durable"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("entry with ttl 0 expired")
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("good"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Corrupt the stored file in place.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("key"), []byte("{torn"), 0o644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get(corrupt) = hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry survived Delete")
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(absent): %v", err)
	}
}

func TestFileCacheFanOut(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	p := c.(*FileCache).path("some-key")
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 || len(parts[0]) != 2 {
		t.Errorf("path %q not sharded into a two-character subdirectory", rel)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash is not deterministic")
	}

	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs produced the same hash")
	}

	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.HTTPKey("catalog", "page-0"); got != "http:catalog:page-0" {
		t.Errorf("HTTPKey = %q", got)
	}

	// Differing options must produce differing search keys.
	s1 := k.SearchKey("rainfall", SearchKeyOpts{MaxPages: 10})
	s2 := k.SearchKey("rainfall", SearchKeyOpts{MaxPages: 20})
	if s1 == s2 {
		t.Error("SearchKey ignored options")
	}
	if s3 := k.SearchKey("bathing water", SearchKeyOpts{MaxPages: 10}); s1 == s3 {
		t.Error("SearchKey ignored query text")
	}

	d1 := k.DatasetKey("env-agency-rainfall")
	d2 := k.DatasetKey("env-agency-levels")
	if d1 == d2 {
		t.Error("DatasetKey collided for distinct identifiers")
	}
	if !strings.HasPrefix(d1, "dataset:") {
		t.Errorf("DatasetKey = %q, want dataset: prefix", d1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "flood:")

	if got := scoped.HTTPKey("catalog", "page-0"); got != "flood:http:catalog:page-0" {
		t.Errorf("HTTPKey = %q", got)
	}
	if got := scoped.DatasetKey("id-1"); !strings.HasPrefix(got, "flood:dataset:") {
		t.Errorf("DatasetKey = %q, want flood:dataset: prefix", got)
	}
	if got := scoped.SearchKey("q", SearchKeyOpts{}); !strings.HasPrefix(got, "flood:search:") {
		t.Errorf("SearchKey = %q, want flood:search: prefix", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	if got := scoped.HTTPKey("ns", "key"); got != "p:http:ns:key" {
		t.Errorf("HTTPKey with nil inner = %q", got)
	}
}
