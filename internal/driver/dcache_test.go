package driver

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("enumrange-test")
	if err != nil {
		t.Fatalf("OpenDiskCache failed: %v", err)
	}
	return cache
}

func TestDiskCache_RoundTrip(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("declaration content"))
	payload := &cachePayload{
		Schema:     cacheSchemaVersion,
		OutputPath: "payload_type_enum.go",
		Source:     []byte("package frames\n"),
	}

	cache.Put(key, payload)
	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.OutputPath != payload.OutputPath {
		t.Errorf("OutputPath = %q, want %q", got.OutputPath, payload.OutputPath)
	}
	if string(got.Source) != string(payload.Source) {
		t.Errorf("Source = %q, want %q", got.Source, payload.Source)
	}
}

func TestDiskCache_Miss(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("never stored"))
	if _, ok := cache.Get(key); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestDiskCache_SchemaMismatch(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("content"))
	cache.Put(key, &cachePayload{Schema: cacheSchemaVersion + 1, Source: []byte("x")})
	if _, ok := cache.Get(key); ok {
		t.Error("a foreign schema version must read as a miss")
	}
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("content"))
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("a corrupt entry must read as a miss")
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("content"))
	cache.Put(key, &cachePayload{Schema: cacheSchemaVersion, Source: []byte("x")})

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("entries must be gone after DropAll")
	}
	// Dropping an already-empty cache is fine.
	if err := cache.DropAll(); err != nil {
		t.Fatalf("second DropAll failed: %v", err)
	}
}

func TestDiskCache_NilReceiver(t *testing.T) {
	var cache *DiskCache
	key := sha256.Sum256([]byte("content"))
	cache.Put(key, &cachePayload{Schema: cacheSchemaVersion})
	if _, ok := cache.Get(key); ok {
		t.Error("nil cache must always miss")
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil DropAll = %v", err)
	}
	if cache.Dir() != "" {
		t.Error("nil Dir must be empty")
	}
}
