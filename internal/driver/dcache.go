package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	cacheAppName = "enumrange"

	// Current schema version - increment when cachePayload format changes.
	cacheSchemaVersion uint16 = 1
)

// DiskCache stores generated output keyed by the SHA-256 of the declaration
// file, so unchanged declarations skip the whole pipeline. A hit is only
// recorded for clean runs; files with diagnostics are never cached.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the on-disk record for one declaration file.
type cachePayload struct {
	Schema     uint16
	OutputPath string
	Source     []byte
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "specs" для удобства очистки.
	return filepath.Join(c.dir, "specs", hexKey+".mp")
}

// Put serializes and atomically writes a payload. A nil cache ignores the
// write, as do I/O failures: the cache is an optimization, never a
// correctness dependency.
func (c *DiskCache) Put(key [32]byte, payload *cachePayload) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return
	}
	// Атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		_ = os.Remove(f.Name())
	}
}

// Get reads a payload for the key. Misses, decode failures and schema
// mismatches all report !ok.
func (c *DiskCache) Get(key [32]byte) (*cachePayload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer func() {
		_ = f.Close()
	}()

	var out cachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	if out.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &out, true
}

// DropAll invalidates the whole cache, useful after tool upgrades.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// Переименуем каталог и удалим без гонок с параллельными Put.
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}
