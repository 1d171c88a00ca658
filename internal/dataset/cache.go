package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/model"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of sources NewCache keeps before evicting the least recently used.
const DefaultCacheSize = 8

// sourceKey identifies a file version: a changed size or mtime means a reload.
type sourceKey struct {
	modTime time.Time
	size    int64
}

func (k sourceKey) equal(other sourceKey) bool {
	return k.size == other.size && k.modTime.Equal(other.modTime)
}

type cacheEntry struct {
	table *model.Table
	key   sourceKey
}

// Cache memoizes loaded tables per source path for the life of the process.
// Cached tables are shared read-only; callers must not expect private copies.
// It is safe for concurrent use.
type Cache struct {
	loader  *Loader
	entries *lru.Cache[string, cacheEntry]
}

// NewCache creates a cache of at most size sources that loads through loader.
func NewCache(loader *Loader, size int) (*Cache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}
	return &Cache{loader: loader, entries: entries}, nil
}

// Get returns the table for path, reloading when the file changed since the last call.
func (c *Cache) Get(ctx context.Context, path string) (*model.Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	key := sourceKey{size: info.Size(), modTime: info.ModTime()}

	if entry, ok := c.entries.Get(abs); ok && entry.key.equal(key) {
		return entry.table, nil
	}

	table, err := c.loader.Load(ctx, abs)
	if err != nil {
		return nil, err
	}

	c.entries.Add(abs, cacheEntry{table: table, key: key})

	return table, nil
}

// Invalidate drops the cached table for path.
func (c *Cache) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	c.entries.Remove(abs)
}

// Purge drops every cached table.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	return c.entries.Len()
}
