// SPDX-License-Identifier: MPL-2.0

// Package preview builds the thumbnail listings shown for a category: either
// the sub-folders of a folder or the images directly inside it.
//
// Listings are cached per key and never invalidated by changes on disk. A
// caller refreshes a listing by forcing it or by resetting its key. An empty
// listing is not kept, so the next call scans again.
package preview

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/creative-designer/cdlib/internal/category"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultImagePatterns matches the thumbnail images listed by Images.
var DefaultImagePatterns = []string{"*.png"}

type (
	// Item is one preview entry. Name, Label and Description all carry the
	// file or folder name without extension. Icon is the absolute path of
	// the thumbnail source.
	Item struct {
		Name        string
		Label       string
		Description string
		Icon        string
		Index       int
	}

	// Cache holds preview listings by key.
	Cache struct {
		mu       sync.Mutex
		patterns []string
		entries  map[string]entry
	}

	// Option configures a Cache.
	Option func(*Cache)

	entry struct {
		dir   string
		items []Item
	}
)

// WithImagePatterns sets the doublestar patterns image file names are
// matched against. Matching is case-insensitive.
func WithImagePatterns(patterns []string) Option {
	return func(c *Cache) {
		c.patterns = make([]string, 0, len(patterns))
		for _, p := range patterns {
			c.patterns = append(c.patterns, strings.ToLower(p))
		}
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{entries: make(map[string]entry)}
	WithImagePatterns(DefaultImagePatterns)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Folders lists the sub-folders of path under key.
func (c *Cache) Folders(path, key string) []Item {
	return c.lookup(key, path, false, func() []Item {
		return buildItems(path, category.ListSubfolders(path))
	})
}

// Images lists the image files directly inside path under key. force
// rebuilds the listing even when one is cached.
func (c *Cache) Images(path, key string, force bool) []Item {
	return c.lookup(key, path, force, func() []Item {
		return buildItems(path, c.imageNames(path))
	})
}

// Reset drops the listing cached under key.
func (c *Cache) Reset(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Dir returns the folder the listing under key was built from.
func (c *Cache) Dir(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.dir, ok
}

func (c *Cache) lookup(key, path string, force bool, build func() []Item) []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && !force && len(e.items) > 0 {
		return e.items
	}

	items := build()
	c.entries[key] = entry{dir: path, items: items}
	return items
}

func (c *Cache) imageNames(path string) []string {
	if path == "" {
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		slog.Debug("cannot list preview images", "path", path, "error", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if c.matches(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names
}

func (c *Cache) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range c.patterns {
		if ok, err := doublestar.Match(p, lower); err == nil && ok {
			return true
		}
	}
	return false
}

func buildItems(dir string, names []string) []Item {
	items := make([]Item, 0, len(names))
	for i, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		icon := filepath.Join(dir, name)
		if abs, err := filepath.Abs(icon); err == nil {
			icon = abs
		}
		items = append(items, Item{
			Name:        stem,
			Label:       stem,
			Description: stem,
			Icon:        icon,
			Index:       i,
		})
	}
	return items
}
