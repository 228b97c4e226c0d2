// Package assets handles asset loading and caching.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/heightscape/internal/logger"
)

// DefaultHeightmap is the bundled heightmap path.
const DefaultHeightmap = "res/height.png"

// ErrNotFound is returned when no root holds the requested path.
var ErrNotFound = errors.New("asset not found")

//go:embed res
var bundled embed.FS

type root struct {
	name string
	fsys fs.FS
}

// Manager loads assets from search roots. Roots are searched in reverse
// order (last added = highest priority); the bundled assets come first, so
// they are the fallback.
type Manager struct {
	roots []root
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager holding only the bundled assets.
func NewManager() *Manager {
	return &Manager{
		roots: []root{{name: "bundled", fsys: bundled}},
		cache: NewCache(),
	}
}

// AddDir adds a directory search root.
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset dir %s is not a directory", path)
	}
	m.AddFS(path, os.DirFS(path))
	return nil
}

// AddFS adds a search root backed by any file system.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, root{name: name, fsys: fsys})
	m.mu.Unlock()
}

// Load returns the contents of path. Slash-separated relative paths are
// looked up in the roots; anything else, or a path no root holds, is read
// from the OS file system as given.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	if fs.ValidPath(path) {
		m.mu.RLock()
		for i := len(m.roots) - 1; i >= 0; i-- {
			data, err := fs.ReadFile(m.roots[i].fsys, path)
			if err == nil {
				name := m.roots[i].name
				m.mu.RUnlock()
				logger.Debug("asset loaded", zap.String("path", path), zap.String("root", name), zap.Int("bytes", len(data)))
				m.cache.Set(path, data)
				return data, nil
			}
		}
		m.mu.RUnlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// Close drops every root except the bundled one and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roots = m.roots[:1]
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
