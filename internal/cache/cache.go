// Package cache is a small string-keyed store for settings and derived
// state, persisted as a msgpack file between sessions. It is not a home
// for the pattern corpus, only for values cheap to recompute.
package cache

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

type Cache struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
	dirty   bool
}

// New opens a cache backed by the given file. A missing or unreadable file
// starts the cache empty; persistence failures never propagate past Flush.
// An empty path keeps the cache memory-only.
func New(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]string)}
	if path == "" {
		return c
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Could not read cache file %s: %v", path, err)
		}
		return c
	}
	if err := msgpack.Unmarshal(data, &c.entries); err != nil {
		log.Warnf("Discarding corrupt cache file %s: %v", path, err)
		c.entries = make(map[string]string)
	}
	return c
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[key] == value {
		return
	}
	c.entries[key] = value
	c.dirty = true
}

// GetInt reads a numeric entry, returning fallback when absent or mangled.
func (c *Cache) GetInt(key string, fallback int) int {
	v, ok := c.Get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (c *Cache) SetInt(key string, value int) {
	c.Set(key, strconv.Itoa(value))
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush writes the cache to disk if anything changed since the last flush.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty || c.path == "" {
		return nil
	}
	data, err := msgpack.Marshal(c.entries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
