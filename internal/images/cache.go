package images

import (
	"encoding/gob"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CacheEntry records a completed image upload
type CacheEntry struct {
	Path      string    `json:"path"`
	Hash      string    `json:"hash"`
	Embed     string    `json:"embed"`
	Timestamp time.Time `json:"timestamp"`
}

// Cache maps local image paths to their uploaded embed codes so the same
// image is never uploaded twice. It persists across invocations via a gob
// file; a missing or corrupted file degrades to an empty cache.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*CacheEntry
	filePath string
}

// NewCache creates a new cache instance. An empty filePath yields an
// in-memory cache that is never persisted.
func NewCache(filePath string) *Cache {
	return &Cache{
		entries:  make(map[string]*CacheEntry),
		filePath: filePath,
	}
}

// Load reads the cache from disk, starting empty if the file doesn't exist
// or is corrupted.
func (c *Cache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filePath == "" {
		return nil
	}

	if _, err := os.Stat(c.filePath); os.IsNotExist(err) {
		logrus.Debug("Upload cache file does not exist, starting with empty cache")
		return nil
	}

	file, err := os.Open(c.filePath)
	if err != nil {
		logrus.WithError(err).Warn("Failed to open upload cache file, starting with empty cache")
		return nil
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		logrus.WithError(err).Warn("Failed to decode upload cache file (possibly corrupted), starting with empty cache")
		c.entries = make(map[string]*CacheEntry)
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"file":    c.filePath,
		"entries": len(c.entries),
	}).Debug("Successfully loaded upload cache from disk")

	return nil
}

// Save writes the cache to disk via an atomic temp-file rename
func (c *Cache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return nil
	}

	tempFile := c.filePath + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary cache file: %w", err)
	}

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		file.Close()
		os.Remove(tempFile)
		return fmt.Errorf("failed to encode cache data: %w", err)
	}

	file.Close()

	if err := os.Rename(tempFile, c.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"file":    c.filePath,
		"entries": len(c.entries),
	}).Debug("Successfully saved upload cache to disk")

	return nil
}

// Get retrieves a cached upload for the path if its content hash still
// matches; a changed hash means the file was edited and must be re-uploaded.
func (c *Cache) Get(path, hash string) *CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[path]
	if !exists {
		logrus.WithField("path", path).Debug("Upload cache miss: no entry found")
		return nil
	}

	if entry.Hash != hash {
		logrus.WithFields(logrus.Fields{
			"path":     path,
			"old_hash": entry.Hash,
			"new_hash": hash,
		}).Debug("Upload cache miss: image content changed")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"embed": entry.Embed,
	}).Debug("Upload cache hit")

	return entry
}

// Set stores a new upload result
func (c *Cache) Set(path, hash, embed string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[path] = &CacheEntry{
		Path:      path,
		Hash:      hash,
		Embed:     embed,
		Timestamp: time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"embed": embed,
	}).Debug("Cached new image upload")
}

// Len returns the number of cached uploads
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
