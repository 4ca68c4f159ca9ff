package quiz

import (
	"sync"
	"time"

	"github.com/examdesk/examdesk/internal/exam"
)

// Cache is a read-through cache of parsed question lists keyed by
// source path and modification time. Source documents are static
// files, so entries never need invalidating; a changed modtime simply
// misses and triggers a re-parse. Concurrent requests for the same
// document may parse redundantly but each entry is written at most
// once per key.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey][]exam.Question
}

type cacheKey struct {
	path    string
	modTime time.Time
}

func NewCache() *Cache {
	return &Cache{entries: map[cacheKey][]exam.Question{}}
}

func (c *Cache) get(path string, modTime time.Time) ([]exam.Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	qs, ok := c.entries[cacheKey{path, modTime}]
	return qs, ok
}

func (c *Cache) put(path string, modTime time.Time, qs []exam.Question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := cacheKey{path, modTime}
	if _, exists := c.entries[k]; exists {
		return
	}
	c.entries[k] = qs
}
