package cache

import (
	"context"
	"sync"
)

type memoryEntry struct {
	status int
	body   []byte
}

// Memory stores pages in-process. Used in tests and when no cache
// directory is configured but read-through behavior is still wanted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns the cached body and status for rawURL, or ok=false on miss.
func (c *Memory) Get(_ context.Context, rawURL string) ([]byte, int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[rawURL]
	if !ok {
		return nil, 0, false
	}
	return append([]byte(nil), entry.body...), entry.status, true
}

// Put stores the body and status under rawURL.
func (c *Memory) Put(_ context.Context, rawURL string, status int, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rawURL] = memoryEntry{
		status: status,
		body:   append([]byte(nil), body...),
	}
	return nil
}
