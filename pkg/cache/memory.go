package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds the in-process tier created by the CLI.
const DefaultMemoryEntries = 64

// promoteTTL caps how long an entry read from the backing cache stays in
// memory, since its remaining lifetime there is unknown.
const promoteTTL = time.Minute

// Memory is a bounded LRU tier in front of another cache. Writes go to
// both; reads fall through to the backing cache on a miss and promote the
// result.
type Memory struct {
	entries *lru.Cache[string, cacheEntry]
	next    Cache
}

// NewMemory wraps next with an LRU holding up to size entries.
func NewMemory(next Cache, size int) (*Memory, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	if next == nil {
		next = NewNullCache()
	}
	return &Memory{entries: entries, next: next}, nil
}

// Get returns the in-memory entry if it is still fresh, otherwise asks the
// backing cache.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if e, ok := m.entries.Get(key); ok {
		if e.ExpiresAt.IsZero() || time.Now().Before(e.ExpiresAt) {
			return e.Data, true, nil
		}
		m.entries.Remove(key)
	}

	data, ok, err := m.next.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	m.entries.Add(key, cacheEntry{Data: data, ExpiresAt: time.Now().Add(promoteTTL)})
	return data, true, nil
}

// Set stores data in memory and in the backing cache.
func (m *Memory) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	m.entries.Add(key, cacheEntry{Data: data, ExpiresAt: expires})
	return m.next.Set(ctx, key, data, ttl)
}

// Delete removes key from both tiers.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.entries.Remove(key)
	return m.next.Delete(ctx, key)
}

// Len returns the number of entries held in memory.
func (m *Memory) Len() int { return m.entries.Len() }

// Close drops the memory tier and closes the backing cache.
func (m *Memory) Close() error {
	m.entries.Purge()
	return m.next.Close()
}

var _ Cache = (*Memory)(nil)
