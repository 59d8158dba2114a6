package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memoryCache implements Cache in process memory. It is used when no Redis
// URL is configured and in tests.
type memoryCache struct {
	mu          sync.Mutex
	prefix      string
	ttl         time.Duration
	now         func() time.Time
	generations map[View]int64
	entries     map[string]memoryEntry
}

// NewMemoryCache creates an in-process view cache
func NewMemoryCache(prefix string, ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &memoryCache{
		prefix:      prefix,
		ttl:         ttl,
		now:         time.Now,
		generations: make(map[View]int64),
		entries:     make(map[string]memoryEntry),
	}
}

func (c *memoryCache) Get(ctx context.Context, view View, key string, dest any) (int64, bool, error) {
	c.mu.Lock()
	generation := c.generations[view]
	k := entryKey(c.prefix, view, generation, key)
	entry, ok := c.entries[k]
	if ok && c.now().After(entry.expiresAt) {
		delete(c.entries, k)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return generation, false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return generation, false, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return generation, true, nil
}

// Set drops writes for a generation that has already been invalidated
func (c *memoryCache) Set(ctx context.Context, view View, generation int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generations[view] {
		return nil
	}

	c.entries[entryKey(c.prefix, view, generation, key)] = memoryEntry{
		data:      data,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate bumps the generation and drops the view's stale entries eagerly
func (c *memoryCache) Invalidate(ctx context.Context, view View) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stale := fmt.Sprintf("%s:%s:%d:", c.prefix, view, c.generations[view])
	for k := range c.entries {
		if strings.HasPrefix(k, stale) {
			delete(c.entries, k)
		}
	}
	c.generations[view]++
	return nil
}

func (c *memoryCache) Health(ctx context.Context) error {
	return nil
}

func (c *memoryCache) Close() error {
	return nil
}
