package cache

import (
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultSize = 500
	DefaultTTL  = 24 * time.Hour
)

// MemoryCache implements the Cache interface with a size-bounded LRU.
// Entries older than the TTL are dropped on read.
type MemoryCache struct {
	lru *lru.Cache[string, *Entry]
	ttl time.Duration
	now func() time.Time
}

type MemoryOption func(*MemoryCache)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryCache) { m.now = now }
}

// NewMemory creates an in-process cache holding at most size entries.
// A ttl of zero disables expiry.
func NewMemory(size int, ttl time.Duration, opts ...MemoryOption) (*MemoryCache, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be positive")
	}
	if ttl < 0 {
		return nil, errors.New("cache ttl must not be negative")
	}
	l, err := lru.New[string, *Entry](size)
	if err != nil {
		return nil, err
	}
	m := &MemoryCache{lru: l, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// Read implements Reader interface. A hit refreshes the entry's recency.
func (m *MemoryCache) Read(key string) (*Entry, bool) {
	entry, ok := m.lru.Get(key)
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && m.now().Sub(entry.FetchedAt) > m.ttl {
		m.lru.Remove(key)
		return nil, false
	}
	return entry, true
}

// Write implements Writer interface
func (m *MemoryCache) Write(key string, entry *Entry) error {
	if entry == nil {
		return errors.New("nil cache entry")
	}
	stored := *entry
	stored.FetchedAt = m.now()
	m.lru.Add(key, &stored)
	return nil
}

// Len returns the number of live and not-yet-evicted entries
func (m *MemoryCache) Len() int {
	return m.lru.Len()
}

var _ Cache = (*MemoryCache)(nil)
