// Package cache provides a bounded, TTL-expiring store for raw provider
// responses and the stable key scheme used to index them.
package cache

import (
	"encoding/json"
	"time"
)

// Entry represents a cached response body with metadata
type Entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Body      json.RawMessage `json:"body"`
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Read retrieves a cache entry by key.
	// Returns the entry and true if found and not expired, false otherwise
	Read(key string) (*Entry, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Write stores a cache entry with the given key, replacing any previous one
	Write(key string, entry *Entry) error
}

// Cache is the main interface that combines all cache operations
type Cache interface {
	Reader
	Writer
	Len() int
}
