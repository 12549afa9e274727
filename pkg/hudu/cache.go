package hudu

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/telcocentric/hudu-go/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrCacheKeyNotFound   = errors.New("key not found")
	ErrCacheEntryExpired  = errors.New("entry expired")
	ErrCacheValueTooLarge = errors.New("cache value exceeds maximum size")
)

// Cache stores serialized values, keyed by string. Backends must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is one cached value.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry's lifetime has passed.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// CacheOptions holds options common to all cache backends.
type CacheOptions struct {
	// DefaultTTL applies to entries stored without an explicit expiry.
	DefaultTTL time.Duration

	// MaxValueSize rejects oversized values; 0 disables the check.
	MaxValueSize int
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL:   constants.DefaultCacheTTL,
		MaxValueSize: constants.MaxCacheValueSize,
	}
}

// applyCacheOptions enforces shared backend options on an entry about
// to be stored: oversized values are rejected, and entries without an
// explicit expiry get the default TTL stamped onto a copy.
func applyCacheOptions(options *CacheOptions, entry *CacheEntry) (*CacheEntry, error) {
	if options == nil {
		return entry, nil
	}

	if options.MaxValueSize > 0 && len(entry.Data) > options.MaxValueSize {
		return nil, ErrCacheValueTooLarge
	}

	if options.DefaultTTL > 0 && entry.ExpiresAt.IsZero() {
		stamped := *entry
		stamped.ExpiresAt = time.Now().Add(options.DefaultTTL)
		entry = &stamped
	}

	return entry, nil
}

// MemoryCache is an in-memory Cache with a fixed maximum size. When
// full, the entry closest to expiry is evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
	options *CacheOptions
}

// NewMemoryCache creates a new memory cache holding at most maxSize
// entries, with no value-size limit and no default TTL.
func NewMemoryCache(maxSize int) *MemoryCache {
	return NewMemoryCacheWithOptions(maxSize, nil)
}

// NewMemoryCacheWithOptions creates a new memory cache that enforces
// the given options on every Set.
func NewMemoryCacheWithOptions(maxSize int, options *CacheOptions) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
		options: options,
	}
}

// Get retrieves an entry, failing on missing or expired keys.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, ErrCacheEntryExpired
	}

	return entry, nil
}

// Set stores an entry, evicting the soonest-to-expire entry if the
// cache is full.
func (c *MemoryCache) Set(_ context.Context, key string, entry *CacheEntry) error {
	entry, err := applyCacheOptions(c.options, entry)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}

	c.entries[key] = entry

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(_ context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return ok && !entry.Expired()
}

// evictLocked removes the entry with the earliest expiry. Callers must
// hold the write lock.
func (c *MemoryCache) evictLocked() {
	var (
		victim   string
		earliest time.Time
	)

	for key, entry := range c.entries {
		if victim == "" || entry.ExpiresAt.Before(earliest) {
			victim = key
			earliest = entry.ExpiresAt
		}
	}

	if victim != "" {
		delete(c.entries, victim)
	}
}
