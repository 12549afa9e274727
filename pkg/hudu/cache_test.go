package hudu

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	entry := &CacheEntry{
		Data:      []byte(`{"id":1}`),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, cache.Set(ctx, "lookup/companies", entry))

	got, err := cache.Get(ctx, "lookup/companies")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.True(t, cache.Has(ctx, "lookup/companies"))
}

func TestMemoryCacheMissingKey(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, ErrCacheKeyNotFound))
	assert.False(t, cache.Has(context.Background(), "absent"))
}

func TestMemoryCacheExpiry(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "stale", &CacheEntry{
		Data:      []byte("x"),
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	_, err := cache.Get(ctx, "stale")
	assert.True(t, errors.Is(err, ErrCacheEntryExpired))
	assert.False(t, cache.Has(ctx, "stale"))

	// The expired entry is removed on read.
	_, err = cache.Get(ctx, "stale")
	assert.True(t, errors.Is(err, ErrCacheKeyNotFound))
}

func TestMemoryCacheZeroExpiryNeverExpires(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "forever", &CacheEntry{Data: []byte("x")}))

	_, err := cache.Get(ctx, "forever")
	require.NoError(t, err)
}

func TestMemoryCacheEvictsEarliestExpiry(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "soon", &CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "late", &CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "extra", &CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))

	assert.False(t, cache.Has(ctx, "soon"))
	assert.True(t, cache.Has(ctx, "late"))
	assert.True(t, cache.Has(ctx, "extra"))
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key-%d", i), &CacheEntry{
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}

	require.NoError(t, cache.Delete(ctx, "key-0"))
	assert.False(t, cache.Has(ctx, "key-0"))
	assert.True(t, cache.Has(ctx, "key-1"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "key-1"))
	assert.False(t, cache.Has(ctx, "key-2"))
}

func TestMemoryCacheRejectsOversizedValue(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCacheWithOptions(10, &CacheOptions{MaxValueSize: 4})
	ctx := context.Background()

	err := cache.Set(ctx, "big", &CacheEntry{Data: []byte("12345")})
	assert.True(t, errors.Is(err, ErrCacheValueTooLarge))
	assert.False(t, cache.Has(ctx, "big"))

	require.NoError(t, cache.Set(ctx, "small", &CacheEntry{Data: []byte("1234")}))
	assert.True(t, cache.Has(ctx, "small"))
}

func TestMemoryCacheAppliesDefaultTTL(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCacheWithOptions(10, &CacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	entry := &CacheEntry{Data: []byte("x")}
	require.NoError(t, cache.Set(ctx, "stamped", entry))

	got, err := cache.Get(ctx, "stamped")
	require.NoError(t, err)
	assert.False(t, got.ExpiresAt.IsZero())

	// The caller's entry is left untouched.
	assert.True(t, entry.ExpiresAt.IsZero())
}

func TestMemoryCacheKeepsExplicitExpiry(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCacheWithOptions(10, &CacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	expiry := time.Now().Add(24 * time.Hour)
	require.NoError(t, cache.Set(ctx, "explicit", &CacheEntry{Data: []byte("x"), ExpiresAt: expiry}))

	got, err := cache.Get(ctx, "explicit")
	require.NoError(t, err)
	assert.Equal(t, expiry, got.ExpiresAt)
}
