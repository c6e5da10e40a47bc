package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheRepository, *time.Time) {
	t.Helper()
	cache := NewCacheRepository(0)
	t.Cleanup(func() { cache.Close() })

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestCacheRepository_GetSet(t *testing.T) {
	ctx := context.Background()
	cache, now := newTestCache(t)

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	value := []byte("hello")
	require.NoError(t, cache.Set(ctx, "k", value, time.Minute))
	value[0] = 'J'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	*now = now.Add(2 * time.Minute)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	exists, _ = cache.Exists(ctx, "k")
	assert.False(t, exists)

	cache.sweep()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheRepository_ZeroTTLUsesDefault(t *testing.T) {
	ctx := context.Background()
	cache, now := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	*now = now.Add(DefaultTTL - time.Second)

	_, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestCacheRepository_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	for _, key := range []string{"recipe:a", "recipe:b", "assistance:a", "translate:recipe:"} {
		require.NoError(t, cache.Set(ctx, key, []byte("v"), time.Hour))
	}

	n, err := cache.DeleteByPrefix(ctx, "recipe:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Delete(ctx, "assistance:a"))
	assert.Equal(t, 1, cache.Len())
}

func TestCacheRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository(time.Millisecond)
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			for j := 0; j < 100; j++ {
				_ = cache.Set(ctx, key, []byte{byte(j)}, time.Millisecond)
				_, _ = cache.Get(ctx, key)
				_, _ = cache.DeleteByPrefix(ctx, "z")
			}
		}(i)
	}
	wg.Wait()

	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}
