package service

import (
	"context"
	"testing"
	"time"

	"github.com/kunena/forumadmin/internal/avatar/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379", // 需要 Redis 实例
	})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available, skipping test")
	}

	cache := NewRedisCache(rdb, time.Minute)
	defer rdb.Del(ctx, profileKey(900001), profileKey(900002))

	t.Run("Miss", func(t *testing.T) {
		_, ok := cache.Get(ctx, 900003)
		assert.False(t, ok)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx,
			model.Profile{ID: 900001, Username: "alice"},
			model.Profile{ID: 900002, Username: "bob"},
		))

		p, ok := cache.Get(ctx, 900002)
		require.True(t, ok)
		assert.Equal(t, "bob", p.Username)

		ttl, err := rdb.TTL(ctx, profileKey(900001)).Result()
		require.NoError(t, err)
		assert.True(t, ttl > 0 && ttl <= time.Minute)
	})
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Millisecond)
	require.NoError(t, c.Set(ctx, model.Profile{ID: 1}))
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
}

func TestMemoryCache_EvictKeepsRefreshedEntry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	require.NoError(t, c.Set(ctx, model.Profile{ID: 1, Username: "stale"}))
	c.profiles[1] = memoryEntry{profile: c.profiles[1].profile, expires: time.Now().Add(-time.Second)}

	// refreshed between the expired read and the eviction
	require.NoError(t, c.Set(ctx, model.Profile{ID: 1, Username: "fresh"}))
	c.evictIfExpired(1)

	p, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "fresh", p.Username)

	c.profiles[1] = memoryEntry{profile: c.profiles[1].profile, expires: time.Now().Add(-time.Second)}
	c.evictIfExpired(1)
	assert.NotContains(t, c.profiles, int64(1))
}
