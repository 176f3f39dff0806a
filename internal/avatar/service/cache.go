package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/kunena/forumadmin/internal/avatar/model"
	"github.com/redis/go-redis/v9"
)

// ProfileCache keeps profiles fetched by Load so that later lookups skip the
// profile service.
type ProfileCache interface {
	Get(ctx context.Context, userID int64) (*model.Profile, bool)
	Set(ctx context.Context, profiles ...model.Profile) error
}

// NoopCache caches nothing.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, userID int64) (*model.Profile, bool) { return nil, false }
func (NoopCache) Set(ctx context.Context, profiles ...model.Profile) error     { return nil }

// MemoryCache is a process-local cache used when no redis is configured.
type MemoryCache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	profiles map[int64]memoryEntry
}

type memoryEntry struct {
	profile model.Profile
	expires time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, profiles: map[int64]memoryEntry{}}
}

func (m *MemoryCache) Get(ctx context.Context, userID int64) (*model.Profile, bool) {
	m.mu.RLock()
	e, ok := m.profiles[userID]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && time.Now().After(e.expires) {
		m.evictIfExpired(userID)
		return nil, false
	}
	p := e.profile
	return &p, true
}

// evictIfExpired re-reads the entry under the write lock; a Set may have
// refreshed it since the caller saw it expired.
func (m *MemoryCache) evictIfExpired(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.profiles[userID]; ok && time.Now().After(cur.expires) {
		delete(m.profiles, userID)
	}
}

func (m *MemoryCache) Set(ctx context.Context, profiles ...model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	expires := time.Now().Add(m.ttl)
	for _, p := range profiles {
		m.profiles[p.ID] = memoryEntry{profile: p, expires: expires}
	}
	return nil
}

// RedisCache stores profiles as JSON under forum:avatar:profile:{id}.
type RedisCache struct {
	R   *redis.Client
	TTL time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{R: rdb, TTL: ttl}
}

func profileKey(userID int64) string {
	return "forum:avatar:profile:" + strconv.FormatInt(userID, 10)
}

func (c *RedisCache) Get(ctx context.Context, userID int64) (*model.Profile, bool) {
	val, err := c.R.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		// redis.Nil is a plain miss; other errors degrade to a miss as well
		return nil, false
	}
	var p model.Profile
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *RedisCache) Set(ctx context.Context, profiles ...model.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	pipe := c.R.Pipeline()
	for _, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, profileKey(p.ID), data, c.TTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}
