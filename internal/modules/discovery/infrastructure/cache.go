package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/klyne/auralis/internal/modules/discovery/application/ports"
)

// DefaultCacheTTL is how long search results stay fresh.
const DefaultCacheTTL = 5 * time.Minute

// Compile-time checks.
var (
	_ ports.ResultCache = (*MemoryCache)(nil)
	_ ports.ResultCache = (*RedisCache)(nil)
)

type memoryCacheEntry struct {
	tracks   []ports.Track
	cachedAt time.Time
}

// MemoryCache is an in-process TTL cache for search results. Entries
// expire lazily on read.
type MemoryCache struct {
	ttl time.Duration

	mu   sync.RWMutex
	data map[string]memoryCacheEntry
}

// NewMemoryCache creates a MemoryCache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		ttl:  ttl,
		data: make(map[string]memoryCacheEntry),
	}
}

// Get returns the cached tracks for key, if present and fresh.
func (c *MemoryCache) Get(_ context.Context, key string) ([]ports.Track, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(entry.cachedAt) > c.ttl {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.tracks, true
}

// Set stores tracks under key.
func (c *MemoryCache) Set(_ context.Context, key string, tracks []ports.Track) {
	c.mu.Lock()
	c.data[key] = memoryCacheEntry{
		tracks:   tracks,
		cachedAt: time.Now(),
	}
	c.mu.Unlock()
}

// RedisCache stores search results in redis, so cached results survive
// restarts and are shared between instances. Cache failures degrade to
// a miss; the provider is always the fallback.
type RedisCache struct {
	client *redislib.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache with the given TTL.
func NewRedisCache(client *redislib.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func redisKey(key string) string {
	return "auralis:search:" + key
}

// Get returns the cached tracks for key, if present.
func (c *RedisCache) Get(ctx context.Context, key string) ([]ports.Track, bool) {
	body, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if err != redislib.Nil {
			slog.Warn("redis cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var tracks []ports.Track
	if err := json.Unmarshal(body, &tracks); err != nil {
		slog.Warn("corrupt cache entry", "key", key, "error", err)
		return nil, false
	}
	return tracks, true
}

// Set stores tracks under key with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, tracks []ports.Track) {
	body, err := json.Marshal(tracks)
	if err != nil {
		slog.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, redisKey(key), body, c.ttl).Err(); err != nil {
		slog.Warn("redis cache write failed", "key", key, "error", err)
	}
}
