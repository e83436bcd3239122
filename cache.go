package fastauth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DefaultCacheTTL bounds how stale a verification cache entry can get.
// Entries expire rather than being invalidated
const DefaultCacheTTL = 600 * time.Second

// DefaultCacheKeyPrefix namespaces cache keys in a shared redis
const DefaultCacheKeyPrefix = "fastauth:user:"

// CacheEntry is the ephemeral projection of a user kept in the
// verification cache
type CacheEntry struct {
	UserID        uuid.UUID `json:"user_id"`
	AccessToken   string    `json:"access_token"`
	Authenticated bool      `json:"authenticated"`
}

// RedisVerificationCache implements VerificationCache on a redis
// key-value store with a sliding TTL
type RedisVerificationCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ VerificationCache = (*RedisVerificationCache)(nil)

type CacheOption func(*RedisVerificationCache)

// WithCacheTTL overrides the entry time-to-live
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *RedisVerificationCache) {
		c.ttl = ttl
	}
}

// WithCacheKeyPrefix overrides the key namespace
func WithCacheKeyPrefix(prefix string) CacheOption {
	return func(c *RedisVerificationCache) {
		c.prefix = prefix
	}
}

// NewRedisVerificationCache wraps an existing redis client. Connection
// options, pooling, and timeouts are the client's concern
func NewRedisVerificationCache(client *redis.Client, opts ...CacheOption) *RedisVerificationCache {
	c := &RedisVerificationCache{
		client: client,
		ttl:    DefaultCacheTTL,
		prefix: DefaultCacheKeyPrefix,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Put upserts the entry for id and resets its expiry
func (c *RedisVerificationCache) Put(ctx context.Context, id uuid.UUID, token string, authenticated bool) (*CacheEntry, error) {
	entry := &CacheEntry{
		UserID:        id,
		AccessToken:   token,
		Authenticated: authenticated,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis set failed: %w", err)
	}

	return entry, nil
}

// Lookup returns the live entry matching both id and token, or
// (nil, nil) on a miss. Transport errors are returned, callers decide
// whether a failing cache is fatal
func (c *RedisVerificationCache) Lookup(ctx context.Context, id uuid.UUID, token string) (*CacheEntry, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		// corrupt payload, drop it and report a miss
		c.client.Del(ctx, c.key(id))
		return nil, nil
	}

	if entry.AccessToken != token {
		return nil, nil
	}

	return &entry, nil
}

func (c *RedisVerificationCache) key(id uuid.UUID) string {
	return c.prefix + id.String()
}
