package fastauth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/goliatone/go-fastauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, opts ...fastauth.CacheOption) (*fastauth.RedisVerificationCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return fastauth.NewRedisVerificationCache(client, opts...), mr
}

func TestCachePutLookup(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	id := uuid.New()
	token := "aaaabbbbccccddddeeeeffff0000111122223333444455556666"

	entry, err := cache.Put(ctx, id, token, true)
	require.NoError(t, err)
	assert.Equal(t, id, entry.UserID)
	assert.True(t, entry.Authenticated)

	got, err := cache.Lookup(ctx, id, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, token, got.AccessToken)
	assert.True(t, got.Authenticated)
}

func TestCacheLookupMisses(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	id := uuid.New()

	t.Run("absent key", func(t *testing.T) {
		got, err := cache.Lookup(ctx, id, "token")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("token mismatch", func(t *testing.T) {
		_, err := cache.Put(ctx, id, "right-token", true)
		require.NoError(t, err)

		got, err := cache.Lookup(ctx, id, "wrong-token")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCachePutOverwritesAndResetsExpiry(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	id := uuid.New()

	_, err := cache.Put(ctx, id, "token-one", true)
	require.NoError(t, err)

	mr.FastForward(500 * time.Second)

	_, err = cache.Put(ctx, id, "token-two", false)
	require.NoError(t, err)

	// old token no longer matches
	got, err := cache.Lookup(ctx, id, "token-one")
	require.NoError(t, err)
	assert.Nil(t, got)

	// expiry was reset by the second Put
	mr.FastForward(500 * time.Second)

	got, err = cache.Lookup(ctx, id, "token-two")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Authenticated)
}

func TestCacheEntryExpires(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	id := uuid.New()

	_, err := cache.Put(ctx, id, "token", true)
	require.NoError(t, err)

	mr.FastForward(fastauth.DefaultCacheTTL + time.Second)

	got, err := cache.Lookup(ctx, id, "token")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheCustomTTL(t *testing.T) {
	cache, mr := setupCache(t, fastauth.WithCacheTTL(5*time.Second))
	ctx := context.Background()

	id := uuid.New()

	_, err := cache.Put(ctx, id, "token", true)
	require.NoError(t, err)

	mr.FastForward(6 * time.Second)

	got, err := cache.Lookup(ctx, id, "token")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheCorruptEntryIsAMiss(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, mr.Set(fastauth.DefaultCacheKeyPrefix+id.String(), "{not json"))

	got, err := cache.Lookup(ctx, id, "token")
	assert.NoError(t, err)
	assert.Nil(t, got)

	// corrupt payload gets dropped
	assert.False(t, mr.Exists(fastauth.DefaultCacheKeyPrefix+id.String()))
}

func TestCacheTransportErrorSurfaces(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	mr.Close()

	_, err := cache.Lookup(ctx, uuid.New(), "token")
	assert.Error(t, err)

	_, err = cache.Put(ctx, uuid.New(), "token", true)
	assert.Error(t, err)
}
