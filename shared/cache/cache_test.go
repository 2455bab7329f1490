package cache_test

import (
	"context"
	"nest/infras/otel/mocks"
	"nest/shared/cache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestSaveAndGet(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	want := listing{ID: 1, Name: "Loft", Price: 250000}
	require.NoError(t, redisCache.Save(ctx, "property:get:1", want, 60))

	var got listing
	require.NoError(t, redisCache.Get(ctx, "property:get:1", &got))
	assert.Equal(t, want, got)

	require.NoError(t, redisCache.Save(ctx, "raw", "plain", 60))

	var raw string
	require.NoError(t, redisCache.Get(ctx, "raw", &raw))
	assert.Equal(t, "plain", raw)

	server.FastForward(61 * time.Second)

	err := redisCache.Get(ctx, "property:get:1", &got)
	assert.True(t, cache.IsMiss(err))
}

func TestGetMiss(t *testing.T) {
	redisCache, _ := newCache(t)

	var got listing
	err := redisCache.Get(context.Background(), "absent", &got)

	require.Error(t, err)
	assert.True(t, cache.IsMiss(err))
}

func TestGetCorrupted(t *testing.T) {
	redisCache, server := newCache(t)
	require.NoError(t, server.Set("broken", "{not json"))

	var got listing
	err := redisCache.Get(context.Background(), "broken", &got)

	require.Error(t, err)
	assert.False(t, cache.IsMiss(err))
}

func TestDeleteAndClear(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	for _, key := range []string{"property:list:a", "property:list:b", "property:get:1", "slot:get:1"} {
		require.NoError(t, redisCache.Save(ctx, key, "v", 60))
	}

	require.NoError(t, redisCache.Delete(ctx, "slot:get:1"))
	assert.False(t, server.Exists("slot:get:1"))

	require.NoError(t, redisCache.Clear(ctx, "property:list*"))
	assert.False(t, server.Exists("property:list:a"))
	assert.False(t, server.Exists("property:list:b"))
	assert.True(t, server.Exists("property:get:1"))
}
