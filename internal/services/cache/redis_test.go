package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisAlshanov/tikgrab/internal/config"
	"github.com/denisAlshanov/tikgrab/internal/models"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	c := NewRedisCache(&config.CacheConfig{
		Enabled:   true,
		RedisAddr: server.Addr(),
		TTL:       time.Minute,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c, server
}

func sampleResponse() *models.MediaResponse {
	title := "cat does a backflip"
	return &models.MediaResponse{
		Title:    &title,
		Duration: "0:14",
		Formats: []models.FormatOption{
			{Label: "🎬 MP4 (1024p)", Quality: "1024p", URL: "https://cdn.example/v.mp4", Ext: "mp4"},
		},
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	url := "https://www.tiktok.com/@user/video/1"

	_, found, err := c.Get(ctx, url)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, url, sampleResponse()))

	cached, found, err := c.Get(ctx, url)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sampleResponse(), cached)
	assert.Nil(t, cached.Thumbnail)
}

func TestRedisCacheExpires(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()
	url := "https://www.tiktok.com/@user/video/2"

	require.NoError(t, c.Set(ctx, url, sampleResponse()))
	server.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, url)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheKeyIsHashed(t *testing.T) {
	c, server := newTestCache(t)
	url := "https://www.tiktok.com/@user/video/3?token=secret"

	require.NoError(t, c.Set(context.Background(), url, sampleResponse()))

	keys := server.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, cacheKey(url), keys[0])
	assert.NotContains(t, keys[0], "secret")
}

func TestRedisCacheUnavailable(t *testing.T) {
	c, server := newTestCache(t)
	server.Close()

	assert.Error(t, c.Ping(context.Background()))
	_, _, err := c.Get(context.Background(), "https://example.com/")
	assert.Error(t, err)
}

func TestNewCacheFallsBackToNoop(t *testing.T) {
	disabled := NewCache(&config.CacheConfig{Enabled: false})
	assert.IsType(t, NoopCache{}, disabled)

	unreachable := NewCache(&config.CacheConfig{Enabled: true, RedisAddr: "127.0.0.1:1", TTL: time.Minute})
	assert.IsType(t, NoopCache{}, unreachable)

	server := miniredis.RunT(t)
	live := NewCache(&config.CacheConfig{Enabled: true, RedisAddr: server.Addr(), TTL: time.Minute})
	defer live.Close()
	assert.IsType(t, &RedisCache{}, live)
}
