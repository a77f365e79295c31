package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/denisAlshanov/tikgrab/internal/config"
	"github.com/denisAlshanov/tikgrab/internal/models"
)

const keyPrefix = "tikgrab:media:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg *config.CacheConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}
}

// cacheKey hashes the URL so arbitrary user input never becomes part of a
// Redis key verbatim.
func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, url string) (*models.MediaResponse, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached response: %w", err)
	}

	var response models.MediaResponse
	if err := json.Unmarshal(val, &response); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached response: %w", err)
	}
	return &response, true, nil
}

func (c *RedisCache) Set(ctx context.Context, url string, response *models.MediaResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(url), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache response: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
