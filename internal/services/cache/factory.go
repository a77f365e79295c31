package cache

import (
	"context"
	"time"

	"github.com/denisAlshanov/tikgrab/internal/config"
	"github.com/denisAlshanov/tikgrab/internal/utils"
)

// NewCache returns a Redis-backed cache when caching is enabled and Redis
// answers a ping, and a NoopCache otherwise. A cache outage never stops the
// service from starting.
func NewCache(cfg *config.CacheConfig) MediaCache {
	logger := utils.GetLogger()
	if !cfg.Enabled {
		logger.Info("Response cache disabled")
		return NoopCache{}
	}

	redisCache := NewRedisCache(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.WithError(err).Warnf("Redis at %s not available, response cache disabled", cfg.RedisAddr)
		_ = redisCache.Close()
		return NoopCache{}
	}

	logger.Infof("Response cache enabled (redis: %s, ttl: %s)", cfg.RedisAddr, cfg.TTL)
	return redisCache
}
