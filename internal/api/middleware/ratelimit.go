package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/denisAlshanov/tikgrab/internal/config"
	"github.com/denisAlshanov/tikgrab/internal/models"
	"github.com/denisAlshanov/tikgrab/internal/utils"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client key.
type rateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
}

func newRateLimiter(requestsPerSecond, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &rateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}

	go rl.cleanup()

	return rl
}

func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()

	for range ticker.C {
		rl.evictIdle(time.Now())
	}
}

func (rl *rateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, client := range rl.clients {
		if now.Sub(client.lastSeen) > limiterIdleTTL {
			delete(rl.clients, key)
		}
	}
}

func (rl *rateLimiter) isAllowed(key string) bool {
	rl.mu.Lock()
	client, exists := rl.clients[key]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = time.Now()
	rl.mu.Unlock()

	return client.limiter.Allow()
}

// RateLimitMiddleware throttles each client IP independently. It is a no-op
// when rate limiting is disabled.
func RateLimitMiddleware(cfg *config.APIConfig) gin.HandlerFunc {
	if !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newRateLimiter(cfg.RateLimitRequests, cfg.RateLimitBurst)

	return func(c *gin.Context) {
		if !limiter.isAllowed(c.ClientIP()) {
			appErr := utils.NewRateLimitError()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Detail:    appErr.Message,
				Error:     appErr,
				RequestID: c.GetString("request_id"),
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return
		}

		c.Next()
	}
}
