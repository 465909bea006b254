package ratelimit

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ClientLimiter keeps one token bucket per client address.
type ClientLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewClientLimiter(config Config) *ClientLimiter {
	return &ClientLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func (l *ClientLimiter) GetLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[client] = limiter
	return limiter
}

// Middleware rejects a request outright when the client's bucket is empty;
// booking traffic should fail fast rather than queue.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
