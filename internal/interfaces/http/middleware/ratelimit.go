package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a token bucket limiter keyed by client IP.
// Buckets for idle clients are evicted periodically.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	rate     float64
	capacity float64
	lastGC   time.Time
}

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing ratePerMinute requests,
// with bursts up to the same amount.
func NewRateLimiter(ratePerMinute int) *RateLimiter {
	if ratePerMinute <= 0 {
		ratePerMinute = 60
	}
	return &RateLimiter{
		buckets:  make(map[string]*tokenBucket),
		rate:     float64(ratePerMinute) / 60.0,
		capacity: float64(ratePerMinute),
		lastGC:   time.Now(),
	}
}

// Allow reports whether a request from the given key may proceed
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastGC) > 10*time.Minute {
		rl.gc(now)
	}

	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = &tokenBucket{tokens: rl.capacity}
		rl.buckets[key] = bucket
	} else {
		elapsed := now.Sub(bucket.lastSeen).Seconds()
		bucket.tokens += elapsed * rl.rate
		if bucket.tokens > rl.capacity {
			bucket.tokens = rl.capacity
		}
	}
	bucket.lastSeen = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

// gc removes buckets idle long enough to have fully refilled. Caller holds the lock.
func (rl *RateLimiter) gc(now time.Time) {
	idle := time.Duration(rl.capacity/rl.rate) * time.Second
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastSeen) > idle {
			delete(rl.buckets, key)
		}
	}
	rl.lastGC = now
}

// RateLimit returns middleware limiting requests per client IP
func RateLimit(ratePerMinute int) gin.HandlerFunc {
	limiter := NewRateLimiter(ratePerMinute)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_RATE_LIMITED",
					"message": "Too many requests, please retry later",
				},
			})
			return
		}
		c.Next()
	}
}
