// Package middleware – rate limiting
//
// This file implements a lightweight, in-memory, token-bucket rate limiter
// with per-identity buckets and periodic eviction of idle buckets. It is
// designed for simplicity, low overhead, and predictable behavior in a
// single-process deployment.
//
// Notes:
//   - The limiter is process-local. For horizontally scaled deployments,
//     prefer a distributed limiter (e.g., Redis-backed) to enforce global
//     limits.
//   - It is an edge-level abuse control, not an authorization mechanism.
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mkarlsen/go-posts-backend/internal/apperr"
)

// keyFunc selects the identity used to key a rate-limit bucket. It must
// return a stable string for the duration of a request, such as "user:<id>"
// or "ip:<addr>".
type keyFunc func(*gin.Context) string

// KeyByClientIP keys buckets by the client IP address. Used on the
// unauthenticated credential endpoints, where no user identity exists yet.
func KeyByClientIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// KeyByUserOrIP prefers the authenticated user id (stored in the Gin context
// by RequireIdentity) and falls back to the client IP. Keys are prefixed so
// user and IP namespaces cannot collide.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if v, ok := c.Get("userID"); ok {
			if s, ok := v.(string); ok && s != "" {
				return "user:" + s
			}
		}
		return "ip:" + c.ClientIP()
	}
}

// visitor holds a single bucket and the last time it was seen, so idle
// buckets can be evicted.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket rate limiter. Buckets are
// created on demand in a mutex-guarded map; StartJanitor evicts idle entries
// to bound memory. Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc
	ttl   time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter constructs a RateLimiter with the given tokens-per-second
// and burst size, keyed by keyFn. A burst <= 0 is coerced to 1.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		ttl:      10 * time.Minute,
		visitors: make(map[string]*visitor),
	}
}

// getVisitor returns the bucket for key, creating it if absent.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// StartJanitor begins periodic eviction of buckets idle for longer than the
// TTL and returns a function that stops it. Call the stop function during
// shutdown.
func (rl *RateLimiter) StartJanitor(every time.Duration) (stop func()) {
	if every <= 0 {
		every = time.Minute
	}
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-t.C:
				rl.mu.Lock()
				for k, v := range rl.visitors {
					if now.Sub(v.lastSeen) >= rl.ttl {
						delete(rl.visitors, k)
					}
				}
				rl.mu.Unlock()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Handler returns a Gin middleware that enforces per-key token-bucket limits.
// A request that cannot be served immediately is rejected with 429 and the
// bucket's actual wait time as Retry-After.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := rl.getVisitor(rl.keyFn(c))

		res := lim.Reserve()
		if !res.OK() {
			apperr.Respond(c, &apperr.RateLimitError{RetryAfter: time.Second, Limit: rl.burst})
			return
		}
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			apperr.Respond(c, &apperr.RateLimitError{RetryAfter: delay, Limit: rl.burst})
			return
		}
		c.Next()
	}
}
