package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
)

type windowCounter struct {
	count       int
	windowStart time.Time
}

// RateLimiter is a fixed-window per-client request limiter. Windows are
// tracked in memory; a multi-instance deployment would need a shared store.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*windowCounter
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*windowCounter),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether a request from the client fits the current window.
func (rl *RateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)
	counter, ok := rl.clients[clientID]
	if !ok || now.Sub(counter.windowStart) >= rl.window {
		rl.clients[clientID] = &windowCounter{count: 1, windowStart: now}
		return true
	}

	if counter.count >= rl.limit {
		return false
	}
	counter.count++
	return true
}

// sweep drops windows that expired, at most once per window, so the client
// map does not grow with every IP that ever hit the API. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for id, counter := range rl.clients {
		if now.Sub(counter.windowStart) >= rl.window {
			delete(rl.clients, id)
		}
	}
	rl.lastSweep = now
}

// Middleware enforces the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTooManyRequests, "Too many requests")
			errorDetail = errorDetail.WithDetails("Rate limit exceeded, slow down")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}
