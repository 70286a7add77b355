package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// ClientLimiter rate limits requests per client key.
type ClientLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewClientLimiter creates a limiter allowing requestsPerSecond per client
// with the given burst.
func NewClientLimiter(requestsPerSecond float64, burst int) *ClientLimiter {
	if burst <= 0 {
		burst = 5
	}

	return &ClientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Allow reports whether client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	return l.get(client).Allow()
}

func (l *ClientLimiter) get(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.rate, l.burst)
	l.limiters[client] = limiter

	return limiter
}
