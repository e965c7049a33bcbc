package repository

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// MemoryLimiter keeps one token bucket per client key in process memory.
type MemoryLimiter struct {
	rps      float64
	burst    int
	limiters sync.Map // map[string]*rate.Limiter
}

func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &MemoryLimiter{rps: rps, burst: burst}
}

func (r *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return r.getLimiter(key).Allow(), nil
}

func (r *MemoryLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := r.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(rate.Limit(r.rps), r.burst)
	actual, loaded := r.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
