package respserver

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiterRegistry keeps one token-bucket limiter per client IP.
type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLimiterRegistry(requestsPerSecond int) *limiterRegistry {
	return &limiterRegistry{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(requestsPerSecond),
		burst:    requestsPerSecond,
	}
}

// allow reports whether a request from the given IP fits its budget.
func (r *limiterRegistry) allow(ip string) bool {
	r.mu.Lock()
	l, ok := r.limiters[ip]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[ip] = l
	}
	r.mu.Unlock()

	return l.Allow()
}

// reset drops all per-IP state.
func (r *limiterRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limiters = make(map[string]*rate.Limiter)
}
