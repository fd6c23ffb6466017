package http

import (
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/spec-kit/community-service/internal/config"
)

// ipLimiter hands out one token bucket per client IP. Buckets live for
// the process lifetime; the credential endpoints see few distinct IPs
// per instance so the map is not evicted.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newIPLimiter(cfg config.RateLimitConfig) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(cfg.AuthPerSecond),
		burst:    cfg.AuthBurst,
	}
}

func (l *ipLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitAuth throttles credential endpoints per client IP.
func RateLimitAuth(cfg config.RateLimitConfig) fiber.Handler {
	limiter := newIPLimiter(cfg)
	return func(c *fiber.Ctx) error {
		if !limiter.limiterFor(c.IP()).Allow() {
			return fiber.NewError(http.StatusTooManyRequests, "too many requests")
		}
		return c.Next()
	}
}
