package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/belaycheck/internal/infra/config"
)

const (
	idleClientTTL = 5 * time.Minute
	sweepInterval = time.Minute
)

// rateLimitMiddleware applies a per-IP token bucket to the API group. Retry
// replays were admitted on their first attempt and are not charged again.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newTokenBuckets(cfg.RequestsPerMinute, cfg.Burst, time.Now)
	return func(c *gin.Context) {
		if isReplay(c.Request) {
			c.Next()
			return
		}
		ip := c.ClientIP()
		wait, ok := limiter.take(ip)
		if ok {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "ip", ip, "route", c.FullPath())
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, codeRateLimited, "too many requests", nil))
	}
}

type tokenBuckets struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute float64
	burst     float64
	now       func() time.Time
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func newTokenBuckets(perMinute, burst int, now func() time.Time) *tokenBuckets {
	if burst <= 0 {
		burst = 1
	}
	return &tokenBuckets{
		buckets:   make(map[string]*bucket),
		perMinute: float64(perMinute),
		burst:     float64(burst),
		now:       now,
		lastSweep: now(),
	}
}

// take spends one token for key. When none is left it reports how long until
// the next token arrives.
func (l *tokenBuckets) take(key string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.buckets[key] = b
	} else if elapsed := now.Sub(b.lastSeen).Minutes(); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed*l.perMinute)
		b.lastSeen = now
	}
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweepLocked(now)
	}

	if b.tokens < 1 {
		missing := 1 - b.tokens
		return time.Duration(missing / l.perMinute * float64(time.Minute)), false
	}
	b.tokens--
	return 0, true
}

func (l *tokenBuckets) sweepLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleClientTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
