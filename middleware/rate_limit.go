// file: middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"fest-registration/logger"
	"fest-registration/metrics"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter keeps one token bucket per client IP.
type LoginLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

// NewLoginLimiter allows perMinute attempts per IP with the given burst.
// A non-positive perMinute disables limiting.
func NewLoginLimiter(perMinute float64, burst int) *LoginLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}
	if burst < 1 {
		burst = 1
	}
	return &LoginLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

// Allow reports whether ip may attempt a login now.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := now()
	if t.Sub(l.lastSweep) > l.idle {
		for k, v := range l.visitors {
			if t.Sub(v.lastSeen) > l.idle {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = t
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = t
	return v.limiter.AllowN(t, 1)
}

// Handler rejects throttled clients with 429.
func (l *LoginLimiter) Handler(rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			logger.Warn.Printf("[LoginLimiter] Too many login attempts from %s", c.ClientIP())
			rec.Login(metrics.LoginLimited)
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many login attempts"})
			c.Abort()
			return
		}
		c.Next()
	}
}
