package mw

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/i18n"
	"github.com/MrSnakeDoc/pitch/internal/utils"
)

// RateLimitConfig configures a per-client token bucket. Burst is the bucket
// size and RefillPerMinute the steady rate a client earns tokens back.
type RateLimitConfig struct {
	Burst           int
	RefillPerMinute int
	MaxEntries      int           // sweep idle buckets early once this many clients are tracked
	SweepInterval   time.Duration // how often idle buckets are dropped
	IdleTTL         time.Duration
	TrustProxy      bool             // resolve IP from proxy headers when true
	Now             func() time.Time // defaults to time.Now
}

type tokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	refilled time.Time
	seen     time.Time
}

type bucketLimiter struct {
	cfg       RateLimitConfig
	perSecond float64
	size      float64

	mu        sync.Mutex
	clients   map[string]*tokenBucket
	lastSweep time.Time
}

func newBucketLimiter(cfg RateLimitConfig) *bucketLimiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerMinute = max(cfg.RefillPerMinute, 1)

	return &bucketLimiter{
		cfg:       cfg,
		perSecond: float64(cfg.RefillPerMinute) / 60.0,
		size:      float64(cfg.Burst),
		clients:   make(map[string]*tokenBucket, 256),
		lastSweep: cfg.Now(),
	}
}

func (l *bucketLimiter) bucketFor(key string, now time.Time) *tokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval ||
		(l.cfg.MaxEntries > 0 && len(l.clients) >= l.cfg.MaxEntries) {
		l.sweepLocked(now)
	}

	b, ok := l.clients[key]
	if !ok {
		b = &tokenBucket{tokens: l.size, refilled: now, seen: now}
		l.clients[key] = b
	}
	return b
}

// take consumes one token. When the bucket is empty it reports how many
// seconds until the next token is available.
func (l *bucketLimiter) take(key string) (ok bool, remaining int, retryAfter int) {
	now := l.cfg.Now()
	b := l.bucketFor(key, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	if dt := now.Sub(b.refilled).Seconds(); dt > 0 {
		b.tokens = math.Min(l.size, b.tokens+dt*l.perSecond)
		b.refilled = now
	}
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	return false, 0, max(1, int(math.Ceil((1-b.tokens)/l.perSecond)))
}

func (l *bucketLimiter) sweepLocked(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.seen) > l.cfg.IdleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// RateLimit throttles each client IP with a token bucket. Rejected requests
// get a 429 with Retry-After and a localized JSON body.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newBucketLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, retry := l.take(utils.ClientIP(r, l.cfg.TrustProxy))

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeTooManyRequests(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeTooManyRequests(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "rate_limited",
		"message": i18n.Message(lang, "error.rate_limited"),
	})
}
