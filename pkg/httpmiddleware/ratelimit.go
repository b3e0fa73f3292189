package httpmiddleware

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig configures the sliding window rate limiter.
type RateLimitConfig struct {
	// Max is the number of requests allowed per window.
	Max int
	// Window is the duration of each sliding window.
	Window time.Duration
	// SessionCookie, when set, keys the limit by that cookie's value so each
	// browser session gets its own budget. Requests without the cookie fall
	// back to the client IP.
	SessionCookie string
	// KeyFunc overrides key extraction entirely. When set, SessionCookie is
	// ignored.
	KeyFunc func(*http.Request) string
}

// window tracks request counts across two adjacent fixed windows; the
// effective count weights the previous window by its remaining overlap.
type window struct {
	prevCount float64
	prevStart time.Time
	currCount float64
	currStart time.Time
}

type rateLimiter struct {
	cfg     RateLimitConfig
	keyFunc func(*http.Request) string

	mu      sync.Mutex
	windows map[string]*window
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = sessionOrIPKey(cfg.SessionCookie)
	}
	return &rateLimiter{
		cfg:     cfg,
		keyFunc: keyFunc,
		windows: make(map[string]*window),
	}
}

func (rl *rateLimiter) allow(key string, now time.Time) (remaining int, resetAt time.Time, allowed bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok {
		w = &window{currStart: now}
		rl.windows[key] = w
	}

	if now.Sub(w.currStart) >= rl.cfg.Window {
		w.prevCount = w.currCount
		w.prevStart = w.currStart
		w.currCount = 0
		w.currStart = now.Truncate(rl.cfg.Window)
		if now.Sub(w.prevStart) >= 2*rl.cfg.Window {
			w.prevCount = 0
		}
	}

	overlap := 1.0 - now.Sub(w.currStart).Seconds()/rl.cfg.Window.Seconds()
	if overlap < 0 {
		overlap = 0
	}
	effective := w.prevCount*overlap + w.currCount
	resetAt = w.currStart.Add(rl.cfg.Window)

	if effective >= float64(rl.cfg.Max) {
		return 0, resetAt, false
	}

	w.currCount++
	remaining = int(float64(rl.cfg.Max) - effective - 1)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetAt, true
}

func (rl *rateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.windows {
		if now.Sub(w.currStart) >= 2*rl.cfg.Window {
			delete(rl.windows, key)
		}
	}
}

// RateLimit returns a middleware enforcing a per-key sliding window limit.
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset; rejected requests get 429 with a JSON body and
// Retry-After.
func RateLimit(cfg RateLimitConfig) Middleware {
	return rateLimitMiddleware(newRateLimiter(cfg))
}

// RateLimitWithCleanup is like RateLimit but also evicts idle keys every 2x
// the window duration until ctx is cancelled.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	rl := newRateLimiter(cfg)
	go func() {
		ticker := time.NewTicker(2 * cfg.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.cleanup(now)
			}
		}
	}()
	return rateLimitMiddleware(rl)
}

func rateLimitMiddleware(rl *rateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, resetAt, allowed := rl.allow(rl.keyFunc(r), time.Now())

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				retryAfter := time.Until(resetAt)
				if retryAfter < 0 {
					retryAfter = 0
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":    http.StatusTooManyRequests,
					"message": "rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// sessionOrIPKey keys by the named session cookie when present, otherwise by
// client IP (X-Forwarded-For, then X-Real-IP, then RemoteAddr).
func sessionOrIPKey(cookie string) func(*http.Request) string {
	return func(r *http.Request) string {
		if cookie != "" {
			if c, err := r.Cookie(cookie); err == nil && c.Value != "" {
				return "s:" + c.Value
			}
		}
		return "ip:" + clientIP(r)
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
