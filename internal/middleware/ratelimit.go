package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/joanapinto/humsy/internal/ctxkeys"
)

// RateLimiter keeps a sliding window of request times per caller.
type RateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
	lastGC time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		lastGC: time.Now(),
	}
}

// Allow reports whether the caller is under the limit and records the
// request when it is.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.seen[key][:0]
	for _, at := range rl.seen[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= rl.limit {
		rl.seen[key] = recent
		return false
	}
	rl.seen[key] = append(recent, now)

	if now.Sub(rl.lastGC) > rl.window {
		rl.gc(cutoff)
		rl.lastGC = now
	}
	return true
}

// gc drops callers whose entire window has expired. Caller holds the lock.
func (rl *RateLimiter) gc(cutoff time.Time) {
	for key, times := range rl.seen {
		stale := true
		for _, at := range times {
			if at.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(rl.seen, key)
		}
	}
}

// RateLimitGenerate guards the plan-generation endpoint, which fans out to
// the AI backend. Limited per user (falling back to client IP) to 5
// generations per 15 minutes.
func RateLimitGenerate() func(http.HandlerFunc) http.HandlerFunc {
	limiter := NewRateLimiter(5, 15*time.Minute)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := ctxkeys.UserID(r.Context())
			if key == "" {
				key = clientIP(r)
			}

			if !limiter.Allow(key) {
				slog.Warn("rate limit exceeded", "caller", key, "path", r.URL.Path)
				http.Error(w, "Too many plan generations. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}

func clientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
