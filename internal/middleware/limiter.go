package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"souq-be/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Admin reset and other destructive calls (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// Event streams open once per view and stay open
	limitStream = rate.Limit(1)
	burstStream = 10

	visitorIdle = 3 * time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client and tier.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter builds a limiter whose general tier allows limit requests
// per second with the given burst.
func NewRateLimiter(limit float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(limit),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup removes visitors idle for longer than maxIdle and returns how many
// were dropped.
func (l *RateLimiter) Cleanup(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	dropped := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > maxIdle {
			delete(l.visitors, key)
			dropped++
		}
	}
	return dropped
}

// Run cleans up idle visitors every minute until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup(visitorIdle)
		}
	}
}

// Middleware rejects requests over the client's quota with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := l.resolveRateTier(r)
		key := clientIdentity(r) + ":" + tier

		if !l.getVisitor(key, limit, burst).Allow() {
			w.Header().Set("Retry-After", "1")
			utils.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
				"notice": map[string]string{"level": "error", "message": "too many requests"},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIdentity prefers the X-User-ID header, then X-Device-ID, then the
// remote IP.
func clientIdentity(r *http.Request) string {
	if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
		return "user:" + userID
	}
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func (l *RateLimiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if strings.HasPrefix(r.URL.Path, "/api/admin/") {
		return limitStrict, burstStrict, "strict"
	}
	if r.URL.Path == "/api/events" {
		return limitStream, burstStream, "stream"
	}
	return l.limit, l.burst, "general"
}
