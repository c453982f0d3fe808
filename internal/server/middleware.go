package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// RequestIDHeader carries the per-request identifier.
	RequestIDHeader = "X-Request-ID"

	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 10 * time.Minute
)

// RateLimiter manages per-client token buckets keyed by remote address.
type RateLimiter struct {
	limiters          map[string]*limiterEntry
	mu                sync.Mutex
	requestsPerMinute int
	perSecond         rate.Limit
	burst             int
	stopCh            chan struct{}
	stopOnce          sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter and starts its cleanup goroutine. Call
// Stop to release it.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters:          make(map[string]*limiterEntry),
		requestsPerMinute: requestsPerMinute,
		perSecond:         rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:             burst,
		stopCh:            make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether a request from client may proceed now.
func (rl *RateLimiter) Allow(client string) bool {
	return rl.entry(client).limiter.Allow()
}

// Remaining estimates the tokens left for client.
func (rl *RateLimiter) Remaining(client string) int {
	tokens := int(rl.entry(client).limiter.Tokens())
	if tokens < 0 {
		return 0
	}
	return tokens
}

func (rl *RateLimiter) entry(client string) *limiterEntry {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[client]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.perSecond, rl.burst)}
		rl.limiters[client] = e
	}
	e.lastSeen = time.Now()
	return e
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evict(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) evict(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for client, e := range rl.limiters {
		if now.Sub(e.lastSeen) > limiterTTL {
			delete(rl.limiters, client)
			removed++
		}
	}
	return removed
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware rejects requests over the limit with 429 and a JSON error body.
func (rl *RateLimiter) Middleware(logger *zap.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r)
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.requestsPerMinute))

		if !rl.Allow(client) {
			retryAfter := 1
			if rl.perSecond > 0 {
				if secs := int(1 / float64(rl.perSecond)); secs > retryAfter {
					retryAfter = secs
				}
			}
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

			logger.Warn("rate limit exceeded",
				zap.String("op", "server.RateLimiter"),
				zap.String("client", client),
				zap.String("requestID", w.Header().Get(RequestIDHeader)),
				zap.Int("retryAfter", retryAfter),
			)
			writeJSON(logger, w, http.StatusTooManyRequests, map[string]string{
				"error": fmt.Sprintf("too many requests, retry after %d seconds", retryAfter),
			})
			return
		}

		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", rl.Remaining(client)))
		next.ServeHTTP(w, r)
	})
}

// RequestID assigns every request an identifier, reusing a well-formed one
// supplied by the caller, and echoes it in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		r.Header.Set(RequestIDHeader, id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
