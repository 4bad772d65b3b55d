package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// KeyFunc picks the bucket a request is charged to. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

// ByRemoteAddr keys on the client IP. Run chi's RealIP first so proxied
// requests are charged to the original client.
func ByRemoteAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ByEstate keys on the path segment following "/estates/", so every client
// working on one estate shares a bucket. Requests outside an estate are not
// limited.
func ByEstate(r *http.Request) string {
	_, rest, ok := strings.Cut(r.URL.Path, "/estates/")
	if !ok {
		return ""
	}
	estateID, _, _ := strings.Cut(rest, "/")
	return estateID
}

type keyedLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimit applies a token bucket per key. Stale limiter entries are cleaned
// up every 10 minutes to prevent unbounded memory growth.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int, key KeyFunc) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*keyedLimiter)
	)

	// Background cleanup of stale limiters.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mu.Lock()
				cutoff := time.Now().Add(-30 * time.Minute)
				for k, kl := range limiters {
					if kl.lastAccess.Before(cutoff) {
						delete(limiters, k)
					}
				}
				mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	limiterFor := func(k string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		kl, ok := limiters[k]
		if !ok {
			kl = &keyedLimiter{
				limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
				lastAccess: time.Now(),
			}
			limiters[k] = kl
		} else {
			kl.lastAccess = time.Now()
		}
		return kl.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiterFor(k).Allow() {
				log.Debug().Str("key", k).Str("path", r.URL.Path).Msg("rate limited")
				w.Header().Set("Content-Type", "application/problem+json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
