package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/guardkit/pkg/clientip"
)

// KeyFunc extracts a per-client key from the request. Requests with the
// same key resolved to the same limiter share one budget.
type KeyFunc func(r *http.Request) string

// ClientIPKey keys budgets by client IP, the usual choice for admission
// gates in front of authentication.
func ClientIPKey(r *http.Request) string {
	return clientip.GetIP(r)
}

// Middleware throttles requests before any other processing. The rule
// table picks the limiter name from path and method, and the registry
// admits or rejects.
//
// Storage failures fail open: a broken Redis must degrade throttling, not
// take the API down.
func Middleware(registry *Registry, rules Rules, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		keyFunc: ClientIPKey,
		onLimitReached: func(w http.ResponseWriter, r *http.Request, result *Result) {
			retryAfter := int(result.RetryAfter().Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := rules.Resolve(r.URL.Path, r.Method)

			result, err := registry.Admit(r.Context(), name, cfg.keyFunc(r))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				cfg.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	keyFunc        KeyFunc
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
}

// WithKeyFunc sets a custom key extraction function.
func WithKeyFunc(fn KeyFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.keyFunc = fn
		}
	}
}

// WithOnLimitReached sets a custom handler for rejected requests.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimitReached = fn
		}
	}
}
