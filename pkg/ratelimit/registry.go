package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// LimiterConfig sizes one named limiter.
type LimiterConfig struct {
	// WindowSeconds is the length of the counting window.
	WindowSeconds int `yaml:"window_seconds"`

	// MaxRequests is the number of requests admitted per window.
	MaxRequests int `yaml:"max_requests"`
}

// Window returns the window as a duration.
func (c LimiterConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// DefaultLimiterConfigs returns the baseline sizing for the three named
// limiters. Callers override individual entries via NewRegistry.
func DefaultLimiterConfigs() map[string]LimiterConfig {
	return map[string]LimiterConfig{
		LimiterDefault:   {WindowSeconds: 1, MaxRequests: 100},
		LimiterHigh:      {WindowSeconds: 1, MaxRequests: 10},
		LimiterSensitive: {WindowSeconds: 60, MaxRequests: 5},
	}
}

// Registry holds the closed set of named limiters. All requests resolved
// to the same name share one budget, regardless of which node serves them
// when the store is Redis.
type Registry struct {
	limiters map[string]Limiter
}

// NewRegistry builds limiters for every allowed name on the given store.
// Entries in configs override the defaults; names outside the allow-list
// are rejected rather than silently registered.
func NewRegistry(store Store, configs map[string]LimiterConfig) (*Registry, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	merged := DefaultLimiterConfigs()
	for name, cfg := range configs {
		if !KnownLimiter(name) {
			return nil, fmt.Errorf("ratelimit: unknown limiter %q in config", name)
		}
		merged[name] = cfg
	}

	limiters := make(map[string]Limiter, len(merged))
	for name, cfg := range merged {
		limiter, err := NewFixedWindow(store, cfg.MaxRequests, cfg.Window())
		if err != nil {
			return nil, fmt.Errorf("ratelimit: limiter %q: %w", name, err)
		}
		limiters[name] = limiter
	}

	return &Registry{limiters: limiters}, nil
}

// Admit consumes one slot from the named limiter for the given key.
// Unknown names fall back to the default limiter and share its budget.
func (r *Registry) Admit(ctx context.Context, name, key string) (*Result, error) {
	name = normalizeName(name)
	return r.limiters[name].Allow(ctx, name+":"+key)
}

// Status reports the named limiter's state for the key without consuming
// a slot.
func (r *Registry) Status(ctx context.Context, name, key string) (*Result, error) {
	name = normalizeName(name)
	return r.limiters[name].Status(ctx, name+":"+key)
}

func normalizeName(name string) string {
	if KnownLimiter(name) {
		return name
	}
	return LimiterDefault
}
