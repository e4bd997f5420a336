package session

import "time"

// Config holds session configuration.
type Config struct {
	// TTL is the session lifetime, enforced by the backing store.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Header is the request header carrying the bearer token.
	Header string `env:"SESSION_HEADER" envDefault:"Authorization"`

	// KeyPrefix namespaces session keys in the shared store.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"guardkit:session"`

	// StoreTimeout bounds each backing-store round-trip.
	StoreTimeout time.Duration `env:"SESSION_STORE_TIMEOUT" envDefault:"2s"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		TTL:          30 * time.Minute,
		Header:       "Authorization",
		KeyPrefix:    "guardkit:session",
		StoreTimeout: 2 * time.Second,
	}
}
