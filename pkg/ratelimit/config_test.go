package ratelimit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ratelimit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses limiters and ordered rules", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
limiters:
  high:
    window_seconds: 1
    max_requests: 10
  sensitive:
    window_seconds: 60
    max_requests: 5
rules:
  - match: /seckill/**
    limiter: high
  - match: /api/users:post
    limiter: sensitive
`)

		cfg, err := ratelimit.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.Limiters[ratelimit.LimiterHigh].MaxRequests)
		assert.Equal(t, 5, cfg.Limiters[ratelimit.LimiterSensitive].MaxRequests)

		require.Len(t, cfg.Rules, 2)
		assert.Equal(t, "/seckill/**", cfg.Rules[0].Match)
		assert.Equal(t, ratelimit.LimiterHigh, cfg.Rules[0].Limiter)

		// The parsed rule table resolves like the literal one.
		assert.Equal(t, ratelimit.LimiterHigh, cfg.Rules.Resolve("/seckill/orders", "GET"))
		assert.Equal(t, ratelimit.LimiterSensitive, cfg.Rules.Resolve("/api/users", "POST"))
		assert.Equal(t, ratelimit.LimiterDefault, cfg.Rules.Resolve("/api/users", "GET"))
	})

	t.Run("rejects unknown limiter names in sizing", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
limiters:
  custom:
    window_seconds: 1
    max_requests: 10
`)

		_, err := ratelimit.LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive sizing", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
limiters:
  high:
    window_seconds: 0
    max_requests: 10
`)

		_, err := ratelimit.LoadConfig(path)
		assert.ErrorIs(t, err, ratelimit.ErrInvalidWindow)
	})

	t.Run("rejects empty match", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
rules:
  - match: ""
    limiter: high
`)

		_, err := ratelimit.LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("keeps rules with unknown limiter names", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
rules:
  - match: /api/**
    limiter: hgih
`)

		cfg, err := ratelimit.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ratelimit.LimiterDefault, cfg.Rules.Resolve("/api/users", "GET"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ratelimit.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
