package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
)

func newTestStore(t *testing.T) *ratelimit.MemoryStore {
	t.Helper()
	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)
	return store
}

func TestNewFixedWindow(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	t.Run("rejects nil store", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimit.NewFixedWindow(nil, 10, time.Second)
		assert.ErrorIs(t, err, ratelimit.ErrStoreRequired)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimit.NewFixedWindow(store, 0, time.Second)
		assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)
	})

	t.Run("rejects non-positive window", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimit.NewFixedWindow(store, 10, 0)
		assert.ErrorIs(t, err, ratelimit.ErrInvalidWindow)
	})
}

func TestFixedWindowAllow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("admits up to the limit then rejects", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewFixedWindow(newTestStore(t), 3, time.Minute)
		require.NoError(t, err)

		for i := range 3 {
			result, err := limiter.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d should be admitted", i+1)
		}

		result, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys have independent budgets", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewFixedWindow(newTestStore(t), 1, time.Minute)
		require.NoError(t, err)

		first, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		second, err := limiter.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, second.Allowed)
	})

	t.Run("window expiry restores the budget", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewFixedWindow(newTestStore(t), 1, 20*time.Millisecond)
		require.NoError(t, err)

		result, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, result.Allowed)

		result, err = limiter.Allow(ctx, "k")
		require.NoError(t, err)
		require.False(t, result.Allowed)

		time.Sleep(30 * time.Millisecond)

		result, err = limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("allow n consumes n slots", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewFixedWindow(newTestStore(t), 5, time.Minute)
		require.NoError(t, err)

		result, err := limiter.AllowN(ctx, "k", 5)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)

		result, err = limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewFixedWindow(newTestStore(t), 1, time.Minute)
		require.NoError(t, err)

		_, err = limiter.Allow(ctx, "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
	})
}

func TestFixedWindowStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	limiter, err := ratelimit.NewFixedWindow(newTestStore(t), 2, time.Minute)
	require.NoError(t, err)

	status, err := limiter.Status(ctx, "k")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 2, status.Remaining)

	_, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)

	// Status does not consume a slot.
	for range 3 {
		status, err = limiter.Status(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 1, status.Remaining)
	}
}

func TestFixedWindowReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	limiter, err := ratelimit.NewFixedWindow(newTestStore(t), 1, time.Minute)
	require.NoError(t, err)

	result, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, result.Allowed)

	require.NoError(t, limiter.Reset(ctx, "k"))

	result, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
