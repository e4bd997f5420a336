package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript increments a counter and starts its expiry window only when
// the counter is fresh, so concurrent first requests agree on the window.
var incrScript = redis.NewScript(`
local current = redis.call('INCRBY', KEYS[1], ARGV[1])
if current == tonumber(ARGV[1]) then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {current, redis.call('PTTL', KEYS[1])}
`)

// RedisStore implements Store backed by Redis, sharing counters across
// all nodes of the deployment.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix overrides the default "guardkit:ratelimit" key prefix.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "guardkit:ratelimit",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RedisStore) key(key string) string {
	return s.keyPrefix + ":" + key
}

// IncrementAndGet atomically increments the counter for the given key.
func (s *RedisStore) IncrementAndGet(ctx context.Context, key string, incr int, window time.Duration) (int64, time.Duration, error) {
	res, err := incrScript.Run(ctx, s.client, []string{s.key(key)}, incr, window.Milliseconds()).Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit: increment %q: %w", key, err)
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("ratelimit: increment %q: unexpected script reply", key)
	}

	current, ok := res[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("ratelimit: increment %q: unexpected counter type %T", key, res[0])
	}
	ttlMillis, ok := res[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("ratelimit: increment %q: unexpected ttl type %T", key, res[1])
	}

	ttl := time.Duration(ttlMillis) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return current, ttl, nil
}

// Get returns the current counter value and TTL for the given key.
func (s *RedisStore) Get(ctx context.Context, key string) (int64, time.Duration, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.key(key))
	ttlCmd := pipe.PTTL(ctx, s.key(key))

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, 0, fmt.Errorf("ratelimit: get %q: %w", key, err)
	}

	current, err := getCmd.Int64()
	if err == redis.Nil {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit: get %q: %w", key, err)
	}

	ttl, err := ttlCmd.Result()
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit: ttl %q: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return current, ttl, nil
}

// Delete removes the given key from the store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("ratelimit: delete %q: %w", key, err)
	}
	return nil
}
