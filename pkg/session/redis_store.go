package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a shared Redis instance. The token ->
// session mapping is a plain key with a native TTL; the per-user token
// index is a set, which makes cross-node revocation a SMEMBERS + DEL.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	opTimeout time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. Defaults to "guardkit:session".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithOpTimeout bounds every store round-trip. Defaults to 2s.
func WithOpTimeout(timeout time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if timeout > 0 {
			s.opTimeout = timeout
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "guardkit:session",
		opTimeout: 2 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RedisStore) tokenKey(token string) string {
	return s.keyPrefix + ":token:" + token
}

func (s *RedisStore) userKey(userID uuid.UUID) string {
	return s.keyPrefix + ":user:" + userID.String()
}

// Create persists the session with a native TTL and indexes its token for
// the user. Any failure is a hard error: an unpersisted session must never
// be handed to a client.
func (s *RedisStore) Create(ctx context.Context, session *Session, ttl time.Duration) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(session.Token), data, ttl)
	pipe.SAdd(ctx, s.userKey(session.UserID), session.Token)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return nil
}

// Get resolves a token in a single read. Store failures and timeouts are
// reported as not found, so callers fail closed.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrSessionNotFound, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Join(ErrSessionNotFound, err)
	}

	return &session, nil
}

// Delete revokes a token. Idempotent: revoking an absent token succeeds.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	// Look the session up first so the user index entry can be dropped too.
	// If the token is already gone there is nothing to unindex.
	data, err := s.client.Get(ctx, s.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return errors.Join(ErrStoreUnavailable, err)
	}

	var session Session
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.tokenKey(token))
	if err := json.Unmarshal(data, &session); err == nil {
		pipe.SRem(ctx, s.userKey(session.UserID), token)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return nil
}

// DeleteByUserID removes every token indexed for the user, including tokens
// issued by other nodes sharing the store.
func (s *RedisStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	tokens, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	pipe := s.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, s.tokenKey(token))
	}
	pipe.Del(ctx, s.userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return nil
}

// TokensByUserID returns the user's live tokens. Index entries whose
// sessions have expired are pruned as a side effect, keeping the index from
// accumulating dead tokens (the index itself has no TTL).
func (s *RedisStore) TokensByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	members, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	live := make([]string, 0, len(members))
	var stale []any
	for _, token := range members {
		exists, err := s.client.Exists(ctx, s.tokenKey(token)).Result()
		if err != nil {
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
		if exists > 0 {
			live = append(live, token)
		} else {
			stale = append(stale, token)
		}
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.userKey(userID), stale...).Err(); err != nil {
			return nil, fmt.Errorf("prune stale session index: %w", err)
		}
	}

	return live, nil
}
