package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the interface for session persistence. Expiry is owned by
// the store: implementations must expire the token -> session mapping
// natively after the TTL, not rely on callers comparing timestamps.
type Store interface {
	// Create stores a new session under its token with the given TTL and
	// indexes the token for the session's user.
	Create(ctx context.Context, session *Session, ttl time.Duration) error

	// Get retrieves a live session by token. Returns ErrSessionNotFound for
	// unknown and expired tokens alike; a store failure is also reported as
	// not found so validation fails closed.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Deleting an absent token is a
	// no-op, not an error.
	Delete(ctx context.Context, token string) error

	// DeleteByUserID removes every session indexed for the user, including
	// ones issued by other processes sharing the store.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// TokensByUserID returns the live tokens indexed for the user.
	TokensByUserID(ctx context.Context, userID uuid.UUID) ([]string, error)
}
