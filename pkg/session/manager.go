package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager mints, validates and revokes sessions on top of a Store.
type Manager struct {
	store     Store
	transport Transport
	ttl       time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithTransport sets how tokens are extracted from requests.
// Defaults to the Authorization bearer header.
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		if transport != nil {
			m.transport = transport
		}
	}
}

// WithTTL sets the session lifetime. Defaults to 30 minutes.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewManager creates a session manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		ttl:       30 * time.Minute,
		transport: NewBearerTransport("Authorization"),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(5 * time.Minute)
	}

	return m
}

// NewFromConfig creates a Manager from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := []Option{
		WithTTL(cfg.TTL),
		WithTransport(NewBearerTransport(cfg.Header)),
	}

	configOpts = append(configOpts, opts...)

	return NewManager(configOpts...)
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue mints an opaque token for the session and persists the record with
// the configured TTL. The input session's ID, Token and LoginAt are set
// here; existing sessions for the same user are left untouched.
func (m *Manager) Issue(ctx context.Context, session *Session) (*Session, error) {
	if session == nil {
		return nil, ErrInvalidSession
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session.ID = uuid.New()
	session.Token = token
	session.LoginAt = time.Now()

	if err := m.store.Create(ctx, session, m.ttl); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate resolves a token to its live session in a single store read.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	return m.store.Get(ctx, token)
}

// Revoke invalidates a token. Revoking twice is the same as once.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// RevokeAll invalidates every session of the user, across all nodes that
// share the store.
func (m *Manager) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return m.store.DeleteByUserID(ctx, userID)
}

// Sessions returns the user's live sessions, for device listings.
func (m *Manager) Sessions(ctx context.Context, userID uuid.UUID) ([]*Session, error) {
	tokens, err := m.store.TokensByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, 0, len(tokens))
	for _, token := range tokens {
		session, err := m.store.Get(ctx, token)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				continue // expired between enumeration and read
			}
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// generateToken creates a cryptographically secure opaque token. 32 random
// bytes, base64url without padding: no embedded structure to parse or forge.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
