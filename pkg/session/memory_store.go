package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory storage. Intended for tests
// and single-process development; production deployments share a RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	byUser   map[uuid.UUID]map[string]struct{}
	ticker   *time.Ticker
	done     chan struct{}
	once     sync.Once
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory session store. A positive
// cleanupInterval starts a background sweep of expired entries.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		byUser:   make(map[uuid.UUID]map[string]struct{}),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Create stores a copy of the session and indexes its token.
func (m *MemoryStore) Create(ctx context.Context, session *Session, ttl time.Duration) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.Token] = memoryEntry{
		session:   *session,
		expiresAt: time.Now().Add(ttl),
	}

	tokens, ok := m.byUser[session.UserID]
	if !ok {
		tokens = make(map[string]struct{})
		m.byUser[session.UserID] = tokens
	}
	tokens[session.Token] = struct{}{}

	return nil
}

// Get retrieves a live session by token.
func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	entry, exists := m.sessions[token]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		m.evict(token, entry.session.UserID)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	sessionCopy := entry.session
	return &sessionCopy, nil
}

// Delete removes a session by token. No-op for absent tokens.
func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, exists := m.sessions[token]; exists {
		m.evict(token, entry.session.UserID)
	}
	return nil
}

// DeleteByUserID removes all sessions indexed for the user.
func (m *MemoryStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token := range m.byUser[userID] {
		delete(m.sessions, token)
	}
	delete(m.byUser, userID)
	return nil
}

// TokensByUserID returns the user's live tokens.
func (m *MemoryStore) TokensByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	tokens := make([]string, 0, len(m.byUser[userID]))
	for token := range m.byUser[userID] {
		if entry, exists := m.sessions[token]; exists && now.Before(entry.expiresAt) {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

// evict removes a token and its index entry. Caller holds the write lock.
func (m *MemoryStore) evict(token string, userID uuid.UUID) {
	delete(m.sessions, token)
	if tokens, ok := m.byUser[userID]; ok {
		delete(tokens, token)
		if len(tokens) == 0 {
			delete(m.byUser, userID)
		}
	}
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.removeExpired()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for token, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			m.evict(token, entry.session.UserID)
		}
	}
}
