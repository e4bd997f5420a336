package auth_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/pkg/auth"
	"github.com/dmitrymomot/guardkit/pkg/authz"
)

// mockStorage is an in-memory auth.Storage keyed by (tenant, username).
type mockStorage struct {
	mu     sync.RWMutex
	users  map[string]*auth.User
	hashes map[uuid.UUID][]byte
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		users:  make(map[string]*auth.User),
		hashes: make(map[uuid.UUID][]byte),
	}
}

func (m *mockStorage) addUser(user *auth.User, hash []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.TenantID+"/"+user.Username] = user
	m.hashes[user.ID] = hash
}

func (m *mockStorage) GetUserByUsername(ctx context.Context, tenantID, username string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[tenantID+"/"+username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (m *mockStorage) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hash, ok := m.hashes[userID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return hash, nil
}

// mockSnapshots returns a fixed snapshot for every user.
type mockSnapshots struct {
	snapshot *authz.Snapshot
	err      error
}

func (m *mockSnapshots) Snapshot(ctx context.Context, userID uuid.UUID, tenantID string) (*authz.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot, nil
}
