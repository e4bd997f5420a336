package admin_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/modules/admin"
	"github.com/dmitrymomot/guardkit/pkg/auth"
	"github.com/dmitrymomot/guardkit/pkg/authz"
	"github.com/dmitrymomot/guardkit/pkg/rowfilter"
)

// testStore backs the router tests in memory: accounts, hashes, authority
// snapshots per tenant, and the user listing guarded by rowfilter like the
// real storage.
type testStore struct {
	mu        sync.RWMutex
	users     map[string]*auth.User
	hashes    map[uuid.UUID][]byte
	snapshots map[string]*authz.Snapshot
	records   []admin.UserRecord
}

func newTestStore() *testStore {
	return &testStore{
		users:     make(map[string]*auth.User),
		hashes:    make(map[uuid.UUID][]byte),
		snapshots: make(map[string]*authz.Snapshot),
	}
}

func (s *testStore) addUser(user *auth.User, hash []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.TenantID+"/"+user.Username] = user
	s.hashes[user.ID] = hash
	s.records = append(s.records, admin.UserRecord{
		ID:        user.ID,
		Username:  user.Username,
		TenantID:  user.TenantID,
		Active:    user.Active,
		RoleIDs:   user.RoleIDs,
		CreatedAt: user.CreatedAt,
	})
}

func (s *testStore) setSnapshot(tenantID string, snap *authz.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[tenantID] = snap
}

func (s *testStore) GetUserByUsername(ctx context.Context, tenantID, username string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[tenantID+"/"+username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (s *testStore) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.hashes[userID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return hash, nil
}

func (s *testStore) Snapshot(ctx context.Context, userID uuid.UUID, tenantID string) (*authz.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if snap, ok := s.snapshots[tenantID]; ok {
		return snap, nil
	}
	return &authz.Snapshot{}, nil
}

func (s *testStore) ListUsers(ctx context.Context) ([]admin.UserRecord, error) {
	return rowfilter.Query(ctx, rowfilter.FromContext(ctx),
		func(ctx context.Context, f rowfilter.Filter) ([]admin.UserRecord, error) {
			s.mu.RLock()
			defer s.mu.RUnlock()

			var out []admin.UserRecord
			for _, rec := range s.records {
				if f.Unfiltered() || rec.TenantID == f.TenantID() {
					out = append(out, rec)
				}
			}
			return out, nil
		})
}
