package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/guardkit/pkg/auth"
	"github.com/dmitrymomot/guardkit/pkg/authz"
	"github.com/dmitrymomot/guardkit/pkg/session"
	"github.com/dmitrymomot/guardkit/pkg/tenant"
)

var testSnapshot = &authz.Snapshot{
	Roles: []authz.Role{
		{ID: 1, Active: true, MenuIDs: []int64{1}, PermissionIDs: []int64{10}},
	},
	Package: &authz.Package{ID: 1, Active: true, MenuIDs: []int64{1}, PermissionIDs: []int64{10}},
	Menus:   []authz.Menu{{ID: 1, Name: "Users", Path: "/users", Sort: 1}},
	Permissions: []authz.Permission{
		{ID: 10, MenuID: 1, Code: "system:user:list", URL: "/api/users", Method: "GET"},
	},
}

func newTestService(t *testing.T, storage *mockStorage) (*auth.Service, *session.Manager) {
	t.Helper()

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	sessions := session.NewManager(session.WithStore(store), session.WithTTL(time.Minute))

	svc := auth.NewService(storage, &mockSnapshots{snapshot: testSnapshot}, sessions,
		auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
	)
	return svc, sessions
}

func addTestUser(t *testing.T, storage *mockStorage, username, password, tenantID string, active bool) *auth.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &auth.User{
		ID:       uuid.New(),
		Username: username,
		TenantID: tenantID,
		Active:   active,
		RoleIDs:  []int64{1},
	}
	storage.addUser(user, hash)
	return user
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success mints a session with aggregated authorities", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		user := addTestUser(t, storage, "alice", "s3cret", "acme", true)
		svc, sessions := newTestService(t, storage)

		sess, err := svc.Authenticate(ctx, "alice", "s3cret", "acme", auth.Metadata{IP: "10.0.0.1", Browser: "Firefox"})
		require.NoError(t, err)

		assert.Equal(t, user.ID, sess.UserID)
		assert.Equal(t, "acme", sess.TenantID)
		assert.Equal(t, []string{"system:user:list"}, sess.Authorities)
		assert.Equal(t, "10.0.0.1", sess.IP)
		assert.False(t, sess.SuperAdmin)
		require.NotEmpty(t, sess.Token)

		// The minted token validates against the shared store.
		got, err := sessions.Validate(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
	})

	t.Run("username is normalized before lookup", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "alice", "s3cret", "acme", true)
		svc, _ := newTestService(t, storage)

		_, err := svc.Authenticate(ctx, "  ALICE ", "s3cret", "acme", auth.Metadata{})
		assert.NoError(t, err)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "alice", "s3cret", "acme", true)
		svc, _ := newTestService(t, storage)

		_, errMissing := svc.Authenticate(ctx, "nobody", "s3cret", "acme", auth.Metadata{})
		_, errWrongPw := svc.Authenticate(ctx, "alice", "wrong", "acme", auth.Metadata{})

		assert.ErrorIs(t, errMissing, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, auth.ErrInvalidCredentials)
		assert.Equal(t, errMissing.Error(), errWrongPw.Error())
	})

	t.Run("same username in another tenant is a different account", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "alice", "acme-pw", "acme", true)
		addTestUser(t, storage, "alice", "globex-pw", "globex", true)
		svc, _ := newTestService(t, storage)

		_, err := svc.Authenticate(ctx, "alice", "acme-pw", "globex", auth.Metadata{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		sess, err := svc.Authenticate(ctx, "alice", "globex-pw", "globex", auth.Metadata{})
		require.NoError(t, err)
		assert.Equal(t, "globex", sess.TenantID)
	})

	t.Run("disabled account", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "alice", "s3cret", "acme", false)
		svc, _ := newTestService(t, storage)

		_, err := svc.Authenticate(ctx, "alice", "s3cret", "acme", auth.Metadata{})
		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})

	t.Run("root in super tenant gets the super admin session", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "root", "s3cret", tenant.DefaultSuperTenantID, true)
		svc, _ := newTestService(t, storage)

		sess, err := svc.Authenticate(ctx, "root", "s3cret", tenant.DefaultSuperTenantID, auth.Metadata{})
		require.NoError(t, err)
		assert.True(t, sess.SuperAdmin)
		assert.Equal(t, []string{authz.AllPermissionCode}, sess.Authorities)
	})

	t.Run("root in a regular tenant is not super admin", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "root", "s3cret", "acme", true)
		svc, _ := newTestService(t, storage)

		sess, err := svc.Authenticate(ctx, "root", "s3cret", "acme", auth.Metadata{})
		require.NoError(t, err)
		assert.False(t, sess.SuperAdmin)
	})

	t.Run("multiple logins keep earlier sessions live", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "alice", "s3cret", "acme", true)
		svc, sessions := newTestService(t, storage)

		first, err := svc.Authenticate(ctx, "alice", "s3cret", "acme", auth.Metadata{})
		require.NoError(t, err)
		second, err := svc.Authenticate(ctx, "alice", "s3cret", "acme", auth.Metadata{})
		require.NoError(t, err)

		_, err = sessions.Validate(ctx, first.Token)
		assert.NoError(t, err)
		_, err = sessions.Validate(ctx, second.Token)
		assert.NoError(t, err)
	})

	t.Run("snapshot failure surfaces as a hard error", func(t *testing.T) {
		t.Parallel()

		storage := newMockStorage()
		addTestUser(t, storage, "alice", "s3cret", "acme", true)

		store := session.NewMemoryStore(0)
		t.Cleanup(func() { _ = store.Close() })
		sessions := session.NewManager(session.WithStore(store))

		wantErr := errors.New("db down")
		svc := auth.NewService(storage, &mockSnapshots{err: wantErr}, sessions,
			auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
		)

		_, err := svc.Authenticate(ctx, "alice", "s3cret", "acme", auth.Metadata{})
		assert.ErrorIs(t, err, wantErr)
	})
}
