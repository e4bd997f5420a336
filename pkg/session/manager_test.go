package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/session"
)

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	return session.NewManager(session.WithStore(store), session.WithTTL(time.Minute))
}

func TestManagerIssue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("issues opaque token and persists record", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		issued, err := m.Issue(ctx, &session.Session{
			UserID:      uuid.New(),
			Username:    "alice",
			TenantID:    "acme",
			Authorities: []string{"system:user:list"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, issued.Token)
		assert.NotEqual(t, uuid.UUID{}, issued.ID)
		assert.False(t, issued.LoginAt.IsZero())

		// Round trip: validate immediately after issuance.
		got, err := m.Validate(ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, issued.UserID, got.UserID)
		assert.Equal(t, issued.Username, got.Username)
		assert.Equal(t, issued.TenantID, got.TenantID)
		assert.Equal(t, issued.Authorities, got.Authorities)
	})

	t.Run("tokens are unique across issuances", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		seen := make(map[string]bool)
		for range 100 {
			issued, err := m.Issue(ctx, &session.Session{UserID: uuid.New()})
			require.NoError(t, err)
			assert.False(t, seen[issued.Token])
			seen[issued.Token] = true
		}
	})

	t.Run("issuing does not revoke existing sessions", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		userID := uuid.New()

		first, err := m.Issue(ctx, &session.Session{UserID: userID})
		require.NoError(t, err)
		second, err := m.Issue(ctx, &session.Session{UserID: userID})
		require.NoError(t, err)

		_, err = m.Validate(ctx, first.Token)
		assert.NoError(t, err)
		_, err = m.Validate(ctx, second.Token)
		assert.NoError(t, err)
	})

	t.Run("nil session is rejected", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		_, err := m.Issue(ctx, nil)
		assert.ErrorIs(t, err, session.ErrInvalidSession)
	})
}

func TestManagerValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty token fails closed", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		_, err := m.Validate(ctx, "")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("unknown token fails closed", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		_, err := m.Validate(ctx, "bogus")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestManagerRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("revoked token never validates again", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		issued, err := m.Issue(ctx, &session.Session{UserID: uuid.New()})
		require.NoError(t, err)

		require.NoError(t, m.Revoke(ctx, issued.Token))

		_, err = m.Validate(ctx, issued.Token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		issued, err := m.Issue(ctx, &session.Session{UserID: uuid.New()})
		require.NoError(t, err)

		require.NoError(t, m.Revoke(ctx, issued.Token))
		require.NoError(t, m.Revoke(ctx, issued.Token))
		require.NoError(t, m.Revoke(ctx, ""))
	})
}

func TestManagerRevokeAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("invalidates every session of the user, nobody else's", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		alice := uuid.New()
		bob := uuid.New()

		// Two concurrent logins for alice.
		var wg sync.WaitGroup
		tokens := make([]string, 2)
		for i := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				issued, err := m.Issue(ctx, &session.Session{UserID: alice})
				require.NoError(t, err)
				tokens[i] = issued.Token
			}()
		}
		wg.Wait()

		bobSession, err := m.Issue(ctx, &session.Session{UserID: bob})
		require.NoError(t, err)

		require.NoError(t, m.RevokeAll(ctx, alice))

		for _, token := range tokens {
			_, err := m.Validate(ctx, token)
			assert.ErrorIs(t, err, session.ErrSessionNotFound)
		}

		_, err = m.Validate(ctx, bobSession.Token)
		assert.NoError(t, err)
	})
}

func TestManagerSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	m := newTestManager(t)
	userID := uuid.New()

	_, err := m.Issue(ctx, &session.Session{UserID: userID, IP: "10.0.0.1", Browser: "Firefox"})
	require.NoError(t, err)
	_, err = m.Issue(ctx, &session.Session{UserID: userID, IP: "10.0.0.2", Browser: "Chrome"})
	require.NoError(t, err)

	sessions, err := m.Sessions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	ips := []string{sessions[0].IP, sessions[1].IP}
	assert.ElementsMatch(t, []string{"10.0.0.1", "10.0.0.2"}, ips)
}

func TestSessionHasAuthority(t *testing.T) {
	t.Parallel()

	t.Run("checks the authority set", func(t *testing.T) {
		t.Parallel()

		s := &session.Session{Authorities: []string{"system:user:list"}}
		assert.True(t, s.HasAuthority("system:user:list"))
		assert.False(t, s.HasAuthority("system:user:delete"))
	})

	t.Run("super admin holds everything", func(t *testing.T) {
		t.Parallel()

		s := &session.Session{SuperAdmin: true}
		assert.True(t, s.HasAuthority("anything"))
	})

	t.Run("nil session holds nothing", func(t *testing.T) {
		t.Parallel()

		var s *session.Session
		assert.False(t, s.HasAuthority("anything"))
	})
}
