package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/guardkit/pkg/authz"
	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
	"github.com/dmitrymomot/guardkit/pkg/session"
	"github.com/dmitrymomot/guardkit/pkg/tenant"
)

// DefaultSuperAdminUsername is the reserved username that, within the super
// tenant, bypasses tenant isolation and the package ceiling.
const DefaultSuperAdminUsername = "root"

// Service verifies credentials and mints sessions. One successful call
// creates one session; existing sessions for the user stay live.
type Service struct {
	storage       Storage
	hasher        PasswordHasher
	snapshots     authz.SnapshotSource
	sessions      *session.Manager
	logger        *slog.Logger
	superTenantID string
	superAdmin    string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHasher sets a custom password hasher. Defaults to bcrypt.
func WithHasher(hasher PasswordHasher) ServiceOption {
	return func(s *Service) {
		if hasher != nil {
			s.hasher = hasher
		}
	}
}

// WithSuperTenantID overrides the reserved super tenant id.
func WithSuperTenantID(id string) ServiceOption {
	return func(s *Service) {
		if id != "" {
			s.superTenantID = id
		}
	}
}

// WithSuperAdminUsername overrides the reserved super admin username.
func WithSuperAdminUsername(username string) ServiceOption {
	return func(s *Service) {
		if username != "" {
			s.superAdmin = username
		}
	}
}

// NewService creates an authentication service.
func NewService(storage Storage, snapshots authz.SnapshotSource, sessions *session.Manager, opts ...ServiceOption) *Service {
	s := &Service{
		storage:       storage,
		hasher:        NewBcryptHasher(0),
		snapshots:     snapshots,
		sessions:      sessions,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		superTenantID: tenant.DefaultSuperTenantID,
		superAdmin:    DefaultSuperAdminUsername,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Authenticate verifies (username, password) within a tenant and mints a
// session on success.
//
// Unknown accounts and wrong passwords both return ErrInvalidCredentials to
// prevent username enumeration; the internal cause is logged at debug level
// only. A disabled account returns ErrAccountDisabled.
func (s *Service) Authenticate(ctx context.Context, username, password, tenantID string, meta Metadata) (*session.Session, error) {
	username = sanitizer.NormalizeUsername(username)

	user, err := s.storage.GetUserByUsername(ctx, tenantID, username)
	if err != nil {
		s.logger.DebugContext(ctx, "login failed: account lookup",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()),
		)
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	hash, err := s.storage.GetPasswordHash(ctx, user.ID)
	if err != nil {
		s.logger.DebugContext(ctx, "login failed: hash lookup",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()),
		)
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(hash, []byte(password)); err != nil {
		s.logger.DebugContext(ctx, "login failed: password mismatch",
			slog.String("tenant_id", tenantID),
		)
		return nil, ErrInvalidCredentials
	}

	superAdmin := tenantID == s.superTenantID && username == s.superAdmin

	snap, err := s.snapshots.Snapshot(ctx, user.ID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load authority snapshot: %w", err)
	}

	result := authz.Resolve(authz.User{
		ID:         user.ID,
		Username:   username,
		SuperAdmin: superAdmin,
	}, snap)

	issued, err := s.sessions.Issue(ctx, &session.Session{
		UserID:      user.ID,
		Username:    username,
		TenantID:    tenantID,
		RoleIDs:     user.RoleIDs,
		SuperAdmin:  superAdmin,
		Authorities: result.PermissionCodes,
		IP:          meta.IP,
		Browser:     meta.Browser,
	})
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.logger.InfoContext(ctx, "login succeeded",
		slog.String("tenant_id", tenantID),
		slog.String("user_id", user.ID.String()),
	)

	return issued, nil
}
