package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an account within a tenant. The same username may exist in
// different tenants as unrelated accounts.
type User struct {
	ID        uuid.UUID
	Username  string
	TenantID  string
	Active    bool
	RoleIDs   []int64
	CreatedAt time.Time
}

// Storage defines the lookups credential verification needs.
type Storage interface {
	// GetUserByUsername retrieves a user by (username, tenant). Returns
	// ErrUserNotFound if no such account exists in the tenant.
	GetUserByUsername(ctx context.Context, tenantID, username string) (*User, error)

	// GetPasswordHash retrieves the stored password hash for a user.
	GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// Metadata is per-login client information recorded on the session.
type Metadata struct {
	IP      string
	Browser string
}
