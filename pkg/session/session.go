package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record an opaque token resolves to. It carries
// everything request handling needs so that a single store round-trip
// authenticates a request: tenant identity, role set and the aggregated
// authority codes computed at login.
type Session struct {
	ID          uuid.UUID `json:"id"`
	Token       string    `json:"token"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	TenantID    string    `json:"tenant_id"`
	RoleIDs     []int64   `json:"role_ids,omitempty"`
	SuperAdmin  bool      `json:"super_admin"`
	Authorities []string  `json:"authorities,omitempty"`
	IP          string    `json:"ip,omitempty"`
	Browser     string    `json:"browser,omitempty"`
	LoginAt     time.Time `json:"login_at"`
}

// HasAuthority reports whether the session carries the given permission
// code. The super admin holds every authority.
func (s *Session) HasAuthority(code string) bool {
	if s == nil {
		return false
	}
	if s.SuperAdmin {
		return true
	}
	for _, a := range s.Authorities {
		if a == code {
			return true
		}
	}
	return false
}
