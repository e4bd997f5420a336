package tenant

// DefaultSuperTenantID is the reserved tenant identifier for the platform
// tenant. Requests running under it are exempt from row-level isolation.
const DefaultSuperTenantID = "000000"

// Scope is the request-scoped tenant identity. It is created once per
// request from the validated session, carried in the request context, and
// discarded with it. A Scope is a value type and is never shared between
// requests.
type Scope struct {
	// TenantID is the active tenant identifier. Empty for unauthenticated
	// requests; data access with an empty id must fail closed.
	TenantID string

	// Super marks the platform tenant, which bypasses row-level isolation.
	Super bool
}

// NewScope builds a scope for the given tenant id, marking it super when it
// matches superTenantID.
func NewScope(tenantID, superTenantID string) Scope {
	return Scope{
		TenantID: tenantID,
		Super:    tenantID != "" && tenantID == superTenantID,
	}
}

// IsZero reports whether the scope carries no tenant identity at all.
func (s Scope) IsZero() bool {
	return s.TenantID == "" && !s.Super
}
