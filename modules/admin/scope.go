package admin

import (
	"net/http"

	"github.com/dmitrymomot/guardkit/pkg/session"
	"github.com/dmitrymomot/guardkit/pkg/tenant"
)

// ScopeFromSession derives the request's tenant scope from its validated
// session. Requests without a session carry no tenant identity, so data
// access for them fails closed.
func ScopeFromSession(superTenantID string) tenant.ScopeResolver {
	return func(r *http.Request) (tenant.Scope, bool) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			return tenant.Scope{}, false
		}
		return tenant.NewScope(sess.TenantID, superTenantID), true
	}
}
