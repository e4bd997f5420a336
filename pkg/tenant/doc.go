// Package tenant carries the per-request tenant identity through the
// request context.
//
// A Scope holds the active tenant id and a flag marking the reserved
// platform tenant. The scope is derived once per request from the validated
// session by the Middleware and read many times during request handling; it
// lives in the context.Context, so it is structurally request-local and is
// torn down with the request on every exit path.
//
//	r.Use(tenant.Middleware(func(r *http.Request) (tenant.Scope, bool) {
//		sess, ok := session.FromContext(r.Context())
//		if !ok {
//			return tenant.Scope{}, false
//		}
//		return tenant.NewScope(sess.TenantID, tenant.DefaultSuperTenantID), true
//	}))
//
// Data-access code never reads the scope implicitly; it derives an explicit
// row filter from it (see package rowfilter) so that a missing tenant id is
// a first-class fail-closed branch.
package tenant
