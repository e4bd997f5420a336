package tenant

import "net/http"

// ScopeResolver derives the tenant scope for a request, typically from the
// validated session. Returning false means the request carries no tenant
// identity; downstream data access then fails closed.
type ScopeResolver func(r *http.Request) (Scope, bool)

// ErrorHandler handles scope resolution failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

// Middleware creates HTTP middleware that derives the tenant scope for each
// request and adds it to the request context. Context propagation guarantees
// the scope never outlives the request, on any exit path.
func Middleware(resolve ScopeResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := resolve(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithScope(r.Context(), scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope creates middleware that rejects requests without a usable
// tenant scope. Super-tenant scopes pass without a tenant id; anything else
// must carry one.
func RequireScope(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := FromContext(r.Context())
			if !ok {
				errorHandler(w, r, ErrNoScopeInContext)
				return
			}
			if !scope.Super && scope.TenantID == "" {
				errorHandler(w, r, ErrMissingTenantID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
