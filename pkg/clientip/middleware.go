package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in
// context, so downstream handlers don't re-parse proxy headers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SetIPToContext(r.Context(), GetIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
