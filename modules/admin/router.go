package admin

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/guardkit/pkg/auth"
	"github.com/dmitrymomot/guardkit/pkg/authz"
	"github.com/dmitrymomot/guardkit/pkg/clientip"
	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
	"github.com/dmitrymomot/guardkit/pkg/requestid"
	"github.com/dmitrymomot/guardkit/pkg/session"
	"github.com/dmitrymomot/guardkit/pkg/tenant"
)

// RouterDeps carries the wired services the router mounts.
type RouterDeps struct {
	Auth      *auth.Service
	Sessions  *session.Manager
	Snapshots authz.SnapshotSource
	Users     UserLister

	// Limiter and Rules throttle every request before session handling.
	// A nil Limiter disables throttling (tests, mostly).
	Limiter *ratelimit.Registry
	Rules   ratelimit.Rules

	// SuperTenantID identifies the operator tenant. Empty falls back to
	// tenant.DefaultSuperTenantID.
	SuperTenantID string

	Logger *slog.Logger
}

// DefaultRules is the rule table for the admin API: login attempts burn
// the sensitive budget, everything else the default one.
func DefaultRules() ratelimit.Rules {
	return ratelimit.Rules{
		{Match: "/auth/login:post", Limiter: ratelimit.LimiterSensitive},
	}
}

// Router assembles the admin API. Middleware order is load-bearing:
// throttling first, then session resolution, then tenant scope derivation
// from the session.
func Router(deps RouterDeps) chi.Router {
	superTenantID := deps.SuperTenantID
	if superTenantID == "" {
		superTenantID = tenant.DefaultSuperTenantID
	}

	h := NewHandler(deps.Auth, deps.Sessions, deps.Snapshots, deps.Users, deps.Logger)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	if deps.Limiter != nil {
		r.Use(ratelimit.Middleware(deps.Limiter, deps.Rules))
	}
	r.Use(deps.Sessions.Middleware)
	r.Use(tenant.Middleware(ScopeFromSession(superTenantID)))

	r.Post("/auth/login", h.Login)

	r.Group(func(pr chi.Router) {
		pr.Use(deps.Sessions.RequireAuth)
		pr.Use(tenant.RequireScope(nil))

		pr.Post("/auth/logout", h.Logout)
		pr.Post("/auth/logout-all", h.LogoutAll)
		pr.Get("/me/permissions", h.MyPermissions)
		pr.Get("/me/sessions", h.MySessions)
		pr.Get("/users", h.ListUsers)
	})

	return r
}
