package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/auth"
	"github.com/dmitrymomot/guardkit/pkg/authz"
	"github.com/dmitrymomot/guardkit/pkg/clientip"
	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/rowfilter"
	"github.com/dmitrymomot/guardkit/pkg/session"
	"github.com/dmitrymomot/guardkit/pkg/useragent"
)

// UserLister is the tenant-scoped account listing the handler exposes.
type UserLister interface {
	ListUsers(ctx context.Context) ([]UserRecord, error)
}

// Handler serves the admin API endpoints.
type Handler struct {
	auth      *auth.Service
	sessions  *session.Manager
	snapshots authz.SnapshotSource
	users     UserLister
	log       *slog.Logger
}

// NewHandler creates the endpoint handler.
func NewHandler(authSvc *auth.Service, sessions *session.Manager, snapshots authz.SnapshotSource, users UserLister, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		auth:      authSvc,
		sessions:  sessions,
		snapshots: snapshots,
		users:     users,
		log:       log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TenantID string `json:"tenant_id"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Session   sessionView `json:"session"`
}

// sessionView is the client-facing session shape. The raw token never
// appears in listings, only in the login response.
type sessionView struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	TenantID   string    `json:"tenant_id"`
	SuperAdmin bool      `json:"super_admin"`
	IP         string    `json:"ip,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	LoginAt    time.Time `json:"login_at"`
	Current    bool      `json:"current,omitempty"`
}

func viewOf(s *session.Session, current bool) sessionView {
	return sessionView{
		ID:         s.ID.String(),
		Username:   s.Username,
		TenantID:   s.TenantID,
		SuperAdmin: s.SuperAdmin,
		IP:         s.IP,
		Browser:    s.Browser,
		LoginAt:    s.LoginAt,
		Current:    current,
	}
}

// Login authenticates a tenant account and mints a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.TenantID == "" {
		writeError(w, http.StatusBadRequest, "username, password and tenant_id are required")
		return
	}

	meta := auth.Metadata{
		IP:      clientip.GetIPFromContext(r.Context()),
		Browser: useragent.Parse(r.UserAgent()).Short(),
	}

	sess, err := h.auth.Authenticate(r.Context(), req.Username, req.Password, req.TenantID, meta)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, auth.ErrAccountDisabled):
			writeError(w, http.StatusForbidden, "account disabled")
		default:
			h.log.ErrorContext(r.Context(), "login failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.LoginAt.Add(h.sessions.TTL()),
		Session:   viewOf(sess, true),
	})
}

// Logout revokes the current session. Revoking an already-dead session
// still succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())

	if err := h.sessions.Revoke(r.Context(), sess.Token); err != nil {
		h.log.ErrorContext(r.Context(), "logout failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LogoutAll revokes every session of the calling user, on all nodes.
func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())

	if err := h.sessions.RevokeAll(r.Context(), sess.UserID); err != nil {
		h.log.ErrorContext(r.Context(), "logout-all failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type permissionsResponse struct {
	Permissions []string          `json:"permissions"`
	Menus       []*authz.MenuNode `json:"menus"`
}

// MyPermissions resolves and returns the caller's effective authority:
// the permission code set and the navigable menu tree.
func (h *Handler) MyPermissions(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())

	snap, err := h.snapshots.Snapshot(r.Context(), sess.UserID, sess.TenantID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "authority snapshot failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := authz.Resolve(authz.User{
		ID:         sess.UserID,
		Username:   sess.Username,
		SuperAdmin: sess.SuperAdmin,
	}, snap)

	writeJSON(w, http.StatusOK, permissionsResponse{
		Permissions: result.PermissionCodes,
		Menus:       result.Menus,
	})
}

type sessionsResponse struct {
	Sessions []sessionView `json:"sessions"`
}

// MySessions lists the caller's live sessions across all nodes.
func (h *Handler) MySessions(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())

	live, err := h.sessions.Sessions(r.Context(), sess.UserID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "session listing failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	views := make([]sessionView, 0, len(live))
	for _, s := range live {
		views = append(views, viewOf(s, s.ID == sess.ID))
	}

	writeJSON(w, http.StatusOK, sessionsResponse{Sessions: views})
}

type usersResponse struct {
	Users []UserRecord `json:"users"`
}

// ListUsers returns the accounts visible to the caller's tenant scope.
// A caller without tenant identity gets an empty list, and a row that
// escapes its tenant aborts the whole response.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		if errors.Is(err, rowfilter.ErrIsolationViolation) {
			h.log.ErrorContext(r.Context(), "tenant isolation violation", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		h.log.ErrorContext(r.Context(), "user listing failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if users == nil {
		users = []UserRecord{}
	}
	writeJSON(w, http.StatusOK, usersResponse{Users: users})
}
