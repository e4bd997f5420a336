package session

import "errors"

var (
	// ErrSessionNotFound indicates the token resolves to no live session.
	// Expired, revoked and never-issued tokens are indistinguishable.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates a structurally invalid session record.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrStoreUnavailable indicates the backing store could not complete a
	// write. Issuance must surface this as a hard error, never proceed as
	// if the session were persisted.
	ErrStoreUnavailable = errors.New("session.store_unavailable")
)
