package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for unknown accounts and wrong
	// passwords alike, so responses never reveal which usernames exist.
	ErrInvalidCredentials = errors.New("auth.invalid_credentials")

	// ErrAccountDisabled is returned for disabled accounts.
	ErrAccountDisabled = errors.New("auth.account_disabled")

	// ErrUserNotFound is the storage-level sentinel for a missing account.
	// It never leaves the service: callers see ErrInvalidCredentials.
	ErrUserNotFound = errors.New("auth.user_not_found")
)
