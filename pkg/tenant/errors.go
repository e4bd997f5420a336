package tenant

import "errors"

var (
	// ErrNoScopeInContext is returned when no tenant scope is found in context.
	ErrNoScopeInContext = errors.New("no tenant scope in context")

	// ErrMissingTenantID is returned when a non-super scope has no tenant id.
	ErrMissingTenantID = errors.New("missing tenant id")
)
