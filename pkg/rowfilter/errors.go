package rowfilter

import "errors"

// ErrIsolationViolation indicates a row outside the active tenant reached
// the filter. It is a programming-invariant failure: request logic must not
// recover from it, and no partial result is returned alongside it.
var ErrIsolationViolation = errors.New("tenant isolation violation")
