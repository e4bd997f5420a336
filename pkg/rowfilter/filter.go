package rowfilter

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/guardkit/pkg/tenant"
)

// Filter is the row-level tenant predicate for a single data-access call.
// It has three states:
//
//   - unfiltered: the caller runs under the super tenant, rows are not
//     constrained;
//   - bound: rows must satisfy tenant_id = TenantID;
//   - closed: the caller has no tenant identity, so no rows match.
//
// A Filter is derived from the tenant scope immediately before a query and
// passed to it explicitly; it is a value type scoped to that one call, so
// filter state cannot leak into a sibling or later call.
type Filter struct {
	tenantID   string
	unfiltered bool
}

// New derives a filter from a tenant scope.
func New(scope tenant.Scope) Filter {
	if scope.Super {
		return Filter{unfiltered: true}
	}
	return Filter{tenantID: scope.TenantID}
}

// FromContext derives a filter from the tenant scope in the context.
// A missing scope yields a closed filter, never an unfiltered one.
func FromContext(ctx context.Context) Filter {
	scope, ok := tenant.FromContext(ctx)
	if !ok {
		return Filter{}
	}
	return New(scope)
}

// Unfiltered reports whether the filter imposes no tenant constraint.
func (f Filter) Unfiltered() bool {
	return f.unfiltered
}

// Closed reports whether the filter matches no rows at all. This is the
// fail-closed state for callers without a tenant identity.
func (f Filter) Closed() bool {
	return !f.unfiltered && f.tenantID == ""
}

// TenantID returns the tenant id the filter binds to. Empty when the filter
// is unfiltered or closed.
func (f Filter) TenantID() string {
	if f.unfiltered {
		return ""
	}
	return f.tenantID
}

// Predicate returns a SQL condition constraining rows to the filter's
// tenant, and the argument it binds. argIndex is the positional parameter
// number the condition should use ($1-based, pgx style).
//
// For an unfiltered filter the condition is "TRUE" with no arguments. For a
// closed filter it is "FALSE": the query still runs but matches nothing,
// which keeps the fail-closed branch visible in query plans and logs.
func (f Filter) Predicate(column string, argIndex int) (string, []any) {
	if f.unfiltered {
		return "TRUE", nil
	}
	if f.tenantID == "" {
		return "FALSE", nil
	}
	return fmt.Sprintf("%s = $%d", column, argIndex), []any{f.tenantID}
}

// Verify checks a returned row's tenant id against the filter. A mismatch
// is an isolation breach: the caller must abort with no partial result.
func (f Filter) Verify(rowTenantID string) error {
	if f.unfiltered {
		return nil
	}
	if f.tenantID == "" || rowTenantID != f.tenantID {
		return fmt.Errorf("%w: row tenant %q, filter tenant %q", ErrIsolationViolation, rowTenantID, f.tenantID)
	}
	return nil
}
