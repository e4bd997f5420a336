// Package rowfilter constrains tenant-scoped queries to the rows of the
// active tenant.
//
// A Filter is derived from the request's tenant scope right before a query
// and passed to the data-access call explicitly. Super-tenant callers run
// unfiltered; everyone else gets a tenant_id predicate; a caller without a
// tenant id gets a closed filter that matches nothing. The missing-id case
// is a deliberate fail-closed branch, not a side effect of binding NULL.
//
//	f := rowfilter.FromContext(ctx)
//	users, err := rowfilter.Query(ctx, f, store.ListUsers)
//
// Query and QueryOne additionally verify the tenant id of every returned
// row and abort with ErrIsolationViolation on a mismatch, so a repository
// bug cannot silently hand rows across tenants.
package rowfilter
