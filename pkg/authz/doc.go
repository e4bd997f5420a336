// Package authz computes a user's effective authority within a tenant.
//
// Authority is the union of menus and permissions across the user's active
// roles, intersected with the tenant package's ceiling: a role may grant
// more than the package allows, but nothing outside the package survives
// aggregation. The designated super admin of the super tenant bypasses both
// and receives the all-granted sentinel.
//
// Resolve is a pure function over an immutable Snapshot, which makes it
// trivially safe under concurrency and easy to property-test without any
// persistence in the loop:
//
//	snap, err := source.Snapshot(ctx, userID, tenantID)
//	if err != nil { ... }
//	result := authz.Resolve(user, snap)
//	if !result.Can("system:user:list") { ... }
//
// Caching of results and its invalidation on role or package edits belongs
// to the caller; this package only defines the aggregation.
package authz
