package authz

import (
	"context"

	"github.com/google/uuid"
)

// AllPermissionCode is the sentinel authority granted to the super admin of
// the super tenant instead of an aggregated set.
const AllPermissionCode = "*:*:*"

// Role is a named grant of menus and permissions. Disabled roles contribute
// nothing to aggregation.
type Role struct {
	ID            int64
	Name          string
	Code          string
	Active        bool
	MenuIDs       []int64
	PermissionIDs []int64
}

// Package is the ceiling of what any user in a tenant may be granted,
// independent of role. A disabled package grants nothing.
type Package struct {
	ID            int64
	Name          string
	Active        bool
	MenuIDs       []int64
	PermissionIDs []int64
}

// Menu is a navigation tree node. ParentID 0 marks a root node.
type Menu struct {
	ID       int64
	ParentID int64
	Name     string
	Path     string
	Sort     int
	Hidden   bool
}

// Permission is an atomic authority unit attached to a menu.
type Permission struct {
	ID     int64
	MenuID int64
	Code   string
	URL    string
	Method string
}

// MenuNode is a menu in the aggregated view, with its granted permissions
// and sorted children.
type MenuNode struct {
	Menu
	Permissions []Permission
	Children    []*MenuNode
}

// User identifies the subject of an aggregation.
type User struct {
	ID       uuid.UUID
	Username string

	// SuperAdmin marks the designated super admin of the super tenant, who
	// bypasses aggregation entirely.
	SuperAdmin bool
}

// Snapshot is an immutable view of the role/package/menu state an
// aggregation runs over. Resolve never mutates it, so a snapshot may be
// shared between concurrent resolutions.
type Snapshot struct {
	// Roles are the user's roles within the tenant.
	Roles []Role

	// Package is the tenant's package. Nil means no ceiling applies, which
	// is only the case for the super tenant.
	Package *Package

	// Menus and Permissions are the full definitions the grants refer to.
	Menus       []Menu
	Permissions []Permission
}

// SnapshotSource loads aggregation snapshots from a data source.
type SnapshotSource interface {
	// Snapshot returns the role/package/menu state for a user in a tenant.
	Snapshot(ctx context.Context, userID uuid.UUID, tenantID string) (*Snapshot, error)
}
