package authz

import (
	"slices"
)

// Result is the effective authority of a user in a tenant: the navigable
// menu tree and the flat permission code set. It is derived purely from a
// snapshot; callers that cache it key by (userID, tenantID, roleSetVersion)
// and invalidate on role, package or grant changes.
type Result struct {
	Menus           []*MenuNode
	PermissionCodes []string

	all   bool
	codes map[string]struct{}
}

// All reports whether the result is the all-granted sentinel.
func (r *Result) All() bool {
	return r != nil && r.all
}

// Can reports whether the effective authority includes the given code.
func (r *Result) Can(code string) bool {
	if r == nil {
		return false
	}
	if r.all {
		return true
	}
	_, ok := r.codes[code]
	return ok
}

// Resolve computes the effective authority for a user from a snapshot.
//
// The super admin of the super tenant short-circuits to the all-granted
// sentinel. For everyone else, menus and permissions are unioned across the
// user's active roles and intersected with the tenant package; a disabled
// package yields an empty ceiling. The resulting menu tree pulls in
// ancestors of granted nodes so it stays navigable, with siblings ordered
// by sort then id.
func Resolve(user User, snap *Snapshot) *Result {
	if snap == nil {
		snap = &Snapshot{}
	}

	if user.SuperAdmin {
		menuIDs := make(map[int64]struct{}, len(snap.Menus))
		for _, m := range snap.Menus {
			menuIDs[m.ID] = struct{}{}
		}
		permIDs := make(map[int64]struct{}, len(snap.Permissions))
		for _, p := range snap.Permissions {
			permIDs[p.ID] = struct{}{}
		}
		res := buildResult(snap, menuIDs, permIDs)
		res.all = true
		res.PermissionCodes = []string{AllPermissionCode}
		res.codes = nil
		return res
	}

	menuIDs := make(map[int64]struct{})
	permIDs := make(map[int64]struct{})
	for _, role := range snap.Roles {
		if !role.Active {
			continue
		}
		for _, id := range role.MenuIDs {
			menuIDs[id] = struct{}{}
		}
		for _, id := range role.PermissionIDs {
			permIDs[id] = struct{}{}
		}
	}

	if snap.Package != nil {
		menuIDs = intersect(menuIDs, snap.Package.Active, snap.Package.MenuIDs)
		permIDs = intersect(permIDs, snap.Package.Active, snap.Package.PermissionIDs)
	}

	return buildResult(snap, menuIDs, permIDs)
}

// intersect keeps only ids the package grants. A disabled package keeps
// nothing regardless of what roles grant.
func intersect(granted map[int64]struct{}, packageActive bool, ceiling []int64) map[int64]struct{} {
	out := make(map[int64]struct{})
	if !packageActive {
		return out
	}
	for _, id := range ceiling {
		if _, ok := granted[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

func buildResult(snap *Snapshot, menuIDs, permIDs map[int64]struct{}) *Result {
	byID := make(map[int64]Menu, len(snap.Menus))
	for _, m := range snap.Menus {
		byID[m.ID] = m
	}

	// Ancestors of granted menus are included even when not individually
	// granted, so the tree remains navigable down to every granted leaf.
	include := make(map[int64]struct{}, len(menuIDs))
	for id := range menuIDs {
		for id != 0 {
			m, ok := byID[id]
			if !ok {
				break
			}
			if _, seen := include[m.ID]; seen {
				break
			}
			include[m.ID] = struct{}{}
			id = m.ParentID
		}
	}

	perms := make([]Permission, 0, len(permIDs))
	codes := make(map[string]struct{}, len(permIDs))
	for _, p := range snap.Permissions {
		if _, ok := permIDs[p.ID]; ok {
			perms = append(perms, p)
			codes[p.Code] = struct{}{}
		}
	}

	nodes := make(map[int64]*MenuNode, len(include))
	for id := range include {
		nodes[id] = &MenuNode{Menu: byID[id]}
	}
	for _, p := range perms {
		if node, ok := nodes[p.MenuID]; ok {
			node.Permissions = append(node.Permissions, p)
		}
	}
	for _, node := range nodes {
		slices.SortFunc(node.Permissions, func(a, b Permission) int {
			return int(a.ID - b.ID)
		})
	}

	var roots []*MenuNode
	for _, node := range nodes {
		if parent, ok := nodes[node.ParentID]; ok && node.ParentID != node.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	sortSiblings(roots)
	for _, node := range nodes {
		sortSiblings(node.Children)
	}

	codeList := make([]string, 0, len(codes))
	for code := range codes {
		codeList = append(codeList, code)
	}
	slices.Sort(codeList)

	return &Result{
		Menus:           roots,
		PermissionCodes: codeList,
		codes:           codes,
	}
}

// sortSiblings orders nodes by sort ascending, id ascending on ties.
func sortSiblings(nodes []*MenuNode) {
	slices.SortFunc(nodes, func(a, b *MenuNode) int {
		if a.Sort != b.Sort {
			return a.Sort - b.Sort
		}
		return int(a.ID - b.ID)
	})
}
