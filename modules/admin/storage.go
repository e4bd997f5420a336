package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/guardkit/pkg/auth"
	"github.com/dmitrymomot/guardkit/pkg/authz"
	"github.com/dmitrymomot/guardkit/pkg/pg"
	"github.com/dmitrymomot/guardkit/pkg/rowfilter"
)

// UserRecord is one account row of the tenant-scoped user listing.
type UserRecord struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	TenantID  string    `json:"tenant_id"`
	Active    bool      `json:"active"`
	RoleIDs   []int64   `json:"role_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantRef implements rowfilter.Scoped.
func (u UserRecord) TenantRef() string { return u.TenantID }

// Storage is the PostgreSQL data layer of the admin module. It backs
// credential lookups, authority snapshots and the user listing.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage creates a Storage on the given pool.
func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// GetUserByUsername looks an account up within its tenant. Usernames are
// unique per tenant, not globally.
func (s *Storage) GetUserByUsername(ctx context.Context, tenantID, username string) (*auth.User, error) {
	const query = `
		SELECT id, username, tenant_id, active, created_at
		FROM users
		WHERE tenant_id = $1 AND username = $2`

	var user auth.User
	err := s.pool.QueryRow(ctx, query, tenantID, username).
		Scan(&user.ID, &user.Username, &user.TenantID, &user.Active, &user.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("admin: get user by username: %w", err)
	}

	roleIDs, err := s.userRoleIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.RoleIDs = roleIDs

	return &user, nil
}

// GetPasswordHash returns the stored bcrypt hash for the user.
func (s *Storage) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	const query = `SELECT password_hash FROM users WHERE id = $1`

	var hash []byte
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&hash); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("admin: get password hash: %w", err)
	}
	return hash, nil
}

// Snapshot loads everything authority resolution needs for one user in
// one tenant: the user's roles with their grants, the tenant's package
// ceiling, and the menu and permission catalogs.
func (s *Storage) Snapshot(ctx context.Context, userID uuid.UUID, tenantID string) (*authz.Snapshot, error) {
	roles, err := s.userRoles(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.tenantPackage(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	menus, err := s.allMenus(ctx)
	if err != nil {
		return nil, err
	}

	permissions, err := s.allPermissions(ctx)
	if err != nil {
		return nil, err
	}

	return &authz.Snapshot{
		Roles:       roles,
		Package:     pkg,
		Menus:       menus,
		Permissions: permissions,
	}, nil
}

// ListUsers returns the accounts visible to the caller's tenant scope.
// The rowfilter guard short-circuits closed filters to an empty result and
// verifies every returned row's tenant id.
func (s *Storage) ListUsers(ctx context.Context) ([]UserRecord, error) {
	return rowfilter.Query(ctx, rowfilter.FromContext(ctx),
		func(ctx context.Context, f rowfilter.Filter) ([]UserRecord, error) {
			predicate, args := f.Predicate("tenant_id", 1)
			query := fmt.Sprintf(`
				SELECT id, username, tenant_id, active, created_at
				FROM users
				WHERE %s
				ORDER BY created_at, id`, predicate)

			rows, err := s.pool.Query(ctx, query, args...)
			if err != nil {
				return nil, fmt.Errorf("admin: list users: %w", err)
			}
			defer rows.Close()

			var users []UserRecord
			for rows.Next() {
				var u UserRecord
				if err := rows.Scan(&u.ID, &u.Username, &u.TenantID, &u.Active, &u.CreatedAt); err != nil {
					return nil, fmt.Errorf("admin: scan user row: %w", err)
				}
				users = append(users, u)
			}
			if err := rows.Err(); err != nil {
				return nil, fmt.Errorf("admin: list users: %w", err)
			}
			return users, nil
		})
}

func (s *Storage) userRoleIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	const query = `SELECT role_id FROM user_roles WHERE user_id = $1 ORDER BY role_id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("admin: user role ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("admin: scan role id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Storage) userRoles(ctx context.Context, userID uuid.UUID, tenantID string) ([]authz.Role, error) {
	const query = `
		SELECT r.id, r.active
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1 AND r.tenant_id = $2
		ORDER BY r.id`

	rows, err := s.pool.Query(ctx, query, userID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("admin: user roles: %w", err)
	}
	defer rows.Close()

	var roles []authz.Role
	var roleIDs []int64
	for rows.Next() {
		var role authz.Role
		if err := rows.Scan(&role.ID, &role.Active); err != nil {
			return nil, fmt.Errorf("admin: scan role: %w", err)
		}
		roles = append(roles, role)
		roleIDs = append(roleIDs, role.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin: user roles: %w", err)
	}
	if len(roles) == 0 {
		return roles, nil
	}

	menuGrants, err := s.grantsByRole(ctx, `SELECT role_id, menu_id FROM role_menus WHERE role_id = ANY($1)`, roleIDs)
	if err != nil {
		return nil, err
	}
	permGrants, err := s.grantsByRole(ctx, `SELECT role_id, permission_id FROM role_permissions WHERE role_id = ANY($1)`, roleIDs)
	if err != nil {
		return nil, err
	}

	for i := range roles {
		roles[i].MenuIDs = menuGrants[roles[i].ID]
		roles[i].PermissionIDs = permGrants[roles[i].ID]
	}
	return roles, nil
}

func (s *Storage) grantsByRole(ctx context.Context, query string, roleIDs []int64) (map[int64][]int64, error) {
	rows, err := s.pool.Query(ctx, query, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("admin: role grants: %w", err)
	}
	defer rows.Close()

	grants := make(map[int64][]int64)
	for rows.Next() {
		var roleID, grantID int64
		if err := rows.Scan(&roleID, &grantID); err != nil {
			return nil, fmt.Errorf("admin: scan grant: %w", err)
		}
		grants[roleID] = append(grants[roleID], grantID)
	}
	return grants, rows.Err()
}

// tenantPackage returns the tenant's package ceiling, or nil when the
// tenant has no package binding (the super tenant, typically).
func (s *Storage) tenantPackage(ctx context.Context, tenantID string) (*authz.Package, error) {
	const query = `
		SELECT p.id, p.active
		FROM packages p
		JOIN tenant_packages tp ON tp.package_id = p.id
		WHERE tp.tenant_id = $1`

	var pkg authz.Package
	err := s.pool.QueryRow(ctx, query, tenantID).Scan(&pkg.ID, &pkg.Active)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("admin: tenant package: %w", err)
	}

	pkg.MenuIDs, err = s.packageGrants(ctx, `SELECT menu_id FROM package_menus WHERE package_id = $1 ORDER BY menu_id`, pkg.ID)
	if err != nil {
		return nil, err
	}
	pkg.PermissionIDs, err = s.packageGrants(ctx, `SELECT permission_id FROM package_permissions WHERE package_id = $1 ORDER BY permission_id`, pkg.ID)
	if err != nil {
		return nil, err
	}

	return &pkg, nil
}

func (s *Storage) packageGrants(ctx context.Context, query string, packageID int64) ([]int64, error) {
	rows, err := s.pool.Query(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("admin: package grants: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("admin: scan package grant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Storage) allMenus(ctx context.Context) ([]authz.Menu, error) {
	const query = `SELECT id, parent_id, name, path, sort, hidden FROM menus ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("admin: menus: %w", err)
	}
	defer rows.Close()

	var menus []authz.Menu
	for rows.Next() {
		var m authz.Menu
		if err := rows.Scan(&m.ID, &m.ParentID, &m.Name, &m.Path, &m.Sort, &m.Hidden); err != nil {
			return nil, fmt.Errorf("admin: scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (s *Storage) allPermissions(ctx context.Context) ([]authz.Permission, error) {
	const query = `SELECT id, menu_id, code, url, method FROM permissions ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("admin: permissions: %w", err)
	}
	defer rows.Close()

	var permissions []authz.Permission
	for rows.Next() {
		var p authz.Permission
		if err := rows.Scan(&p.ID, &p.MenuID, &p.Code, &p.URL, &p.Method); err != nil {
			return nil, fmt.Errorf("admin: scan permission: %w", err)
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

var (
	_ auth.Storage         = (*Storage)(nil)
	_ authz.SnapshotSource = (*Storage)(nil)
)
