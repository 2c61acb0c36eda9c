package authz

// Combinator selects how a multi-permission requirement is evaluated.
type Combinator string

const (
	CombinatorAny Combinator = "ANY"
	CombinatorAll Combinator = "ALL"
)

// Requirement is the access declaration attached to a guarded route or
// action. Permissions take priority: when Permissions is non-empty the
// Roles list is ignored. Roles is the legacy fallback and is ANY-only.
type Requirement struct {
	Permissions []string
	Combinator  Combinator
	Roles       []string
}

// Resolver answers "may this user do X" against an immutable mapping
// table. It never returns errors: a missing grant is an ordinary false.
type Resolver struct {
	table MappingTable
}

// NewResolver builds a resolver around the given legacy mapping table.
// A nil table falls back to the shipped default.
func NewResolver(table MappingTable) *Resolver {
	if table == nil {
		table = DefaultMappingTable()
	}
	return &Resolver{table: table}
}

// CheckPermission reports whether grants satisfies the single required
// permission. The admin role short-circuits to true. Legacy names are
// translated through the mapping table first; a name mapped to
// PermissionRemoved is always denied.
func (r *Resolver) CheckPermission(grants []string, required string) bool {
	if r.isAdmin(grants) {
		return true
	}
	return r.hasGrant(grants, required)
}

// CheckAnyPermission reports whether grants satisfies at least one of the
// required permissions. An empty grant set is always denied, before the
// requirement list is even consulted.
func (r *Resolver) CheckAnyPermission(grants []string, required []string) bool {
	if len(grants) == 0 {
		return false
	}
	if r.isAdmin(grants) {
		return true
	}
	for _, p := range required {
		if r.hasGrant(grants, p) {
			return true
		}
	}
	return false
}

// CheckAllPermissions reports whether grants satisfies every required
// permission. An empty grant set is denied first; an empty requirement
// list against a non-empty grant set is vacuously true.
func (r *Resolver) CheckAllPermissions(grants []string, required []string) bool {
	if len(grants) == 0 {
		return false
	}
	if r.isAdmin(grants) {
		return true
	}
	for _, p := range required {
		if !r.hasGrant(grants, p) {
			return false
		}
	}
	return true
}

// CheckAnyRole reports whether grants carries at least one of the given
// roles. Legacy path only; no mapping-table translation applies to roles.
func (r *Resolver) CheckAnyRole(grants []string, roles []string) bool {
	if len(grants) == 0 {
		return false
	}
	if r.isAdmin(grants) {
		return true
	}
	for _, role := range roles {
		if contains(grants, role) {
			return true
		}
	}
	return false
}

// Evaluate applies a Requirement against the user's combined grant set.
// A declared permissions requirement is authoritative; the roles list is
// consulted only when no permissions were declared. A requirement with
// neither list allows everyone authenticated.
func (r *Resolver) Evaluate(req Requirement, grants []string) bool {
	if len(req.Permissions) > 0 {
		if req.Combinator == CombinatorAll {
			return r.CheckAllPermissions(grants, req.Permissions)
		}
		return r.CheckAnyPermission(grants, req.Permissions)
	}
	if len(req.Roles) > 0 {
		return r.CheckAnyRole(grants, req.Roles)
	}
	return true
}

func (r *Resolver) hasGrant(grants []string, required string) bool {
	if mapped, ok := r.table[required]; ok {
		if mapped == PermissionRemoved {
			return false
		}
		required = mapped
	}
	return contains(grants, required)
}

func (r *Resolver) isAdmin(grants []string) bool {
	return contains(grants, RoleAdmin)
}

func contains(set []string, want string) bool {
	for _, s := range set {
		if s == want {
			return true
		}
	}
	return false
}
