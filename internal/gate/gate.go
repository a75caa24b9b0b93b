// Package gate maps operator roles to the ledger operations they may
// invoke. It gates which operations the HTTP layer is allowed to call but
// never alters ledger semantics.
package gate

import "errors"

var ErrUnauthorized = errors.New("unauthorized")

// Gate is the central authorization checkpoint: a registry of role
// profiles checked by permission.
type Gate struct {
	profiles map[string][]Permission
}

func New() *Gate {
	return &Gate{profiles: make(map[string][]Permission)}
}

// Register assigns a role its permission set, overwriting any previous
// registration for that role.
func (g *Gate) Register(role string, perms ...Permission) {
	g.profiles[role] = perms
}

// Can reports whether the role holds a permission matching requested.
func (g *Gate) Can(role string, requested Permission) bool {
	for _, p := range g.profiles[role] {
		if p.Matches(requested) {
			return true
		}
	}
	return false
}

// Authorize returns ErrUnauthorized when the role lacks the permission.
func (g *Gate) Authorize(role string, requested Permission) error {
	if !g.Can(role, requested) {
		return ErrUnauthorized
	}
	return nil
}

// Default wires the operator roles of the shop: admin does everything,
// sales enters orders and suppliers, production tracks material and
// status, manager reads the reports.
func Default() *Gate {
	g := New()
	g.Register("admin", PermissionSuperAdmin)
	g.Register("sales",
		NewPermission("order", ActionCreate),
		NewPermission("order", ActionView),
		NewPermission("order", ActionList),
		NewPermission("supplier", ActionCreate),
		NewPermission("supplier", ActionList),
		NewPermission("delivery", ActionCreate),
		NewPermission("payment", ActionCreate),
	)
	g.Register("production",
		NewPermission("order", ActionView),
		NewPermission("order", ActionList),
		NewPermission("order", ActionUpdate),
		NewPermission("delivery", ActionList),
		NewPermission("delivery", ActionUpdate),
	)
	g.Register("manager",
		NewPermission("order", ActionView),
		NewPermission("order", ActionList),
		NewPermission("report", ActionView),
		NewPermission("delivery", ActionList),
	)
	return g
}
