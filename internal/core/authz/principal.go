// Package authz implements the membership-scoped authorization core: the
// per-request principal, the permission evaluator consulted before every
// operation, and the scope filter that narrows list results to workspaces the
// caller belongs to.
package authz

import "github.com/FlynntKnapp/planit-mini/internal/core/domain"

// Capabilities are global override bits resolved once per request, when the
// authenticated user is loaded. Keeping them on the principal keeps the
// evaluator a pure function of its inputs.
type Capabilities struct {
	// MaintenanceManager grants write access to any record, same as staff.
	MaintenanceManager bool
}

// Principal is the authenticated (or anonymous) identity a request acts as.
// It is built by the auth middleware and never mutated afterwards.
type Principal struct {
	UserID        string
	Authenticated bool
	IsStaff       bool
	IsSuperuser   bool
	Capabilities  Capabilities
}

// Anonymous is the principal used for unauthenticated requests.
var Anonymous = Principal{}

// PrincipalForUser derives a principal from a loaded user record.
func PrincipalForUser(u *domain.User) Principal {
	if u == nil {
		return Anonymous
	}
	return Principal{
		UserID:        u.UserID,
		Authenticated: true,
		IsStaff:       u.IsStaff,
		IsSuperuser:   u.IsSuperuser,
		Capabilities: Capabilities{
			MaintenanceManager: u.InGroup(domain.GroupMaintenanceManager),
		},
	}
}

// Privileged reports whether the principal bypasses workspace-role checks for
// writes: staff, or a member of the maintenance manager group.
func (p Principal) Privileged() bool {
	return p.Authenticated && (p.IsStaff || p.Capabilities.MaintenanceManager)
}
