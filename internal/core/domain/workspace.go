package domain

import "time"

// Workspace is the tenancy boundary. It exclusively owns its memberships and
// all scoped resources (projects, assets, tasks, work orders, activities).
type Workspace struct {
	WorkspaceID string `json:"workspaceID"` // Primary Key (e.g., UUID)
	Name        string `json:"name"`        // Unique human-readable name
	Slug        string `json:"slug"`        // Unique URL-safe identifier
	AuditFields
}

// MembershipRole defines the possible roles a user can have within a workspace.
// Role is the sole axis of authorization strength inside a workspace:
// viewer may read, manager and admin may read and write.
type MembershipRole string

const (
	RoleViewer  MembershipRole = "viewer"
	RoleManager MembershipRole = "manager"
	RoleAdmin   MembershipRole = "admin"
)

// WriteRoles are the membership roles that grant object-level write access.
var WriteRoles = []MembershipRole{RoleManager, RoleAdmin}

// ValidRole reports whether r is one of the known membership roles.
func ValidRole(r MembershipRole) bool {
	switch r {
	case RoleViewer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanWrite reports whether the role grants write access within its workspace.
func (r MembershipRole) CanWrite() bool {
	return r == RoleManager || r == RoleAdmin
}

// Membership binds exactly one (user, workspace) pair to a role.
// At most one membership exists per pair; this is enforced by the store.
type Membership struct {
	MembershipID string         `json:"membershipID"`
	UserID       string         `json:"userID"`
	Username     string         `json:"username,omitempty"` // Joined from users for display
	WorkspaceID  string         `json:"workspaceID"`
	Role         MembershipRole `json:"role"`
	JoinedAt     time.Time      `json:"joinedAt"`
}
