package repositories

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// FindWorkspaceBySlug retrieves a specific workspace by its unique slug.
	FindWorkspaceBySlug(ctx context.Context, slug string) (*domain.Workspace, error)

	// ListWorkspaces retrieves workspaces. When visibleToUserID is non-empty
	// the result is narrowed to workspaces that user is a member of; staff
	// callers pass an empty string to list everything.
	ListWorkspaces(ctx context.Context, visibleToUserID string, limit, offset int) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateWorkspace updates name/slug of an existing workspace.
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error

	// DeleteWorkspace deletes a workspace and, by cascade, everything it owns.
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// MembershipManager defines operations on the membership table. It also
// serves as the evaluator's membership lookup.
type MembershipManager interface {
	// AddMembership adds a user to a workspace with a role, or updates the
	// role if the membership already exists.
	AddMembership(ctx context.Context, membership domain.Membership) error

	// FindMembership retrieves the membership row for (user, workspace).
	FindMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error)

	// HasWorkspaceRole reports whether the user holds any of the given roles
	// in the workspace.
	HasWorkspaceRole(ctx context.Context, userID, workspaceID string, roles ...domain.MembershipRole) (bool, error)

	// ListWorkspaceMemberships retrieves all memberships of a workspace.
	ListWorkspaceMemberships(ctx context.Context, workspaceID string) ([]domain.Membership, error)

	// ListUserMemberships retrieves all memberships of a user across
	// workspaces. Used to build the per-request membership snapshot.
	ListUserMemberships(ctx context.Context, userID string) ([]domain.Membership, error)

	// UpdateMembershipRole changes the role of an existing membership.
	UpdateMembershipRole(ctx context.Context, userID, workspaceID string, role domain.MembershipRole) error

	// RemoveMembership deletes the membership row for (user, workspace).
	RemoveMembership(ctx context.Context, userID, workspaceID string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	MembershipManager
}

// WorkspaceRepositoryWithTx extends WorkspaceRepositoryFacade with transaction capabilities
type WorkspaceRepositoryWithTx interface {
	WorkspaceRepositoryFacade
	TransactionManager
}
