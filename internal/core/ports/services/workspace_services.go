package services

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// GetWorkspace retrieves a workspace the principal may see; non-members
	// (other than staff) get a not-found error.
	GetWorkspace(ctx context.Context, p authz.Principal, workspaceID string) (*domain.Workspace, error)

	// GetWorkspaceBySlug retrieves a workspace by its slug, with the same
	// visibility rules as GetWorkspace.
	GetWorkspaceBySlug(ctx context.Context, p authz.Principal, slug string) (*domain.Workspace, error)

	// ListWorkspaces retrieves the workspaces visible to the principal:
	// everything for staff, membership-scoped otherwise.
	ListWorkspaces(ctx context.Context, p authz.Principal, limit, offset int) ([]domain.Workspace, error)

	// ListMembers retrieves the memberships of a workspace visible to the
	// principal.
	ListMembers(ctx context.Context, p authz.Principal, workspaceID string) ([]domain.Membership, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace and adds the creator as admin.
	CreateWorkspace(ctx context.Context, p authz.Principal, name, slug string) (*domain.Workspace, error)

	// UpdateWorkspace updates a workspace's name/slug.
	UpdateWorkspace(ctx context.Context, p authz.Principal, workspaceID, name, slug string) (*domain.Workspace, error)

	// DeleteWorkspace deletes a workspace and everything it owns.
	DeleteWorkspace(ctx context.Context, p authz.Principal, workspaceID string) error
}

// MembershipSvc defines operations for managing workspace membership
type MembershipSvc interface {
	// AddMember adds a user to a workspace with a role.
	AddMember(ctx context.Context, p authz.Principal, workspaceID, targetUserID string, role domain.MembershipRole) (*domain.Membership, error)

	// UpdateMemberRole changes a member's role in a workspace and returns the
	// updated membership.
	UpdateMemberRole(ctx context.Context, p authz.Principal, workspaceID, targetUserID string, role domain.MembershipRole) (*domain.Membership, error)

	// RemoveMember removes a user from a workspace.
	RemoveMember(ctx context.Context, p authz.Principal, workspaceID, targetUserID string) error
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	MembershipSvc
}
