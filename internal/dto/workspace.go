package dto

import (
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=120"`
	Slug string `json:"slug" binding:"required,slug"`
}

// UpdateWorkspaceRequest defines data for updating a workspace.
type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=120"`
	Slug string `json:"slug" binding:"required,slug"`
}

// ListWorkspacesParams defines query parameters for listing workspaces. A
// non-empty slug turns the request into a single-workspace lookup.
type ListWorkspacesParams struct {
	Slug   string `form:"slug" binding:"omitempty,slug"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID string    `json:"workspaceID"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"` // UserID
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID: w.WorkspaceID,
		Name:        w.Name,
		Slug:        w.Slug,
		CreatedAt:   w.CreatedAt,
		CreatedBy:   w.CreatedBy,
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w)
	}
	return ListWorkspacesResponse{Workspaces: list}
}

// --- Membership DTOs ---

// AddMemberRequest defines data for adding a user to a workspace.
type AddMemberRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.MembershipRole `json:"role" binding:"required,oneof=viewer manager admin"`
}

// UpdateMemberRoleRequest defines data for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role domain.MembershipRole `json:"role" binding:"required,oneof=viewer manager admin"`
}

// MembershipResponse defines data returned about a workspace membership.
type MembershipResponse struct {
	UserID      string                `json:"userID"`
	Username    string                `json:"username,omitempty"`
	WorkspaceID string                `json:"workspaceID"`
	Role        domain.MembershipRole `json:"role"`
	JoinedAt    time.Time             `json:"joinedAt"`
}

// ToMembershipResponse converts domain.Membership to DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		UserID:      m.UserID,
		Username:    m.Username,
		WorkspaceID: m.WorkspaceID,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
	}
}

// ListMembershipsResponse wraps a list of memberships.
type ListMembershipsResponse struct {
	Members []MembershipResponse `json:"members"`
}

// ToListMembershipsResponse converts a slice of domain.Membership to DTO.
func ToListMembershipsResponse(ms []domain.Membership) ListMembershipsResponse {
	list := make([]MembershipResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMembershipResponse(&m)
	}
	return ListMembershipsResponse{Members: list}
}
