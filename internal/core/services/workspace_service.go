package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/google/uuid"
)

// workspaceService handles business logic related to workspaces and memberships.
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	userRepo      portsrepo.UserRepositoryFacade
}

// NewWorkspaceService creates a new workspaceService.
func NewWorkspaceService(wr portsrepo.WorkspaceRepositoryFacade, ur portsrepo.UserRepositoryFacade, evaluator *authz.Evaluator) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		BaseService:   BaseService{Evaluator: evaluator},
		workspaceRepo: wr,
		userRepo:      ur,
	}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// GetWorkspace retrieves a workspace the principal may see. Non-members get
// a not-found error rather than a forbidden one, so workspace IDs cannot be
// probed.
func (s *workspaceService) GetWorkspace(ctx context.Context, p authz.Principal, workspaceID string) (*domain.Workspace, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("workspace with ID %s not found", workspaceID))
		}
		s.LogError(ctx, err, "Failed to find workspace", slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if !p.IsStaff {
		member, err := s.workspaceRepo.HasWorkspaceRole(ctx, p.UserID, workspaceID, domain.RoleViewer, domain.RoleManager, domain.RoleAdmin)
		if err != nil {
			s.LogError(ctx, err, "Membership check failed", slog.String("workspace_id", workspaceID))
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if !member {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("workspace with ID %s not found", workspaceID))
		}
	}
	return workspace, nil
}

// GetWorkspaceBySlug retrieves a workspace by its slug with the same
// visibility rules as GetWorkspace.
func (s *workspaceService) GetWorkspaceBySlug(ctx context.Context, p authz.Principal, slug string) (*domain.Workspace, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	workspace, err := s.workspaceRepo.FindWorkspaceBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("workspace with slug %q not found", slug))
		}
		s.LogError(ctx, err, "Failed to find workspace by slug", slog.String("slug", slug))
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if !p.IsStaff {
		member, err := s.workspaceRepo.HasWorkspaceRole(ctx, p.UserID, workspace.WorkspaceID, domain.RoleViewer, domain.RoleManager, domain.RoleAdmin)
		if err != nil {
			s.LogError(ctx, err, "Membership check failed", slog.String("workspace_id", workspace.WorkspaceID))
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if !member {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("workspace with slug %q not found", slug))
		}
	}
	return workspace, nil
}

// ListWorkspaces retrieves the workspaces visible to the principal: all of
// them for staff, membership-scoped for everyone else.
func (s *workspaceService) ListWorkspaces(ctx context.Context, p authz.Principal, limit, offset int) ([]domain.Workspace, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	visibleTo := p.UserID
	if p.IsStaff {
		visibleTo = ""
	}
	workspaces, err := s.workspaceRepo.ListWorkspaces(ctx, visibleTo, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces")
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// ListMembers retrieves the memberships of a workspace the principal can see.
func (s *workspaceService) ListMembers(ctx context.Context, p authz.Principal, workspaceID string) ([]domain.Membership, error) {
	// Visibility check doubles as existence check.
	if _, err := s.GetWorkspace(ctx, p, workspaceID); err != nil {
		return nil, err
	}
	members, err := s.workspaceRepo.ListWorkspaceMemberships(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace members", slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// CreateWorkspace creates a new workspace and makes the creator the initial
// admin. Any authenticated user may create a workspace.
func (s *workspaceService) CreateWorkspace(ctx context.Context, p authz.Principal, name, slug string) (*domain.Workspace, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}

	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        name,
		Slug:        slug,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("workspace with name %q or slug %q already exists", name, slug))
		}
		s.LogError(ctx, err, "Failed to save workspace", slog.String("name", name))
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	membership := domain.Membership{
		MembershipID: uuid.NewString(),
		UserID:       p.UserID,
		WorkspaceID:  workspace.WorkspaceID,
		Role:         domain.RoleAdmin,
		JoinedAt:     now,
	}
	if err := s.workspaceRepo.AddMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as admin", slog.String("workspace_id", workspace.WorkspaceID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	s.LogInfo(ctx, "Workspace created", slog.String("workspace_id", workspace.WorkspaceID), slog.String("creator_user_id", p.UserID))
	return &workspace, nil
}

// UpdateWorkspace updates a workspace's name and slug. The workspace record
// itself resolves to no owning workspace, so only staff and maintenance
// managers pass the write check; workspace admins are granted explicitly.
func (s *workspaceService) UpdateWorkspace(ctx context.Context, p authz.Principal, workspaceID, name, slug string) (*domain.Workspace, error) {
	workspace, err := s.GetWorkspace(ctx, p, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.requireWorkspaceAdmin(ctx, p, workspaceID); err != nil {
		return nil, err
	}

	workspace.Name = name
	workspace.Slug = slug
	workspace.LastUpdatedAt = time.Now()
	workspace.LastUpdatedBy = p.UserID

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *workspace); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("workspace with name %q or slug %q already exists", name, slug))
		}
		s.LogError(ctx, err, "Failed to update workspace", slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return workspace, nil
}

// DeleteWorkspace deletes a workspace and, by cascade, everything it owns.
func (s *workspaceService) DeleteWorkspace(ctx context.Context, p authz.Principal, workspaceID string) error {
	if _, err := s.GetWorkspace(ctx, p, workspaceID); err != nil {
		return err
	}
	if err := s.requireWorkspaceAdmin(ctx, p, workspaceID); err != nil {
		return err
	}
	if err := s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		s.LogError(ctx, err, "Failed to delete workspace", slog.String("workspace_id", workspaceID))
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	s.LogInfo(ctx, "Workspace deleted", slog.String("workspace_id", workspaceID))
	return nil
}

// AddMember adds a user to a workspace with a role.
func (s *workspaceService) AddMember(ctx context.Context, p authz.Principal, workspaceID, targetUserID string, role domain.MembershipRole) (*domain.Membership, error) {
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid role %q", role))
	}
	if _, err := s.GetWorkspace(ctx, p, workspaceID); err != nil {
		return nil, err
	}
	if err := s.requireWorkspaceAdmin(ctx, p, workspaceID); err != nil {
		return nil, err
	}

	// Validate the target user exists.
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("user with ID %s not found", targetUserID))
		}
		s.LogError(ctx, err, "Failed to validate target user", slog.String("target_user_id", targetUserID))
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}

	membership := domain.Membership{
		MembershipID: uuid.NewString(),
		UserID:       targetUserID,
		WorkspaceID:  workspaceID,
		Role:         role,
		JoinedAt:     time.Now(),
	}
	if err := s.workspaceRepo.AddMembership(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("user is already a member of this workspace")
		}
		s.LogError(ctx, err, "Failed to add member", slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID))
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.LogInfo(ctx, "Member added", slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID), slog.String("role", string(role)))
	return &membership, nil
}

// UpdateMemberRole changes a member's role in a workspace and returns the
// updated membership.
func (s *workspaceService) UpdateMemberRole(ctx context.Context, p authz.Principal, workspaceID, targetUserID string, role domain.MembershipRole) (*domain.Membership, error) {
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid role %q", role))
	}
	if _, err := s.GetWorkspace(ctx, p, workspaceID); err != nil {
		return nil, err
	}
	if err := s.requireWorkspaceAdmin(ctx, p, workspaceID); err != nil {
		return nil, err
	}

	membership, err := s.workspaceRepo.FindMembership(ctx, targetUserID, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		s.LogError(ctx, err, "Failed to find membership", slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID))
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	if membership.Role == role {
		return membership, nil
	}

	if err := s.workspaceRepo.UpdateMembershipRole(ctx, targetUserID, workspaceID, role); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		s.LogError(ctx, err, "Failed to update member role", slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID))
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	membership.Role = role
	s.LogInfo(ctx, "Member role updated", slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID), slog.String("role", string(role)))
	return membership, nil
}

// RemoveMember removes a user from a workspace.
func (s *workspaceService) RemoveMember(ctx context.Context, p authz.Principal, workspaceID, targetUserID string) error {
	if _, err := s.GetWorkspace(ctx, p, workspaceID); err != nil {
		return err
	}
	// Members may remove themselves; removing others requires admin.
	if p.UserID != targetUserID {
		if err := s.requireWorkspaceAdmin(ctx, p, workspaceID); err != nil {
			return err
		}
	}
	if err := s.workspaceRepo.RemoveMembership(ctx, targetUserID, workspaceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("membership not found")
		}
		s.LogError(ctx, err, "Failed to remove member", slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to remove member: %w", err)
	}
	s.LogInfo(ctx, "Member removed", slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID))
	return nil
}

// requireWorkspaceAdmin allows staff, maintenance managers, and workspace
// admins to manage the workspace itself and its membership.
func (s *workspaceService) requireWorkspaceAdmin(ctx context.Context, p authz.Principal, workspaceID string) error {
	if p.Privileged() {
		return nil
	}
	isAdmin, err := s.workspaceRepo.HasWorkspaceRole(ctx, p.UserID, workspaceID, domain.RoleAdmin)
	if err != nil {
		s.LogError(ctx, err, "Admin role check failed", slog.String("workspace_id", workspaceID))
		return fmt.Errorf("failed to check role: %w", err)
	}
	if !isAdmin {
		return apperrors.NewForbiddenError("admin role required")
	}
	return nil
}
