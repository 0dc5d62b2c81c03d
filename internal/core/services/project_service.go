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
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/google/uuid"
)

// projectService handles business logic related to projects.
type projectService struct {
	BaseService
	projectRepo   portsrepo.ProjectRepositoryFacade
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewProjectService creates a new projectService.
func NewProjectService(pr portsrepo.ProjectRepositoryFacade, wr portsrepo.WorkspaceRepositoryFacade, evaluator *authz.Evaluator) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService:   BaseService{Evaluator: evaluator},
		projectRepo:   pr,
		workspaceRepo: wr,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// GetProject retrieves a project visible to the principal.
func (s *projectService) GetProject(ctx context.Context, p authz.Principal, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("project with ID %s not found", projectID))
		}
		s.LogError(ctx, err, "Failed to find project", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if err := s.RequireVisible(ctx, p, project, s.workspaceRepo); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves the projects visible to the principal.
func (s *projectService) ListProjects(ctx context.Context, p authz.Principal, limit, offset int) ([]domain.Project, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	visibleTo := p.UserID
	if p.IsStaff {
		visibleTo = ""
	}
	projects, err := s.projectRepo.ListProjects(ctx, visibleTo, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProject persists a new project in the named workspace. Any
// authenticated member may create; only the target workspace must be visible.
func (s *projectService) CreateProject(ctx context.Context, p authz.Principal, req dto.CreateProjectRequest) (*domain.Project, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.requireWorkspaceVisible(ctx, p, req.WorkspaceID); err != nil {
		return nil, err
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
		Slug:        req.Slug,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("project with slug %q already exists in this workspace", req.Slug))
		}
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("workspace with ID %s not found", req.WorkspaceID))
		}
		s.LogError(ctx, err, "Failed to save project", slog.String("workspace_id", req.WorkspaceID))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID), slog.String("workspace_id", req.WorkspaceID))
	return &project, nil
}

// UpdateProject updates an existing project after an object-level check.
func (s *projectService) UpdateProject(ctx context.Context, p authz.Principal, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.GetProject(ctx, p, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, project); err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Slug != nil {
		project.Slug = *req.Slug
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = p.UserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("project with slug %q already exists in this workspace", project.Slug))
		}
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject deletes a project after an object-level check.
func (s *projectService) DeleteProject(ctx context.Context, p authz.Principal, projectID string) error {
	project, err := s.GetProject(ctx, p, projectID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, project); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.LogInfo(ctx, "Project deleted", slog.String("project_id", projectID))
	return nil
}

// requireWorkspaceVisible verifies the principal can see the workspace they
// are creating into. Denied as not-found to avoid leaking workspace IDs.
func (s *projectService) requireWorkspaceVisible(ctx context.Context, p authz.Principal, workspaceID string) error {
	if p.Privileged() {
		return nil
	}
	member, err := s.workspaceRepo.HasWorkspaceRole(ctx, p.UserID, workspaceID, domain.RoleViewer, domain.RoleManager, domain.RoleAdmin)
	if err != nil {
		s.LogError(ctx, err, "Membership check failed", slog.String("workspace_id", workspaceID))
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return apperrors.NewNotFoundError(fmt.Sprintf("workspace with ID %s not found", workspaceID))
	}
	return nil
}
