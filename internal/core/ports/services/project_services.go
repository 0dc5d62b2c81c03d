package services

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
)

// ProjectSvcFacade defines operations for project data
type ProjectSvcFacade interface {
	// GetProject retrieves a project visible to the principal.
	GetProject(ctx context.Context, p authz.Principal, projectID string) (*domain.Project, error)

	// ListProjects retrieves the projects visible to the principal.
	ListProjects(ctx context.Context, p authz.Principal, limit, offset int) ([]domain.Project, error)

	// CreateProject persists a new project in the named workspace.
	CreateProject(ctx context.Context, p authz.Principal, req dto.CreateProjectRequest) (*domain.Project, error)

	// UpdateProject updates an existing project after an object-level check.
	UpdateProject(ctx context.Context, p authz.Principal, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)

	// DeleteProject deletes a project after an object-level check.
	DeleteProject(ctx context.Context, p authz.Principal, projectID string) error
}
