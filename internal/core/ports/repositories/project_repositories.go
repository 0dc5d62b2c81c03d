package repositories

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves projects, narrowed to workspaces visibleToUserID
	// is a member of when non-empty.
	ListProjects(ctx context.Context, visibleToUserID string, limit, offset int) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates an existing project.
	UpdateProject(ctx context.Context, project domain.Project) error

	// DeleteProject deletes a project. Assets referencing it are detached.
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
