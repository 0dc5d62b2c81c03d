package dto

import "github.com/FlynntKnapp/planit-mini/internal/core/domain"

// CreateProjectRequest defines data for creating a new project.
type CreateProjectRequest struct {
	WorkspaceID string `json:"workspaceID" binding:"required"`
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description"`
	Slug        string `json:"slug" binding:"required,slug"`
}

// UpdateProjectRequest defines data for updating a project. Pointer fields
// distinguish omitted from zero values.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	Description *string `json:"description"`
	Slug        *string `json:"slug" binding:"omitempty,slug"`
}

// ProjectResponse defines data returned for a project.
type ProjectResponse struct {
	ProjectID   string `json:"projectID"`
	WorkspaceID string `json:"workspaceID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

// ToProjectResponse converts domain.Project to DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Description: p.Description,
		Slug:        p.Slug,
	}
}

// ListProjectsResponse wraps a list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToListProjectsResponse converts a slice of domain.Project to DTO.
func ToListProjectsResponse(ps []domain.Project) ListProjectsResponse {
	list := make([]ProjectResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProjectResponse(&p)
	}
	return ListProjectsResponse{Projects: list}
}
