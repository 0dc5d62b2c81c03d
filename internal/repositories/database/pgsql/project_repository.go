package pgsql

import (
	"context"
	"errors"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

var FULL_PROJECT_SELECT_QUERY = `
SELECT
	p.project_id, p.workspace_id, p.name, p.description, p.slug,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM projects p
`

func (r *PgxProjectRepository) getProjects(ctx context.Context, filterQuery string, args ...any) ([]domain.Project, error) {
	query := FULL_PROJECT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()
	projects, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Project])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Project{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect project rows", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	projects, err := r.getProjects(ctx, `WHERE p.project_id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &projects[0], nil
}

// ListProjects narrows to workspaces the user belongs to when
// visibleToUserID is non-empty. The DISTINCT guards against duplicate rows
// if a user ever holds multiple membership paths to a workspace.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, visibleToUserID string, limit, offset int) ([]domain.Project, error) {
	if visibleToUserID == "" {
		return r.getProjects(ctx, `ORDER BY p.name LIMIT $1 OFFSET $2`, limit, offset)
	}
	query := `SELECT DISTINCT
	p.project_id, p.workspace_id, p.name, p.description, p.slug,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM projects p
JOIN memberships m ON m.workspace_id = p.workspace_id
WHERE m.user_id = $1
ORDER BY p.name LIMIT $2 OFFSET $3`
	rows, err := r.Pool.Query(ctx, query, visibleToUserID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()
	projects, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Project])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect project rows", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (
			project_id, workspace_id, name, description, slug,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.WorkspaceID,
		project.Name,
		project.Description,
		project.Slug,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique (workspace_id, slug)
				return apperrors.NewConflictError("project slug already exists in this workspace")
			}
			if pgErr.Code == "23503" { // workspace missing
				return apperrors.NewValidationFailedError("workspace does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save project "+project.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, slug = $4, last_updated_at = $5, last_updated_by = $6
		WHERE project_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		project.Slug,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("project slug already exists in this workspace")
		}
		return apperrors.NewAppError(500, "failed to update project "+project.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete project "+projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
