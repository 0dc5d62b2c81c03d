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

type PgxTaskRepository struct {
	BaseRepository
}

// newPgxTaskRepository creates a new repository for maintenance task data.
func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

var FULL_TASK_SELECT_QUERY = `
SELECT
	t.task_id, t.workspace_id, t.name, t.cadence, t.description,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM maintenance_tasks t
`

func (r *PgxTaskRepository) getTasks(ctx context.Context, filterQuery string, args ...any) ([]domain.MaintenanceTask, error) {
	query := FULL_TASK_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query maintenance tasks", err)
	}
	defer rows.Close()
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.MaintenanceTask])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.MaintenanceTask{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect maintenance task rows", err)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.MaintenanceTask, error) {
	tasks, err := r.getTasks(ctx, `WHERE t.task_id = $1`, taskID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &tasks[0], nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context, visibleToUserID string, limit, offset int) ([]domain.MaintenanceTask, error) {
	if visibleToUserID == "" {
		return r.getTasks(ctx, `ORDER BY t.name LIMIT $1 OFFSET $2`, limit, offset)
	}
	query := `SELECT DISTINCT
	t.task_id, t.workspace_id, t.name, t.cadence, t.description,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM maintenance_tasks t
JOIN memberships m ON m.workspace_id = t.workspace_id
WHERE m.user_id = $1
ORDER BY t.name LIMIT $2 OFFSET $3`
	rows, err := r.Pool.Query(ctx, query, visibleToUserID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query maintenance tasks", err)
	}
	defer rows.Close()
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.MaintenanceTask])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.MaintenanceTask{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect maintenance task rows", err)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.MaintenanceTask) error {
	query := `INSERT INTO maintenance_tasks (
	task_id, workspace_id, name, cadence, description,
	created_at, created_by, last_updated_at, last_updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.Pool.Exec(ctx, query,
		task.TaskID, task.WorkspaceID, task.Name, task.Cadence, task.Description,
		task.CreatedAt, task.CreatedBy, task.LastUpdatedAt, task.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("task name already exists in this workspace")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("workspace does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save task "+task.TaskID, err)
	}
	return nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.MaintenanceTask) error {
	query := `UPDATE maintenance_tasks SET
	name = $2, cadence = $3, description = $4,
	last_updated_at = $5, last_updated_by = $6
WHERE task_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		task.TaskID, task.Name, task.Cadence, task.Description,
		task.LastUpdatedAt, task.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("task name already exists in this workspace")
		}
		return apperrors.NewAppError(500, "failed to update task "+task.TaskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM maintenance_tasks WHERE task_id = $1`, taskID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("task is still referenced by work orders")
		}
		return apperrors.NewAppError(500, "failed to delete task "+taskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
