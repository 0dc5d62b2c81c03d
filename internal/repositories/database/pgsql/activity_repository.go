package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for activity data.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

var FULL_ACTIVITY_SELECT_QUERY = `
SELECT
	i.activity_id, i.workspace_id, i.work_order_id, i.asset_id, i.kind,
	i.note, i.occurred_at, i.performed_by,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM activity_instances i
`

func (r *PgxActivityRepository) getActivities(ctx context.Context, filterQuery string, args ...any) ([]domain.ActivityInstance, error) {
	query := FULL_ACTIVITY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity instances", err)
	}
	defer rows.Close()
	activities, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ActivityInstance])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.ActivityInstance{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect activity rows", err)
	}
	return activities, nil
}

func (r *PgxActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.ActivityInstance, error) {
	activities, err := r.getActivities(ctx, `WHERE i.activity_id = $1`, activityID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, apperrors.ErrNotFound
	}
	activity := activities[0]

	assetRows, err := r.Pool.Query(ctx, `SELECT
	a.asset_id, a.workspace_id, a.project_id, a.name, a.kind,
	a.form_factor_id, a.os_id, a.location, a.purchase_date,
	a.purchase_cost, a.warranty_expires, a.notes,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM assets a WHERE a.asset_id = $1`, activity.AssetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity asset", err)
	}
	asset, err := pgx.CollectOneRow(assetRows, pgx.RowToStructByName[domain.Asset])
	if err == nil {
		activity.Asset = &asset
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect activity asset row", err)
	}

	return &activity, nil
}

func (r *PgxActivityRepository) ListActivities(ctx context.Context, filter portsrepo.ActivityListFilter) ([]domain.ActivityInstance, error) {
	var conditions []string
	var args []any
	argIdx := 1

	joins := ""
	if filter.VisibleToUserID != "" {
		joins = "JOIN memberships m ON m.workspace_id = i.workspace_id\n"
		conditions = append(conditions, fmt.Sprintf("m.user_id = $%d", argIdx))
		args = append(args, filter.VisibleToUserID)
		argIdx++
	}
	if filter.AssetID != "" {
		conditions = append(conditions, fmt.Sprintf("i.asset_id = $%d", argIdx))
		args = append(args, filter.AssetID)
		argIdx++
	}
	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("i.kind = $%d", argIdx))
		args = append(args, filter.Kind)
		argIdx++
	}
	if filter.OccurredAfter != nil {
		conditions = append(conditions, fmt.Sprintf("i.occurred_at > $%d", argIdx))
		args = append(args, *filter.OccurredAfter)
		argIdx++
	}
	if filter.OccurredBefore != nil {
		conditions = append(conditions, fmt.Sprintf("i.occurred_at < $%d", argIdx))
		args = append(args, *filter.OccurredBefore)
		argIdx++
	}

	query := `SELECT DISTINCT
	i.activity_id, i.workspace_id, i.work_order_id, i.asset_id, i.kind,
	i.note, i.occurred_at, i.performed_by,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM activity_instances i
` + joins
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += fmt.Sprintf("ORDER BY i.occurred_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity instances", err)
	}
	defer rows.Close()
	activities, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ActivityInstance])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.ActivityInstance{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect activity rows", err)
	}
	return activities, nil
}

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.ActivityInstance) error {
	query := `INSERT INTO activity_instances (
	activity_id, workspace_id, work_order_id, asset_id, kind, note,
	occurred_at, performed_by,
	created_at, created_by, last_updated_at, last_updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.Pool.Exec(ctx, query,
		activity.ActivityID, activity.WorkspaceID, activity.WorkOrderID, activity.AssetID,
		activity.Kind, activity.Note, activity.OccurredAt, activity.PerformedBy,
		activity.CreatedAt, activity.CreatedBy, activity.LastUpdatedAt, activity.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("activity already exists")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("referenced workspace, asset, work order or user does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save activity "+activity.ActivityID, err)
	}
	return nil
}

func (r *PgxActivityRepository) UpdateActivity(ctx context.Context, activity domain.ActivityInstance) error {
	query := `UPDATE activity_instances SET
	kind = $2, note = $3, occurred_at = $4,
	last_updated_at = $5, last_updated_by = $6
WHERE activity_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		activity.ActivityID, activity.Kind, activity.Note, activity.OccurredAt,
		activity.LastUpdatedAt, activity.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update activity "+activity.ActivityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxActivityRepository) DeleteActivity(ctx context.Context, activityID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM activity_instances WHERE activity_id = $1`, activityID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete activity "+activityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
