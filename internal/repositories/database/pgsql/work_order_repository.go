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

type PgxWorkOrderRepository struct {
	BaseRepository
}

// newPgxWorkOrderRepository creates a new repository for work order data.
func newPgxWorkOrderRepository(pool *pgxpool.Pool) portsrepo.WorkOrderRepositoryFacade {
	return &PgxWorkOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkOrderRepositoryFacade = (*PgxWorkOrderRepository)(nil)

var FULL_WORK_ORDER_SELECT_QUERY = `
SELECT
	w.work_order_id, w.workspace_id, w.asset_id, w.task_id, w.due,
	w.status, w.assigned_to, w.requested_by,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM work_orders w
`

func (r *PgxWorkOrderRepository) getWorkOrders(ctx context.Context, filterQuery string, args ...any) ([]domain.WorkOrder, error) {
	query := FULL_WORK_ORDER_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query work orders", err)
	}
	defer rows.Close()
	workOrders, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.WorkOrder])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.WorkOrder{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect work order rows", err)
	}
	return workOrders, nil
}

// FindWorkOrderByID also loads the referenced asset and task so callers can
// derive the workspace without extra round trips.
func (r *PgxWorkOrderRepository) FindWorkOrderByID(ctx context.Context, workOrderID string) (*domain.WorkOrder, error) {
	workOrders, err := r.getWorkOrders(ctx, `WHERE w.work_order_id = $1`, workOrderID)
	if err != nil {
		return nil, err
	}
	if len(workOrders) == 0 {
		return nil, apperrors.ErrNotFound
	}
	workOrder := workOrders[0]

	assetRows, err := r.Pool.Query(ctx, `SELECT
	a.asset_id, a.workspace_id, a.project_id, a.name, a.kind,
	a.form_factor_id, a.os_id, a.location, a.purchase_date,
	a.purchase_cost, a.warranty_expires, a.notes,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM assets a WHERE a.asset_id = $1`, workOrder.AssetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query work order asset", err)
	}
	asset, err := pgx.CollectOneRow(assetRows, pgx.RowToStructByName[domain.Asset])
	if err == nil {
		workOrder.Asset = &asset
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect work order asset row", err)
	}

	taskRows, err := r.Pool.Query(ctx, `SELECT
	t.task_id, t.workspace_id, t.name, t.cadence, t.description,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM maintenance_tasks t WHERE t.task_id = $1`, workOrder.TaskID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query work order task", err)
	}
	task, err := pgx.CollectOneRow(taskRows, pgx.RowToStructByName[domain.MaintenanceTask])
	if err == nil {
		workOrder.Task = &task
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect work order task row", err)
	}

	return &workOrder, nil
}

func (r *PgxWorkOrderRepository) ListWorkOrders(ctx context.Context, filter portsrepo.WorkOrderListFilter) ([]domain.WorkOrder, error) {
	var conditions []string
	var args []any
	argIdx := 1

	joins := ""
	if filter.VisibleToUserID != "" {
		joins = "JOIN memberships m ON m.workspace_id = w.workspace_id\n"
		conditions = append(conditions, fmt.Sprintf("m.user_id = $%d", argIdx))
		args = append(args, filter.VisibleToUserID)
		argIdx++
	}
	if filter.AssetID != "" {
		conditions = append(conditions, fmt.Sprintf("w.asset_id = $%d", argIdx))
		args = append(args, filter.AssetID)
		argIdx++
	}
	if filter.TaskID != "" {
		conditions = append(conditions, fmt.Sprintf("w.task_id = $%d", argIdx))
		args = append(args, filter.TaskID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("w.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.DueAfter != nil {
		conditions = append(conditions, fmt.Sprintf("w.due > $%d", argIdx))
		args = append(args, *filter.DueAfter)
		argIdx++
	}
	if filter.DueBefore != nil {
		conditions = append(conditions, fmt.Sprintf("w.due < $%d", argIdx))
		args = append(args, *filter.DueBefore)
		argIdx++
	}

	query := `SELECT DISTINCT
	w.work_order_id, w.workspace_id, w.asset_id, w.task_id, w.due,
	w.status, w.assigned_to, w.requested_by,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM work_orders w
` + joins
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += fmt.Sprintf("ORDER BY w.due DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query work orders", err)
	}
	defer rows.Close()
	workOrders, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.WorkOrder])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.WorkOrder{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect work order rows", err)
	}
	return workOrders, nil
}

func (r *PgxWorkOrderRepository) SaveWorkOrder(ctx context.Context, workOrder domain.WorkOrder) error {
	query := `INSERT INTO work_orders (
	work_order_id, workspace_id, asset_id, task_id, due, status,
	assigned_to, requested_by,
	created_at, created_by, last_updated_at, last_updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.Pool.Exec(ctx, query,
		workOrder.WorkOrderID, workOrder.WorkspaceID, workOrder.AssetID, workOrder.TaskID,
		workOrder.Due, workOrder.Status, workOrder.AssignedTo, workOrder.RequestedBy,
		workOrder.CreatedAt, workOrder.CreatedBy, workOrder.LastUpdatedAt, workOrder.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("work order already exists")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("referenced workspace, asset, task or user does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save work order "+workOrder.WorkOrderID, err)
	}
	return nil
}

func (r *PgxWorkOrderRepository) UpdateWorkOrder(ctx context.Context, workOrder domain.WorkOrder) error {
	query := `UPDATE work_orders SET
	due = $2, status = $3, assigned_to = $4,
	last_updated_at = $5, last_updated_by = $6
WHERE work_order_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		workOrder.WorkOrderID, workOrder.Due, workOrder.Status, workOrder.AssignedTo,
		workOrder.LastUpdatedAt, workOrder.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("assigned user does not exist")
		}
		return apperrors.NewAppError(500, "failed to update work order "+workOrder.WorkOrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkOrderRepository) DeleteWorkOrder(ctx context.Context, workOrderID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM work_orders WHERE work_order_id = $1`, workOrderID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete work order "+workOrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
