package repositories

import (
	"context"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// TaskReader defines read operations for maintenance task data
type TaskReader interface {
	// FindTaskByID retrieves a specific maintenance task by its ID.
	FindTaskByID(ctx context.Context, taskID string) (*domain.MaintenanceTask, error)

	// ListTasks retrieves maintenance tasks, narrowed to workspaces
	// visibleToUserID is a member of when non-empty.
	ListTasks(ctx context.Context, visibleToUserID string, limit, offset int) ([]domain.MaintenanceTask, error)
}

// TaskWriter defines write operations for maintenance task data
type TaskWriter interface {
	SaveTask(ctx context.Context, task domain.MaintenanceTask) error
	UpdateTask(ctx context.Context, task domain.MaintenanceTask) error
	// DeleteTask deletes a task; it fails while work orders still reference it.
	DeleteTask(ctx context.Context, taskID string) error
}

// TaskRepositoryFacade combines all maintenance-task repository interfaces
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}

// WorkOrderListFilter narrows work order list queries. Zero values mean "no
// filter"; VisibleToUserID works as in AssetListFilter.
type WorkOrderListFilter struct {
	VisibleToUserID string
	AssetID         string
	TaskID          string
	Status          domain.WorkOrderStatus
	DueAfter        *time.Time
	DueBefore       *time.Time
	Limit           int
	Offset          int
}

// WorkOrderReader defines read operations for work order data
type WorkOrderReader interface {
	// FindWorkOrderByID retrieves a work order with its asset and task
	// references hydrated, so the workspace can be derived when needed.
	FindWorkOrderByID(ctx context.Context, workOrderID string) (*domain.WorkOrder, error)

	// ListWorkOrders retrieves work orders matching the filter.
	ListWorkOrders(ctx context.Context, filter WorkOrderListFilter) ([]domain.WorkOrder, error)
}

// WorkOrderWriter defines write operations for work order data
type WorkOrderWriter interface {
	SaveWorkOrder(ctx context.Context, workOrder domain.WorkOrder) error
	UpdateWorkOrder(ctx context.Context, workOrder domain.WorkOrder) error
	DeleteWorkOrder(ctx context.Context, workOrderID string) error
}

// WorkOrderRepositoryFacade combines all work-order repository interfaces
type WorkOrderRepositoryFacade interface {
	WorkOrderReader
	WorkOrderWriter
}

// ActivityListFilter narrows activity list queries.
type ActivityListFilter struct {
	VisibleToUserID string
	AssetID         string
	Kind            domain.ActivityKind
	OccurredAfter   *time.Time
	OccurredBefore  *time.Time
	Limit           int
	Offset          int
}

// ActivityReader defines read operations for activity data
type ActivityReader interface {
	FindActivityByID(ctx context.Context, activityID string) (*domain.ActivityInstance, error)
	ListActivities(ctx context.Context, filter ActivityListFilter) ([]domain.ActivityInstance, error)
}

// ActivityWriter defines write operations for activity data
type ActivityWriter interface {
	SaveActivity(ctx context.Context, activity domain.ActivityInstance) error
	UpdateActivity(ctx context.Context, activity domain.ActivityInstance) error
	DeleteActivity(ctx context.Context, activityID string) error
}

// ActivityRepositoryFacade combines all activity repository interfaces
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
