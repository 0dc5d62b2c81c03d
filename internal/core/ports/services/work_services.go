package services

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
)

// TaskSvcFacade defines operations for maintenance task data
type TaskSvcFacade interface {
	GetTask(ctx context.Context, p authz.Principal, taskID string) (*domain.MaintenanceTask, error)
	ListTasks(ctx context.Context, p authz.Principal, limit, offset int) ([]domain.MaintenanceTask, error)
	CreateTask(ctx context.Context, p authz.Principal, req dto.CreateTaskRequest) (*domain.MaintenanceTask, error)
	UpdateTask(ctx context.Context, p authz.Principal, taskID string, req dto.UpdateTaskRequest) (*domain.MaintenanceTask, error)
	DeleteTask(ctx context.Context, p authz.Principal, taskID string) error
}

// WorkOrderSvcFacade defines operations for work order data
type WorkOrderSvcFacade interface {
	GetWorkOrder(ctx context.Context, p authz.Principal, workOrderID string) (*domain.WorkOrder, error)
	ListWorkOrders(ctx context.Context, p authz.Principal, params dto.ListWorkOrdersParams) ([]domain.WorkOrder, error)
	CreateWorkOrder(ctx context.Context, p authz.Principal, req dto.CreateWorkOrderRequest) (*domain.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, p authz.Principal, workOrderID string, req dto.UpdateWorkOrderRequest) (*domain.WorkOrder, error)
	DeleteWorkOrder(ctx context.Context, p authz.Principal, workOrderID string) error
}

// ActivitySvcFacade defines operations for logged maintenance activity
type ActivitySvcFacade interface {
	GetActivity(ctx context.Context, p authz.Principal, activityID string) (*domain.ActivityInstance, error)
	ListActivities(ctx context.Context, p authz.Principal, params dto.ListActivitiesParams) ([]domain.ActivityInstance, error)

	// ActivityFeed returns the most recent activity across every workspace
	// the principal can see.
	ActivityFeed(ctx context.Context, p authz.Principal, limit int) ([]domain.ActivityInstance, error)
	CreateActivity(ctx context.Context, p authz.Principal, req dto.CreateActivityRequest) (*domain.ActivityInstance, error)
	UpdateActivity(ctx context.Context, p authz.Principal, activityID string, req dto.UpdateActivityRequest) (*domain.ActivityInstance, error)
	DeleteActivity(ctx context.Context, p authz.Principal, activityID string) error
}
