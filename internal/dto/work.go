package dto

import (
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// --- Maintenance task DTOs ---

// CreateTaskRequest defines data for creating a maintenance task.
type CreateTaskRequest struct {
	WorkspaceID string `json:"workspaceID" binding:"required"`
	Name        string `json:"name" binding:"required,max=120"`
	Cadence     string `json:"cadence" binding:"required,max=30"`
	Description string `json:"description"`
}

// UpdateTaskRequest defines data for updating a maintenance task.
type UpdateTaskRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	Cadence     *string `json:"cadence" binding:"omitempty,max=30"`
	Description *string `json:"description"`
}

// TaskResponse defines data returned for a maintenance task.
type TaskResponse struct {
	TaskID      string `json:"taskID"`
	WorkspaceID string `json:"workspaceID"`
	Name        string `json:"name"`
	Cadence     string `json:"cadence"`
	Description string `json:"description"`
}

// ToTaskResponse converts domain.MaintenanceTask to DTO.
func ToTaskResponse(t *domain.MaintenanceTask) TaskResponse {
	return TaskResponse{
		TaskID:      t.TaskID,
		WorkspaceID: t.WorkspaceID,
		Name:        t.Name,
		Cadence:     t.Cadence,
		Description: t.Description,
	}
}

// ListTasksResponse wraps a list of maintenance tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// ToListTasksResponse converts a slice of domain.MaintenanceTask to DTO.
func ToListTasksResponse(ts []domain.MaintenanceTask) ListTasksResponse {
	list := make([]TaskResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTaskResponse(&t)
	}
	return ListTasksResponse{Tasks: list}
}

// --- Work order DTOs ---

// CreateWorkOrderRequest defines data for scheduling a work order.
type CreateWorkOrderRequest struct {
	WorkspaceID string    `json:"workspaceID" binding:"required"`
	AssetID     string    `json:"assetID" binding:"required"`
	TaskID      string    `json:"taskID" binding:"required"`
	Due         time.Time `json:"due" binding:"required"`
	AssignedTo  *string   `json:"assignedTo"`
}

// UpdateWorkOrderRequest defines data for updating a work order.
type UpdateWorkOrderRequest struct {
	Due        *time.Time              `json:"due"`
	Status     *domain.WorkOrderStatus `json:"status" binding:"omitempty,oneof=open done cancelled"`
	AssignedTo *string                 `json:"assignedTo"`
}

// ListWorkOrdersParams defines query parameters for listing work orders.
type ListWorkOrdersParams struct {
	AssetID   string     `form:"assetID"`
	TaskID    string     `form:"taskID"`
	Status    string     `form:"status" binding:"omitempty,oneof=open done cancelled"`
	DueAfter  *time.Time `form:"dueAfter" time_format:"2006-01-02"`
	DueBefore *time.Time `form:"dueBefore" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20" binding:"min=1,max=100"`
	Offset    int        `form:"offset,default=0" binding:"min=0"`
}

// WorkOrderResponse defines data returned for a work order.
type WorkOrderResponse struct {
	WorkOrderID string                 `json:"workOrderID"`
	WorkspaceID string                 `json:"workspaceID"`
	AssetID     string                 `json:"assetID"`
	TaskID      string                 `json:"taskID"`
	Due         time.Time              `json:"due"`
	Status      domain.WorkOrderStatus `json:"status"`
	AssignedTo  *string                `json:"assignedTo,omitempty"`
	RequestedBy *string                `json:"requestedBy,omitempty"`
}

// ToWorkOrderResponse converts domain.WorkOrder to DTO.
func ToWorkOrderResponse(w *domain.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		WorkOrderID: w.WorkOrderID,
		WorkspaceID: w.WorkspaceID,
		AssetID:     w.AssetID,
		TaskID:      w.TaskID,
		Due:         w.Due,
		Status:      w.Status,
		AssignedTo:  w.AssignedTo,
		RequestedBy: w.RequestedBy,
	}
}

// ListWorkOrdersResponse wraps a list of work orders.
type ListWorkOrdersResponse struct {
	WorkOrders []WorkOrderResponse `json:"workOrders"`
}

// ToListWorkOrdersResponse converts a slice of domain.WorkOrder to DTO.
func ToListWorkOrdersResponse(ws []domain.WorkOrder) ListWorkOrdersResponse {
	list := make([]WorkOrderResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkOrderResponse(&w)
	}
	return ListWorkOrdersResponse{WorkOrders: list}
}

// --- Activity DTOs ---

// CreateActivityRequest defines data for logging a maintenance activity.
type CreateActivityRequest struct {
	WorkspaceID string              `json:"workspaceID" binding:"required"`
	WorkOrderID *string             `json:"workOrderID"`
	AssetID     string              `json:"assetID" binding:"required"`
	Kind        domain.ActivityKind `json:"kind" binding:"required,oneof=checked patched backup_verified"`
	Note        string              `json:"note"`
	OccurredAt  time.Time           `json:"occurredAt" binding:"required"`
}

// UpdateActivityRequest defines data for updating a logged activity.
type UpdateActivityRequest struct {
	Kind       *domain.ActivityKind `json:"kind" binding:"omitempty,oneof=checked patched backup_verified"`
	Note       *string              `json:"note"`
	OccurredAt *time.Time           `json:"occurredAt"`
}

// ListActivitiesParams defines query parameters for listing activity records.
type ListActivitiesParams struct {
	AssetID        string     `form:"assetID"`
	Kind           string     `form:"kind" binding:"omitempty,oneof=checked patched backup_verified"`
	OccurredAfter  *time.Time `form:"occurredAfter" time_format:"2006-01-02"`
	OccurredBefore *time.Time `form:"occurredBefore" time_format:"2006-01-02"`
	Limit          int        `form:"limit,default=20" binding:"min=1,max=100"`
	Offset         int        `form:"offset,default=0" binding:"min=0"`
}

// FeedParams defines query parameters for the recent-activity feed.
type FeedParams struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// ActivityResponse defines data returned for an activity record.
type ActivityResponse struct {
	ActivityID  string              `json:"activityID"`
	WorkspaceID string              `json:"workspaceID"`
	WorkOrderID *string             `json:"workOrderID,omitempty"`
	AssetID     string              `json:"assetID"`
	Kind        domain.ActivityKind `json:"kind"`
	Note        string              `json:"note"`
	OccurredAt  time.Time           `json:"occurredAt"`
	PerformedBy *string             `json:"performedBy,omitempty"`
}

// ToActivityResponse converts domain.ActivityInstance to DTO.
func ToActivityResponse(a *domain.ActivityInstance) ActivityResponse {
	return ActivityResponse{
		ActivityID:  a.ActivityID,
		WorkspaceID: a.WorkspaceID,
		WorkOrderID: a.WorkOrderID,
		AssetID:     a.AssetID,
		Kind:        a.Kind,
		Note:        a.Note,
		OccurredAt:  a.OccurredAt,
		PerformedBy: a.PerformedBy,
	}
}

// ListActivitiesResponse wraps a list of activity records.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// ToListActivitiesResponse converts a slice of domain.ActivityInstance to DTO.
func ToListActivitiesResponse(as []domain.ActivityInstance) ListActivitiesResponse {
	list := make([]ActivityResponse, len(as))
	for i, a := range as {
		list[i] = ToActivityResponse(&a)
	}
	return ListActivitiesResponse{Activities: list}
}
