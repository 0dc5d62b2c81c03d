package domain

import "time"

// MaintenanceTask is a recurring maintenance definition scoped to a workspace.
// Name is unique per workspace.
type MaintenanceTask struct {
	TaskID      string `json:"taskID"`
	WorkspaceID string `json:"workspaceID" db:"workspace_id"`
	Name        string `json:"name"`
	Cadence     string `json:"cadence"` // e.g. "weekly", "monthly"
	Description string `json:"description"`
	AuditFields
}

// WorkOrderStatus tracks the lifecycle of a work order.
type WorkOrderStatus string

const (
	StatusOpen      WorkOrderStatus = "open"
	StatusDone      WorkOrderStatus = "done"
	StatusCancelled WorkOrderStatus = "cancelled"
)

// ValidWorkOrderStatus reports whether s is one of the known statuses.
func ValidWorkOrderStatus(s WorkOrderStatus) bool {
	switch s {
	case StatusOpen, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// WorkOrder schedules a maintenance task against an asset.
type WorkOrder struct {
	WorkOrderID string           `json:"workOrderID"`
	WorkspaceID string           `json:"workspaceID" db:"workspace_id"`
	AssetID     string           `json:"assetID" db:"asset_id"`
	TaskID      string           `json:"taskID" db:"task_id"`
	Due         time.Time        `json:"due"`
	Status      WorkOrderStatus  `json:"status"`
	AssignedTo  *string          `json:"assignedTo,omitempty" db:"assigned_to"`
	RequestedBy *string          `json:"requestedBy,omitempty" db:"requested_by"`
	Asset       *Asset           `json:"-" db:"-"` // Hydrated when workspace must be derived indirectly
	Task        *MaintenanceTask `json:"-" db:"-"`
	AuditFields
}

// ActivityKind classifies a logged maintenance activity.
type ActivityKind string

const (
	ActivityChecked        ActivityKind = "checked"
	ActivityPatched        ActivityKind = "patched"
	ActivityBackupVerified ActivityKind = "backup_verified"
)

// ValidActivityKind reports whether k is one of the known activity kinds.
func ValidActivityKind(k ActivityKind) bool {
	switch k {
	case ActivityChecked, ActivityPatched, ActivityBackupVerified:
		return true
	}
	return false
}

// ActivityInstance records completed maintenance activity against an asset,
// optionally tied to the work order that prompted it.
type ActivityInstance struct {
	ActivityID  string       `json:"activityID"`
	WorkspaceID string       `json:"workspaceID" db:"workspace_id"`
	WorkOrderID *string      `json:"workOrderID,omitempty" db:"work_order_id"`
	AssetID     string       `json:"assetID" db:"asset_id"`
	Kind        ActivityKind `json:"kind"`
	Note        string       `json:"note"`
	OccurredAt  time.Time    `json:"occurredAt" db:"occurred_at"`
	PerformedBy *string      `json:"performedBy,omitempty" db:"performed_by"`
	Asset       *Asset       `json:"-" db:"-"`
	AuditFields
}
