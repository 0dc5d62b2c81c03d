package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/google/uuid"
)

// workOrderService handles business logic related to work orders.
type workOrderService struct {
	BaseService
	workOrderRepo portsrepo.WorkOrderRepositoryFacade
	assetRepo     portsrepo.AssetRepositoryFacade
	taskRepo      portsrepo.TaskRepositoryFacade
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewWorkOrderService creates a new workOrderService.
func NewWorkOrderService(wor portsrepo.WorkOrderRepositoryFacade, ar portsrepo.AssetRepositoryFacade, tr portsrepo.TaskRepositoryFacade, wr portsrepo.WorkspaceRepositoryFacade, evaluator *authz.Evaluator) portssvc.WorkOrderSvcFacade {
	return &workOrderService{
		BaseService:   BaseService{Evaluator: evaluator},
		workOrderRepo: wor,
		assetRepo:     ar,
		taskRepo:      tr,
		workspaceRepo: wr,
	}
}

var _ portssvc.WorkOrderSvcFacade = (*workOrderService)(nil)

func (s *workOrderService) GetWorkOrder(ctx context.Context, p authz.Principal, workOrderID string) (*domain.WorkOrder, error) {
	wo, err := s.workOrderRepo.FindWorkOrderByID(ctx, workOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("work order with ID %s not found", workOrderID))
		}
		s.LogError(ctx, err, "Failed to find work order", slog.String("work_order_id", workOrderID))
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}
	if err := s.RequireVisible(ctx, p, wo, s.workspaceRepo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *workOrderService) ListWorkOrders(ctx context.Context, p authz.Principal, params dto.ListWorkOrdersParams) ([]domain.WorkOrder, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	filter := portsrepo.WorkOrderListFilter{
		VisibleToUserID: p.UserID,
		AssetID:         params.AssetID,
		TaskID:          params.TaskID,
		Status:          domain.WorkOrderStatus(params.Status),
		DueAfter:        params.DueAfter,
		DueBefore:       params.DueBefore,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	if p.IsStaff {
		filter.VisibleToUserID = ""
	}
	orders, err := s.workOrderRepo.ListWorkOrders(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list work orders")
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	return orders, nil
}

// CreateWorkOrder schedules a maintenance task against an asset. The asset
// and task must both be visible to the caller and belong to the same
// workspace the order is created in.
func (s *workOrderService) CreateWorkOrder(ctx context.Context, p authz.Principal, req dto.CreateWorkOrderRequest) (*domain.WorkOrder, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, req.AssetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("asset with ID %s not found", req.AssetID))
		}
		s.LogError(ctx, err, "Failed to validate asset", slog.String("asset_id", req.AssetID))
		return nil, fmt.Errorf("failed to validate asset: %w", err)
	}
	task, err := s.taskRepo.FindTaskByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("task with ID %s not found", req.TaskID))
		}
		s.LogError(ctx, err, "Failed to validate task", slog.String("task_id", req.TaskID))
		return nil, fmt.Errorf("failed to validate task: %w", err)
	}
	if asset.WorkspaceID != req.WorkspaceID || task.WorkspaceID != req.WorkspaceID {
		return nil, apperrors.NewValidationFailedError("asset and task must belong to the work order's workspace")
	}
	if err := s.RequireVisible(ctx, p, asset, s.workspaceRepo); err != nil {
		return nil, err
	}

	now := time.Now()
	requestedBy := p.UserID
	wo := domain.WorkOrder{
		WorkOrderID: uuid.NewString(),
		WorkspaceID: req.WorkspaceID,
		AssetID:     req.AssetID,
		TaskID:      req.TaskID,
		Due:         req.Due,
		Status:      domain.StatusOpen,
		AssignedTo:  req.AssignedTo,
		RequestedBy: &requestedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.workOrderRepo.SaveWorkOrder(ctx, wo); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationFailedError("one or more referenced records do not exist")
		}
		s.LogError(ctx, err, "Failed to save work order", slog.String("workspace_id", req.WorkspaceID))
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	s.LogInfo(ctx, "Work order created", slog.String("work_order_id", wo.WorkOrderID), slog.String("asset_id", req.AssetID))
	return &wo, nil
}

func (s *workOrderService) UpdateWorkOrder(ctx context.Context, p authz.Principal, workOrderID string, req dto.UpdateWorkOrderRequest) (*domain.WorkOrder, error) {
	wo, err := s.GetWorkOrder(ctx, p, workOrderID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, wo); err != nil {
		return nil, err
	}

	if req.Due != nil {
		wo.Due = *req.Due
	}
	if req.Status != nil {
		if !domain.ValidWorkOrderStatus(*req.Status) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid status %q", *req.Status))
		}
		wo.Status = *req.Status
	}
	if req.AssignedTo != nil {
		wo.AssignedTo = req.AssignedTo
	}
	wo.LastUpdatedAt = time.Now()
	wo.LastUpdatedBy = p.UserID

	if err := s.workOrderRepo.UpdateWorkOrder(ctx, *wo); err != nil {
		s.LogError(ctx, err, "Failed to update work order", slog.String("work_order_id", workOrderID))
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}
	return wo, nil
}

func (s *workOrderService) DeleteWorkOrder(ctx context.Context, p authz.Principal, workOrderID string) error {
	wo, err := s.GetWorkOrder(ctx, p, workOrderID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, wo); err != nil {
		return err
	}
	if err := s.workOrderRepo.DeleteWorkOrder(ctx, workOrderID); err != nil {
		s.LogError(ctx, err, "Failed to delete work order", slog.String("work_order_id", workOrderID))
		return fmt.Errorf("failed to delete work order: %w", err)
	}
	s.LogInfo(ctx, "Work order deleted", slog.String("work_order_id", workOrderID))
	return nil
}
