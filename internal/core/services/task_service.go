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

// taskService handles business logic related to maintenance tasks.
type taskService struct {
	BaseService
	taskRepo      portsrepo.TaskRepositoryFacade
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewTaskService creates a new taskService.
func NewTaskService(tr portsrepo.TaskRepositoryFacade, wr portsrepo.WorkspaceRepositoryFacade, evaluator *authz.Evaluator) portssvc.TaskSvcFacade {
	return &taskService{
		BaseService:   BaseService{Evaluator: evaluator},
		taskRepo:      tr,
		workspaceRepo: wr,
	}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

func (s *taskService) GetTask(ctx context.Context, p authz.Principal, taskID string) (*domain.MaintenanceTask, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("task with ID %s not found", taskID))
		}
		s.LogError(ctx, err, "Failed to find task", slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.RequireVisible(ctx, p, task, s.workspaceRepo); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, p authz.Principal, limit, offset int) ([]domain.MaintenanceTask, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	visibleTo := p.UserID
	if p.IsStaff {
		visibleTo = ""
	}
	tasks, err := s.taskRepo.ListTasks(ctx, visibleTo, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks")
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) CreateTask(ctx context.Context, p authz.Principal, req dto.CreateTaskRequest) (*domain.MaintenanceTask, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.requireWorkspaceVisible(ctx, p, req.WorkspaceID); err != nil {
		return nil, err
	}

	now := time.Now()
	task := domain.MaintenanceTask{
		TaskID:      uuid.NewString(),
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Cadence:     req.Cadence,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("task %q already exists in this workspace", req.Name))
		}
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("workspace with ID %s not found", req.WorkspaceID))
		}
		s.LogError(ctx, err, "Failed to save task", slog.String("workspace_id", req.WorkspaceID))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.LogInfo(ctx, "Task created", slog.String("task_id", task.TaskID), slog.String("workspace_id", req.WorkspaceID))
	return &task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, p authz.Principal, taskID string, req dto.UpdateTaskRequest) (*domain.MaintenanceTask, error) {
	task, err := s.GetTask(ctx, p, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, task); err != nil {
		return nil, err
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Cadence != nil {
		task.Cadence = *req.Cadence
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = p.UserID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("task %q already exists in this workspace", task.Name))
		}
		s.LogError(ctx, err, "Failed to update task", slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, p authz.Principal, taskID string) error {
	task, err := s.GetTask(ctx, p, taskID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, task); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		s.LogError(ctx, err, "Failed to delete task", slog.String("task_id", taskID))
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.LogInfo(ctx, "Task deleted", slog.String("task_id", taskID))
	return nil
}

func (s *taskService) requireWorkspaceVisible(ctx context.Context, p authz.Principal, workspaceID string) error {
	if p.Privileged() {
		return nil
	}
	member, err := s.workspaceRepo.HasWorkspaceRole(ctx, p.UserID, workspaceID, domain.RoleViewer, domain.RoleManager, domain.RoleAdmin)
	if err != nil {
		s.LogError(ctx, err, "Membership check failed", slog.String("workspace_id", workspaceID))
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return apperrors.NewNotFoundError(fmt.Sprintf("workspace with ID %s not found", workspaceID))
	}
	return nil
}
