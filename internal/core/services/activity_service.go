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

// activityService handles business logic related to logged maintenance
// activity.
type activityService struct {
	BaseService
	activityRepo  portsrepo.ActivityRepositoryFacade
	assetRepo     portsrepo.AssetRepositoryFacade
	workOrderRepo portsrepo.WorkOrderRepositoryFacade
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewActivityService creates a new activityService.
func NewActivityService(acr portsrepo.ActivityRepositoryFacade, ar portsrepo.AssetRepositoryFacade, wor portsrepo.WorkOrderRepositoryFacade, wr portsrepo.WorkspaceRepositoryFacade, evaluator *authz.Evaluator) portssvc.ActivitySvcFacade {
	return &activityService{
		BaseService:   BaseService{Evaluator: evaluator},
		activityRepo:  acr,
		assetRepo:     ar,
		workOrderRepo: wor,
		workspaceRepo: wr,
	}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

func (s *activityService) GetActivity(ctx context.Context, p authz.Principal, activityID string) (*domain.ActivityInstance, error) {
	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("activity with ID %s not found", activityID))
		}
		s.LogError(ctx, err, "Failed to find activity", slog.String("activity_id", activityID))
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if err := s.RequireVisible(ctx, p, activity, s.workspaceRepo); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) ListActivities(ctx context.Context, p authz.Principal, params dto.ListActivitiesParams) ([]domain.ActivityInstance, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	filter := portsrepo.ActivityListFilter{
		VisibleToUserID: p.UserID,
		AssetID:         params.AssetID,
		Kind:            domain.ActivityKind(params.Kind),
		OccurredAfter:   params.OccurredAfter,
		OccurredBefore:  params.OccurredBefore,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	if p.IsStaff {
		filter.VisibleToUserID = ""
	}
	activities, err := s.activityRepo.ListActivities(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activities")
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// feedScanWindow caps how many recent rows a feed request scans before
// membership filtering. Non-members of busy workspaces may see fewer than
// limit entries rather than forcing an unbounded scan.
const feedScanWindow = 200

// ActivityFeed returns the most recent activity visible to the principal
// across all of their workspaces. One query fetches a recent window, then
// the membership filter narrows it in memory; this keeps the query identical
// for every caller instead of re-deriving the asset indirection in SQL.
func (s *activityService) ActivityFeed(ctx context.Context, p authz.Principal, limit int) ([]domain.ActivityInstance, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > feedScanWindow {
		limit = feedScanWindow
	}

	window := limit
	var memberships authz.MembershipSet
	if !p.IsStaff {
		rows, err := s.workspaceRepo.ListUserMemberships(ctx, p.UserID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load memberships for activity feed")
			return nil, fmt.Errorf("failed to build activity feed: %w", err)
		}
		memberships = authz.NewMembershipSet(rows)
		if len(memberships) == 0 {
			return []domain.ActivityInstance{}, nil
		}
		window = feedScanWindow
	}

	activities, err := s.activityRepo.ListActivities(ctx, portsrepo.ActivityListFilter{Limit: window})
	if err != nil {
		s.LogError(ctx, err, "Failed to list activities for feed")
		return nil, fmt.Errorf("failed to build activity feed: %w", err)
	}

	visible := authz.VisibleSubset(p, memberships, activities)
	if len(visible) > limit {
		visible = visible[:limit]
	}
	return visible, nil
}

// CreateActivity logs completed maintenance against an asset, optionally
// tied to the work order that prompted it.
func (s *activityService) CreateActivity(ctx context.Context, p authz.Principal, req dto.CreateActivityRequest) (*domain.ActivityInstance, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	if !domain.ValidActivityKind(req.Kind) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid activity kind %q", req.Kind))
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, req.AssetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("asset with ID %s not found", req.AssetID))
		}
		s.LogError(ctx, err, "Failed to validate asset", slog.String("asset_id", req.AssetID))
		return nil, fmt.Errorf("failed to validate asset: %w", err)
	}
	if asset.WorkspaceID != req.WorkspaceID {
		return nil, apperrors.NewValidationFailedError("asset must belong to the activity's workspace")
	}
	if req.WorkOrderID != nil {
		wo, err := s.workOrderRepo.FindWorkOrderByID(ctx, *req.WorkOrderID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError(fmt.Sprintf("work order with ID %s not found", *req.WorkOrderID))
			}
			s.LogError(ctx, err, "Failed to validate work order", slog.String("work_order_id", *req.WorkOrderID))
			return nil, fmt.Errorf("failed to validate work order: %w", err)
		}
		if wo.WorkspaceID != req.WorkspaceID {
			return nil, apperrors.NewValidationFailedError("work order must belong to the activity's workspace")
		}
	}
	if err := s.RequireVisible(ctx, p, asset, s.workspaceRepo); err != nil {
		return nil, err
	}

	now := time.Now()
	performedBy := p.UserID
	activity := domain.ActivityInstance{
		ActivityID:  uuid.NewString(),
		WorkspaceID: req.WorkspaceID,
		WorkOrderID: req.WorkOrderID,
		AssetID:     req.AssetID,
		Kind:        req.Kind,
		Note:        req.Note,
		OccurredAt:  req.OccurredAt,
		PerformedBy: &performedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationFailedError("one or more referenced records do not exist")
		}
		s.LogError(ctx, err, "Failed to save activity", slog.String("asset_id", req.AssetID))
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.LogInfo(ctx, "Activity logged", slog.String("activity_id", activity.ActivityID), slog.String("kind", string(activity.Kind)))
	return &activity, nil
}

func (s *activityService) UpdateActivity(ctx context.Context, p authz.Principal, activityID string, req dto.UpdateActivityRequest) (*domain.ActivityInstance, error) {
	activity, err := s.GetActivity(ctx, p, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, activity); err != nil {
		return nil, err
	}

	if req.Kind != nil {
		if !domain.ValidActivityKind(*req.Kind) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid activity kind %q", *req.Kind))
		}
		activity.Kind = *req.Kind
	}
	if req.Note != nil {
		activity.Note = *req.Note
	}
	if req.OccurredAt != nil {
		activity.OccurredAt = *req.OccurredAt
	}
	activity.LastUpdatedAt = time.Now()
	activity.LastUpdatedBy = p.UserID

	if err := s.activityRepo.UpdateActivity(ctx, *activity); err != nil {
		s.LogError(ctx, err, "Failed to update activity", slog.String("activity_id", activityID))
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return activity, nil
}

func (s *activityService) DeleteActivity(ctx context.Context, p authz.Principal, activityID string) error {
	activity, err := s.GetActivity(ctx, p, activityID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, activity); err != nil {
		return err
	}
	if err := s.activityRepo.DeleteActivity(ctx, activityID); err != nil {
		s.LogError(ctx, err, "Failed to delete activity", slog.String("activity_id", activityID))
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	s.LogInfo(ctx, "Activity deleted", slog.String("activity_id", activityID))
	return nil
}
