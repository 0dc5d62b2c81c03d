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

// assetService handles business logic related to assets.
type assetService struct {
	BaseService
	assetRepo     portsrepo.AssetRepositoryFacade
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewAssetService creates a new assetService.
func NewAssetService(ar portsrepo.AssetRepositoryFacade, wr portsrepo.WorkspaceRepositoryFacade, evaluator *authz.Evaluator) portssvc.AssetSvcFacade {
	return &assetService{
		BaseService:   BaseService{Evaluator: evaluator},
		assetRepo:     ar,
		workspaceRepo: wr,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// GetAsset retrieves an asset visible to the principal, with its linked
// applications hydrated.
func (s *assetService) GetAsset(ctx context.Context, p authz.Principal, assetID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("asset with ID %s not found", assetID))
		}
		s.LogError(ctx, err, "Failed to find asset", slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if err := s.RequireVisible(ctx, p, asset, s.workspaceRepo); err != nil {
		return nil, err
	}
	return asset, nil
}

// ListAssets retrieves the assets visible to the principal, narrowed by the
// request filters.
func (s *assetService) ListAssets(ctx context.Context, p authz.Principal, params dto.ListAssetsParams) ([]domain.Asset, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	filter := portsrepo.AssetListFilter{
		VisibleToUserID:       p.UserID,
		FormFactorID:          params.FormFactorID,
		OSID:                  params.OSID,
		ApplicationID:         params.ApplicationID,
		Location:              params.Location,
		NameContains:          params.NameContains,
		WarrantyExpiresBefore: params.WarrantyExpiresBefore,
		Limit:                 params.Limit,
		Offset:                params.Offset,
	}
	if p.IsStaff {
		filter.VisibleToUserID = ""
	}
	assets, err := s.assetRepo.ListAssets(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets")
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// CreateAsset persists a new asset in the named workspace.
func (s *assetService) CreateAsset(ctx context.Context, p authz.Principal, req dto.CreateAssetRequest) (*domain.Asset, error) {
	if !p.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}
	if !domain.ValidAssetKind(req.Kind) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid asset kind %q", req.Kind))
	}
	if err := s.requireWorkspaceVisible(ctx, p, req.WorkspaceID); err != nil {
		return nil, err
	}

	now := time.Now()
	asset := domain.Asset{
		AssetID:         uuid.NewString(),
		WorkspaceID:     req.WorkspaceID,
		ProjectID:       req.ProjectID,
		Name:            req.Name,
		Kind:            req.Kind,
		FormFactorID:    req.FormFactorID,
		OSID:            req.OSID,
		Location:        req.Location,
		PurchaseDate:    req.PurchaseDate,
		PurchaseCost:    req.PurchaseCost,
		WarrantyExpires: req.WarrantyExpires,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset, req.ApplicationIDs); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationFailedError("one or more referenced records do not exist")
		}
		s.LogError(ctx, err, "Failed to save asset", slog.String("workspace_id", req.WorkspaceID))
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	s.LogInfo(ctx, "Asset created", slog.String("asset_id", asset.AssetID), slog.String("kind", string(asset.Kind)))
	return s.assetRepo.FindAssetByID(ctx, asset.AssetID)
}

// UpdateAsset updates an existing asset after an object-level check.
func (s *assetService) UpdateAsset(ctx context.Context, p authz.Principal, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	asset, err := s.GetAsset(ctx, p, assetID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, asset); err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		asset.ProjectID = req.ProjectID
	}
	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Kind != nil {
		if !domain.ValidAssetKind(*req.Kind) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid asset kind %q", *req.Kind))
		}
		asset.Kind = *req.Kind
	}
	if req.FormFactorID != nil {
		asset.FormFactorID = req.FormFactorID
	}
	if req.OSID != nil {
		asset.OSID = req.OSID
	}
	if req.Location != nil {
		asset.Location = *req.Location
	}
	if req.PurchaseDate != nil {
		asset.PurchaseDate = req.PurchaseDate
	}
	if req.PurchaseCost != nil {
		asset.PurchaseCost = req.PurchaseCost
	}
	if req.WarrantyExpires != nil {
		asset.WarrantyExpires = req.WarrantyExpires
	}
	if req.Notes != nil {
		asset.Notes = *req.Notes
	}
	asset.LastUpdatedAt = time.Now()
	asset.LastUpdatedBy = p.UserID

	// A nil ApplicationIDs slice means "leave links alone"; the repository
	// only rewrites the link table when a non-nil slice is passed.
	if err := s.assetRepo.UpdateAsset(ctx, *asset, req.ApplicationIDs); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationFailedError("one or more referenced records do not exist")
		}
		s.LogError(ctx, err, "Failed to update asset", slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return s.assetRepo.FindAssetByID(ctx, assetID)
}

// DeleteAsset deletes an asset after an object-level check.
func (s *assetService) DeleteAsset(ctx context.Context, p authz.Principal, assetID string) error {
	asset, err := s.GetAsset(ctx, p, assetID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, asset); err != nil {
		return err
	}
	if err := s.assetRepo.DeleteAsset(ctx, assetID); err != nil {
		s.LogError(ctx, err, "Failed to delete asset", slog.String("asset_id", assetID))
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	s.LogInfo(ctx, "Asset deleted", slog.String("asset_id", assetID))
	return nil
}

func (s *assetService) requireWorkspaceVisible(ctx context.Context, p authz.Principal, workspaceID string) error {
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
