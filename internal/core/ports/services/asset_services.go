package services

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
)

// AssetSvcFacade defines operations for asset data
type AssetSvcFacade interface {
	// GetAsset retrieves an asset visible to the principal.
	GetAsset(ctx context.Context, p authz.Principal, assetID string) (*domain.Asset, error)

	// ListAssets retrieves the assets visible to the principal, narrowed by
	// the request filters.
	ListAssets(ctx context.Context, p authz.Principal, params dto.ListAssetsParams) ([]domain.Asset, error)

	// CreateAsset persists a new asset in the named workspace.
	CreateAsset(ctx context.Context, p authz.Principal, req dto.CreateAssetRequest) (*domain.Asset, error)

	// UpdateAsset updates an existing asset after an object-level check.
	UpdateAsset(ctx context.Context, p authz.Principal, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error)

	// DeleteAsset deletes an asset after an object-level check.
	DeleteAsset(ctx context.Context, p authz.Principal, assetID string) error
}
