package repositories

import (
	"context"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// AssetListFilter narrows asset list queries. Zero values mean "no filter".
// VisibleToUserID, when non-empty, restricts results to workspaces that user
// belongs to; staff callers leave it empty.
type AssetListFilter struct {
	VisibleToUserID       string
	FormFactorID          string
	OSID                  string
	ApplicationID         string
	Location              string
	NameContains          string
	WarrantyExpiresBefore *time.Time
	Limit                 int
	Offset                int
}

// AssetReader defines read operations for asset data
type AssetReader interface {
	// FindAssetByID retrieves a specific asset with applications hydrated.
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)

	// ListAssets retrieves assets matching the filter.
	ListAssets(ctx context.Context, filter AssetListFilter) ([]domain.Asset, error)
}

// AssetWriter defines write operations for asset data
type AssetWriter interface {
	// SaveAsset persists a new asset together with its application links.
	SaveAsset(ctx context.Context, asset domain.Asset, applicationIDs []string) error

	// UpdateAsset updates an existing asset; when applicationIDs is non-nil
	// the application links are replaced.
	UpdateAsset(ctx context.Context, asset domain.Asset, applicationIDs []string) error

	// DeleteAsset deletes an asset and its application links.
	DeleteAsset(ctx context.Context, assetID string) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}

// AssetRepositoryWithTx extends AssetRepositoryFacade with transaction capabilities
type AssetRepositoryWithTx interface {
	AssetRepositoryFacade
	TransactionManager
}
