package dto

import (
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest defines data for creating a new asset.
type CreateAssetRequest struct {
	WorkspaceID     string           `json:"workspaceID" binding:"required"`
	ProjectID       *string          `json:"projectID"`
	Name            string           `json:"name" binding:"required,max=120"`
	Kind            domain.AssetKind `json:"kind" binding:"required,oneof=PI SRV LAP"`
	FormFactorID    *string          `json:"formFactorID"`
	OSID            *string          `json:"osID"`
	ApplicationIDs  []string         `json:"applicationIDs"`
	Location        string           `json:"location" binding:"max=120"`
	PurchaseDate    *time.Time       `json:"purchaseDate"`
	PurchaseCost    *decimal.Decimal `json:"purchaseCost"`
	WarrantyExpires *time.Time       `json:"warrantyExpires"`
	Notes           string           `json:"notes"`
}

// UpdateAssetRequest defines data for updating an asset. Pointer fields
// distinguish omitted from zero values; ApplicationIDs replaces the full
// application set when present.
type UpdateAssetRequest struct {
	ProjectID       *string           `json:"projectID"`
	Name            *string           `json:"name" binding:"omitempty,max=120"`
	Kind            *domain.AssetKind `json:"kind" binding:"omitempty,oneof=PI SRV LAP"`
	FormFactorID    *string           `json:"formFactorID"`
	OSID            *string           `json:"osID"`
	ApplicationIDs  []string          `json:"applicationIDs"`
	Location        *string           `json:"location" binding:"omitempty,max=120"`
	PurchaseDate    *time.Time        `json:"purchaseDate"`
	PurchaseCost    *decimal.Decimal  `json:"purchaseCost"`
	WarrantyExpires *time.Time        `json:"warrantyExpires"`
	Notes           *string           `json:"notes"`
}

// ListAssetsParams defines query parameters for listing assets.
type ListAssetsParams struct {
	FormFactorID          string     `form:"formFactorID"`
	OSID                  string     `form:"osID"`
	ApplicationID         string     `form:"applicationID"`
	Location              string     `form:"location"`
	NameContains          string     `form:"name"`
	WarrantyExpiresBefore *time.Time `form:"warrantyExpiresBefore" time_format:"2006-01-02"`
	Limit                 int        `form:"limit,default=20" binding:"min=1,max=100"`
	Offset                int        `form:"offset,default=0" binding:"min=0"`
}

// AssetResponse defines data returned for an asset.
type AssetResponse struct {
	AssetID         string                 `json:"assetID"`
	WorkspaceID     string                 `json:"workspaceID"`
	ProjectID       *string                `json:"projectID,omitempty"`
	Name            string                 `json:"name"`
	Kind            domain.AssetKind       `json:"kind"`
	KindDisplay     string                 `json:"kindDisplay"`
	FormFactorID    *string                `json:"formFactorID,omitempty"`
	OSID            *string                `json:"osID,omitempty"`
	Applications    []CatalogEntryResponse `json:"applications"`
	Location        string                 `json:"location"`
	PurchaseDate    *time.Time             `json:"purchaseDate,omitempty"`
	PurchaseCost    *decimal.Decimal       `json:"purchaseCost,omitempty"`
	WarrantyExpires *time.Time             `json:"warrantyExpires,omitempty"`
	Notes           string                 `json:"notes"`
}

// ToAssetResponse converts domain.Asset to DTO.
func ToAssetResponse(a *domain.Asset) AssetResponse {
	apps := make([]CatalogEntryResponse, len(a.Applications))
	for i, app := range a.Applications {
		apps[i] = CatalogEntryResponse{
			ID:      app.ApplicationID,
			Name:    app.Name,
			Version: app.Version,
			Slug:    app.Slug,
		}
	}
	return AssetResponse{
		AssetID:         a.AssetID,
		WorkspaceID:     a.WorkspaceID,
		ProjectID:       a.ProjectID,
		Name:            a.Name,
		Kind:            a.Kind,
		KindDisplay:     a.Kind.DisplayName(),
		FormFactorID:    a.FormFactorID,
		OSID:            a.OSID,
		Applications:    apps,
		Location:        a.Location,
		PurchaseDate:    a.PurchaseDate,
		PurchaseCost:    a.PurchaseCost,
		WarrantyExpires: a.WarrantyExpires,
		Notes:           a.Notes,
	}
}

// ListAssetsResponse wraps a list of assets.
type ListAssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

// ToListAssetsResponse converts a slice of domain.Asset to DTO.
func ToListAssetsResponse(as []domain.Asset) ListAssetsResponse {
	list := make([]AssetResponse, len(as))
	for i, a := range as {
		list[i] = ToAssetResponse(&a)
	}
	return ListAssetsResponse{Assets: list}
}
