package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind classifies the equipment type of an asset.
type AssetKind string

const (
	KindRaspberryPi AssetKind = "PI"
	KindServer      AssetKind = "SRV"
	KindLaptop      AssetKind = "LAP"
)

// ValidAssetKind reports whether k is one of the known asset kinds.
func ValidAssetKind(k AssetKind) bool {
	switch k {
	case KindRaspberryPi, KindServer, KindLaptop:
		return true
	}
	return false
}

// DisplayName returns a human-friendly name for the asset kind.
func (k AssetKind) DisplayName() string {
	switch k {
	case KindRaspberryPi:
		return "Raspberry Pi"
	case KindServer:
		return "Server"
	case KindLaptop:
		return "Laptop"
	}
	return string(k)
}

// Asset is a piece of tracked equipment belonging to a workspace, optionally
// grouped under a project within that workspace.
type Asset struct {
	AssetID         string           `json:"assetID"`
	WorkspaceID     string           `json:"workspaceID" db:"workspace_id"`
	ProjectID       *string          `json:"projectID,omitempty" db:"project_id"`
	Name            string           `json:"name"`
	Kind            AssetKind        `json:"kind"`
	FormFactorID    *string          `json:"formFactorID,omitempty" db:"form_factor_id"`
	OSID            *string          `json:"osID,omitempty" db:"os_id"`
	Applications    []Application    `json:"applications,omitempty" db:"-"` // Hydrated from the link table
	Location        string           `json:"location"`
	PurchaseDate    *time.Time       `json:"purchaseDate,omitempty" db:"purchase_date"`
	PurchaseCost    *decimal.Decimal `json:"purchaseCost,omitempty" db:"purchase_cost"`
	WarrantyExpires *time.Time       `json:"warrantyExpires,omitempty" db:"warranty_expires"`
	Notes           string           `json:"notes"`
	AuditFields
}
