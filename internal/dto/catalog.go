package dto

import "github.com/FlynntKnapp/planit-mini/internal/core/domain"

// CatalogEntryRequest defines data for creating or updating a catalog record
// (form factor, OS, or application). Version is ignored for form factors.
type CatalogEntryRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Version string `json:"version" binding:"max=60"`
	Slug    string `json:"slug" binding:"required,slug"`
}

// CatalogEntryResponse defines data returned for a catalog record.
type CatalogEntryResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Slug    string `json:"slug"`
}

// ListParams defines common limit/offset query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListCatalogResponse wraps a list of catalog records.
type ListCatalogResponse struct {
	Entries []CatalogEntryResponse `json:"entries"`
}

// ToFormFactorResponse converts domain.FormFactor to DTO.
func ToFormFactorResponse(f *domain.FormFactor) CatalogEntryResponse {
	return CatalogEntryResponse{ID: f.FormFactorID, Name: f.Name, Slug: f.Slug}
}

// ToOSResponse converts domain.OS to DTO.
func ToOSResponse(o *domain.OS) CatalogEntryResponse {
	return CatalogEntryResponse{ID: o.OSID, Name: o.Name, Version: o.Version, Slug: o.Slug}
}

// ToApplicationResponse converts domain.Application to DTO.
func ToApplicationResponse(a *domain.Application) CatalogEntryResponse {
	return CatalogEntryResponse{ID: a.ApplicationID, Name: a.Name, Version: a.Version, Slug: a.Slug}
}
