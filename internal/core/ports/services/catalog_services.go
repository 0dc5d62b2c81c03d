package services

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
)

// CatalogSvcFacade defines operations for the global catalog records. Lists
// are unscoped; writes are gated by the evaluator and therefore reserved to
// staff and the maintenance manager group.
type CatalogSvcFacade interface {
	GetFormFactor(ctx context.Context, formFactorID string) (*domain.FormFactor, error)
	ListFormFactors(ctx context.Context, limit, offset int) ([]domain.FormFactor, error)
	CreateFormFactor(ctx context.Context, p authz.Principal, req dto.CatalogEntryRequest) (*domain.FormFactor, error)
	UpdateFormFactor(ctx context.Context, p authz.Principal, formFactorID string, req dto.CatalogEntryRequest) (*domain.FormFactor, error)
	DeleteFormFactor(ctx context.Context, p authz.Principal, formFactorID string) error

	GetOS(ctx context.Context, osID string) (*domain.OS, error)
	ListOSes(ctx context.Context, limit, offset int) ([]domain.OS, error)
	CreateOS(ctx context.Context, p authz.Principal, req dto.CatalogEntryRequest) (*domain.OS, error)
	UpdateOS(ctx context.Context, p authz.Principal, osID string, req dto.CatalogEntryRequest) (*domain.OS, error)
	DeleteOS(ctx context.Context, p authz.Principal, osID string) error

	GetApplication(ctx context.Context, applicationID string) (*domain.Application, error)
	ListApplications(ctx context.Context, limit, offset int) ([]domain.Application, error)
	CreateApplication(ctx context.Context, p authz.Principal, req dto.CatalogEntryRequest) (*domain.Application, error)
	UpdateApplication(ctx context.Context, p authz.Principal, applicationID string, req dto.CatalogEntryRequest) (*domain.Application, error)
	DeleteApplication(ctx context.Context, p authz.Principal, applicationID string) error
}
