package repositories

import (
	"context"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// Catalog records (form factors, OSes, applications) are global: their lists
// are never workspace-scoped, only writes are gated by the evaluator.

// FormFactorRepository defines operations for form factor catalog data.
type FormFactorRepository interface {
	FindFormFactorByID(ctx context.Context, formFactorID string) (*domain.FormFactor, error)
	ListFormFactors(ctx context.Context, limit, offset int) ([]domain.FormFactor, error)
	SaveFormFactor(ctx context.Context, formFactor domain.FormFactor) error
	UpdateFormFactor(ctx context.Context, formFactor domain.FormFactor) error
	DeleteFormFactor(ctx context.Context, formFactorID string) error
}

// OSRepository defines operations for OS catalog data.
type OSRepository interface {
	FindOSByID(ctx context.Context, osID string) (*domain.OS, error)
	ListOSes(ctx context.Context, limit, offset int) ([]domain.OS, error)
	SaveOS(ctx context.Context, os domain.OS) error
	UpdateOS(ctx context.Context, os domain.OS) error
	DeleteOS(ctx context.Context, osID string) error
}

// ApplicationRepository defines operations for application catalog data.
type ApplicationRepository interface {
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)
	ListApplications(ctx context.Context, limit, offset int) ([]domain.Application, error)
	SaveApplication(ctx context.Context, application domain.Application) error
	UpdateApplication(ctx context.Context, application domain.Application) error
	DeleteApplication(ctx context.Context, applicationID string) error
}

// CatalogRepositoryFacade combines the catalog repository interfaces.
type CatalogRepositoryFacade interface {
	FormFactorRepository
	OSRepository
	ApplicationRepository
}
