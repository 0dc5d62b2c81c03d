package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/google/uuid"
)

// catalogService handles the global catalog records: form factors, operating
// systems, and applications. These belong to no workspace, so reads are open
// to any authenticated caller and writes are limited to staff and
// maintenance managers by the evaluator.
type catalogService struct {
	BaseService
	catalogRepo portsrepo.CatalogRepositoryFacade
}

// NewCatalogService creates a new catalogService.
func NewCatalogService(cr portsrepo.CatalogRepositoryFacade, evaluator *authz.Evaluator) portssvc.CatalogSvcFacade {
	return &catalogService{
		BaseService: BaseService{Evaluator: evaluator},
		catalogRepo: cr,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// --- Form factors ---

func (s *catalogService) GetFormFactor(ctx context.Context, formFactorID string) (*domain.FormFactor, error) {
	ff, err := s.catalogRepo.FindFormFactorByID(ctx, formFactorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("form factor with ID %s not found", formFactorID))
		}
		s.LogError(ctx, err, "Failed to find form factor", slog.String("form_factor_id", formFactorID))
		return nil, fmt.Errorf("failed to get form factor: %w", err)
	}
	return ff, nil
}

func (s *catalogService) ListFormFactors(ctx context.Context, limit, offset int) ([]domain.FormFactor, error) {
	ffs, err := s.catalogRepo.ListFormFactors(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list form factors")
		return nil, fmt.Errorf("failed to list form factors: %w", err)
	}
	return ffs, nil
}

func (s *catalogService) CreateFormFactor(ctx context.Context, p authz.Principal, req dto.CatalogEntryRequest) (*domain.FormFactor, error) {
	ff := domain.FormFactor{
		FormFactorID: uuid.NewString(),
		Name:         req.Name,
		Slug:         req.Slug,
	}
	if err := s.RequireWrite(ctx, p, &ff); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.SaveFormFactor(ctx, ff); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("form factor %q already exists", req.Name))
		}
		s.LogError(ctx, err, "Failed to save form factor")
		return nil, fmt.Errorf("failed to create form factor: %w", err)
	}
	s.LogInfo(ctx, "Form factor created", slog.String("form_factor_id", ff.FormFactorID))
	return &ff, nil
}

func (s *catalogService) UpdateFormFactor(ctx context.Context, p authz.Principal, formFactorID string, req dto.CatalogEntryRequest) (*domain.FormFactor, error) {
	ff, err := s.GetFormFactor(ctx, formFactorID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, ff); err != nil {
		return nil, err
	}
	ff.Name = req.Name
	ff.Slug = req.Slug
	if err := s.catalogRepo.UpdateFormFactor(ctx, *ff); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("form factor %q already exists", req.Name))
		}
		s.LogError(ctx, err, "Failed to update form factor", slog.String("form_factor_id", formFactorID))
		return nil, fmt.Errorf("failed to update form factor: %w", err)
	}
	return ff, nil
}

func (s *catalogService) DeleteFormFactor(ctx context.Context, p authz.Principal, formFactorID string) error {
	ff, err := s.GetFormFactor(ctx, formFactorID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, ff); err != nil {
		return err
	}
	if err := s.catalogRepo.DeleteFormFactor(ctx, formFactorID); err != nil {
		s.LogError(ctx, err, "Failed to delete form factor", slog.String("form_factor_id", formFactorID))
		return fmt.Errorf("failed to delete form factor: %w", err)
	}
	return nil
}

// --- Operating systems ---

func (s *catalogService) GetOS(ctx context.Context, osID string) (*domain.OS, error) {
	os, err := s.catalogRepo.FindOSByID(ctx, osID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("OS with ID %s not found", osID))
		}
		s.LogError(ctx, err, "Failed to find OS", slog.String("os_id", osID))
		return nil, fmt.Errorf("failed to get OS: %w", err)
	}
	return os, nil
}

func (s *catalogService) ListOSes(ctx context.Context, limit, offset int) ([]domain.OS, error) {
	oses, err := s.catalogRepo.ListOSes(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list OSes")
		return nil, fmt.Errorf("failed to list OSes: %w", err)
	}
	return oses, nil
}

func (s *catalogService) CreateOS(ctx context.Context, p authz.Principal, req dto.CatalogEntryRequest) (*domain.OS, error) {
	os := domain.OS{
		OSID:    uuid.NewString(),
		Name:    req.Name,
		Version: req.Version,
		Slug:    req.Slug,
	}
	if err := s.RequireWrite(ctx, p, &os); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.SaveOS(ctx, os); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("OS with slug %q already exists", req.Slug))
		}
		s.LogError(ctx, err, "Failed to save OS")
		return nil, fmt.Errorf("failed to create OS: %w", err)
	}
	s.LogInfo(ctx, "OS created", slog.String("os_id", os.OSID))
	return &os, nil
}

func (s *catalogService) UpdateOS(ctx context.Context, p authz.Principal, osID string, req dto.CatalogEntryRequest) (*domain.OS, error) {
	os, err := s.GetOS(ctx, osID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, os); err != nil {
		return nil, err
	}
	os.Name = req.Name
	os.Version = req.Version
	os.Slug = req.Slug
	if err := s.catalogRepo.UpdateOS(ctx, *os); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("OS with slug %q already exists", req.Slug))
		}
		s.LogError(ctx, err, "Failed to update OS", slog.String("os_id", osID))
		return nil, fmt.Errorf("failed to update OS: %w", err)
	}
	return os, nil
}

func (s *catalogService) DeleteOS(ctx context.Context, p authz.Principal, osID string) error {
	os, err := s.GetOS(ctx, osID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, os); err != nil {
		return err
	}
	if err := s.catalogRepo.DeleteOS(ctx, osID); err != nil {
		s.LogError(ctx, err, "Failed to delete OS", slog.String("os_id", osID))
		return fmt.Errorf("failed to delete OS: %w", err)
	}
	return nil
}

// --- Applications ---

func (s *catalogService) GetApplication(ctx context.Context, applicationID string) (*domain.Application, error) {
	app, err := s.catalogRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("application with ID %s not found", applicationID))
		}
		s.LogError(ctx, err, "Failed to find application", slog.String("application_id", applicationID))
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

func (s *catalogService) ListApplications(ctx context.Context, limit, offset int) ([]domain.Application, error) {
	apps, err := s.catalogRepo.ListApplications(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications")
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *catalogService) CreateApplication(ctx context.Context, p authz.Principal, req dto.CatalogEntryRequest) (*domain.Application, error) {
	app := domain.Application{
		ApplicationID: uuid.NewString(),
		Name:          req.Name,
		Version:       req.Version,
		Slug:          req.Slug,
	}
	if err := s.RequireWrite(ctx, p, &app); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.SaveApplication(ctx, app); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("application with slug %q already exists", req.Slug))
		}
		s.LogError(ctx, err, "Failed to save application")
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	s.LogInfo(ctx, "Application created", slog.String("application_id", app.ApplicationID))
	return &app, nil
}

func (s *catalogService) UpdateApplication(ctx context.Context, p authz.Principal, applicationID string, req dto.CatalogEntryRequest) (*domain.Application, error) {
	app, err := s.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireWrite(ctx, p, app); err != nil {
		return nil, err
	}
	app.Name = req.Name
	app.Version = req.Version
	app.Slug = req.Slug
	if err := s.catalogRepo.UpdateApplication(ctx, *app); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("application with slug %q already exists", req.Slug))
		}
		s.LogError(ctx, err, "Failed to update application", slog.String("application_id", applicationID))
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

func (s *catalogService) DeleteApplication(ctx context.Context, p authz.Principal, applicationID string) error {
	app, err := s.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if err := s.RequireWrite(ctx, p, app); err != nil {
		return err
	}
	if err := s.catalogRepo.DeleteApplication(ctx, applicationID); err != nil {
		s.LogError(ctx, err, "Failed to delete application", slog.String("application_id", applicationID))
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}
