package pgsql

import (
	"context"
	"errors"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCatalogRepository stores the global catalog: form factors, operating
// systems, and applications. These tables have no workspace column.
type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for catalog data.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// --- Form factors ---

func (r *PgxCatalogRepository) FindFormFactorByID(ctx context.Context, formFactorID string) (*domain.FormFactor, error) {
	rows, err := r.Pool.Query(ctx, `SELECT form_factor_id, name, slug FROM form_factors WHERE form_factor_id = $1`, formFactorID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query form factors", err)
	}
	ff, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.FormFactor])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect form factor row", err)
	}
	return &ff, nil
}

func (r *PgxCatalogRepository) ListFormFactors(ctx context.Context, limit, offset int) ([]domain.FormFactor, error) {
	rows, err := r.Pool.Query(ctx, `SELECT form_factor_id, name, slug FROM form_factors ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query form factors", err)
	}
	ffs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.FormFactor])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect form factor rows", err)
	}
	return ffs, nil
}

func (r *PgxCatalogRepository) SaveFormFactor(ctx context.Context, formFactor domain.FormFactor) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO form_factors (form_factor_id, name, slug) VALUES ($1, $2, $3)`,
		formFactor.FormFactorID, formFactor.Name, formFactor.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("form factor name or slug already exists")
		}
		return apperrors.NewAppError(500, "failed to save form factor "+formFactor.FormFactorID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdateFormFactor(ctx context.Context, formFactor domain.FormFactor) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE form_factors SET name = $2, slug = $3 WHERE form_factor_id = $1`,
		formFactor.FormFactorID, formFactor.Name, formFactor.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("form factor name or slug already exists")
		}
		return apperrors.NewAppError(500, "failed to update form factor "+formFactor.FormFactorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteFormFactor(ctx context.Context, formFactorID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM form_factors WHERE form_factor_id = $1`, formFactorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // referenced by assets
			return apperrors.NewValidationFailedError("form factor is still referenced by assets")
		}
		return apperrors.NewAppError(500, "failed to delete form factor "+formFactorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Operating systems ---

func (r *PgxCatalogRepository) FindOSByID(ctx context.Context, osID string) (*domain.OS, error) {
	rows, err := r.Pool.Query(ctx, `SELECT os_id, name, version, slug FROM oses WHERE os_id = $1`, osID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query oses", err)
	}
	os, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.OS])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect os row", err)
	}
	return &os, nil
}

func (r *PgxCatalogRepository) ListOSes(ctx context.Context, limit, offset int) ([]domain.OS, error) {
	rows, err := r.Pool.Query(ctx, `SELECT os_id, name, version, slug FROM oses ORDER BY name, version LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query oses", err)
	}
	oses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.OS])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect os rows", err)
	}
	return oses, nil
}

func (r *PgxCatalogRepository) SaveOS(ctx context.Context, os domain.OS) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO oses (os_id, name, version, slug) VALUES ($1, $2, $3, $4)`,
		os.OSID, os.Name, os.Version, os.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("os slug already exists")
		}
		return apperrors.NewAppError(500, "failed to save os "+os.OSID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdateOS(ctx context.Context, os domain.OS) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE oses SET name = $2, version = $3, slug = $4 WHERE os_id = $1`,
		os.OSID, os.Name, os.Version, os.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("os slug already exists")
		}
		return apperrors.NewAppError(500, "failed to update os "+os.OSID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteOS(ctx context.Context, osID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM oses WHERE os_id = $1`, osID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("os is still referenced by assets")
		}
		return apperrors.NewAppError(500, "failed to delete os "+osID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Applications ---

func (r *PgxCatalogRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	rows, err := r.Pool.Query(ctx, `SELECT application_id, name, version, slug FROM applications WHERE application_id = $1`, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications", err)
	}
	app, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Application])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect application row", err)
	}
	return &app, nil
}

func (r *PgxCatalogRepository) ListApplications(ctx context.Context, limit, offset int) ([]domain.Application, error) {
	rows, err := r.Pool.Query(ctx, `SELECT application_id, name, version, slug FROM applications ORDER BY name, version LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications", err)
	}
	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Application])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect application rows", err)
	}
	return apps, nil
}

func (r *PgxCatalogRepository) SaveApplication(ctx context.Context, application domain.Application) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO applications (application_id, name, version, slug) VALUES ($1, $2, $3, $4)`,
		application.ApplicationID, application.Name, application.Version, application.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("application slug already exists")
		}
		return apperrors.NewAppError(500, "failed to save application "+application.ApplicationID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdateApplication(ctx context.Context, application domain.Application) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE applications SET name = $2, version = $3, slug = $4 WHERE application_id = $1`,
		application.ApplicationID, application.Name, application.Version, application.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("application slug already exists")
		}
		return apperrors.NewAppError(500, "failed to update application "+application.ApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteApplication(ctx context.Context, applicationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM applications WHERE application_id = $1`, applicationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete application "+applicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
