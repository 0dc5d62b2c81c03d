package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for asset data.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryWithTx {
	return &PgxAssetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AssetRepositoryWithTx = (*PgxAssetRepository)(nil)

var FULL_ASSET_SELECT_QUERY = `
SELECT
	a.asset_id, a.workspace_id, a.project_id, a.name, a.kind,
	a.form_factor_id, a.os_id, a.location, a.purchase_date,
	a.purchase_cost, a.warranty_expires, a.notes,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM assets a
`

func (r *PgxAssetRepository) getAssets(ctx context.Context, filterQuery string, args ...any) ([]domain.Asset, error) {
	query := FULL_ASSET_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assets", err)
	}
	defer rows.Close()
	assets, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Asset])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Asset{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect asset rows", err)
	}
	return assets, nil
}

// loadApplications hydrates the application links for one asset.
func (r *PgxAssetRepository) loadApplications(ctx context.Context, assetID string) ([]domain.Application, error) {
	query := `SELECT ap.application_id, ap.name, ap.version, ap.slug
FROM applications ap
JOIN asset_applications aa ON aa.application_id = ap.application_id
WHERE aa.asset_id = $1
ORDER BY ap.name`
	rows, err := r.Pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query asset applications", err)
	}
	defer rows.Close()
	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Application])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect application rows", err)
	}
	return apps, nil
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	assets, err := r.getAssets(ctx, `WHERE a.asset_id = $1`, assetID)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, apperrors.ErrNotFound
	}
	asset := assets[0]
	apps, err := r.loadApplications(ctx, asset.AssetID)
	if err != nil {
		return nil, err
	}
	asset.Applications = apps
	return &asset, nil
}

// ListAssets builds the WHERE clause from the filter. Application hydration
// is skipped here; list rows carry the scalar columns only.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, filter portsrepo.AssetListFilter) ([]domain.Asset, error) {
	var conditions []string
	var args []any
	argIdx := 1

	joins := ""
	if filter.VisibleToUserID != "" {
		joins = "JOIN memberships m ON m.workspace_id = a.workspace_id\n"
		conditions = append(conditions, fmt.Sprintf("m.user_id = $%d", argIdx))
		args = append(args, filter.VisibleToUserID)
		argIdx++
	}
	if filter.FormFactorID != "" {
		conditions = append(conditions, fmt.Sprintf("a.form_factor_id = $%d", argIdx))
		args = append(args, filter.FormFactorID)
		argIdx++
	}
	if filter.OSID != "" {
		conditions = append(conditions, fmt.Sprintf("a.os_id = $%d", argIdx))
		args = append(args, filter.OSID)
		argIdx++
	}
	if filter.ApplicationID != "" {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM asset_applications aa WHERE aa.asset_id = a.asset_id AND aa.application_id = $%d)", argIdx))
		args = append(args, filter.ApplicationID)
		argIdx++
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("a.location = $%d", argIdx))
		args = append(args, filter.Location)
		argIdx++
	}
	if filter.NameContains != "" {
		conditions = append(conditions, fmt.Sprintf("a.name ILIKE $%d", argIdx))
		args = append(args, "%"+filter.NameContains+"%")
		argIdx++
	}
	if filter.WarrantyExpiresBefore != nil {
		conditions = append(conditions, fmt.Sprintf("a.warranty_expires < $%d", argIdx))
		args = append(args, *filter.WarrantyExpiresBefore)
		argIdx++
	}

	query := `SELECT DISTINCT
	a.asset_id, a.workspace_id, a.project_id, a.name, a.kind,
	a.form_factor_id, a.os_id, a.location, a.purchase_date,
	a.purchase_cost, a.warranty_expires, a.notes,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM assets a
` + joins
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += fmt.Sprintf("ORDER BY a.name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assets", err)
	}
	defer rows.Close()
	assets, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Asset])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Asset{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect asset rows", err)
	}
	return assets, nil
}

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset, applicationIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `INSERT INTO assets (
	asset_id, workspace_id, project_id, name, kind, form_factor_id, os_id,
	location, purchase_date, purchase_cost, warranty_expires, notes,
	created_at, created_by, last_updated_at, last_updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = tx.Exec(ctx, query,
		asset.AssetID, asset.WorkspaceID, asset.ProjectID, asset.Name, asset.Kind,
		asset.FormFactorID, asset.OSID, asset.Location, asset.PurchaseDate,
		asset.PurchaseCost, asset.WarrantyExpires, asset.Notes,
		asset.CreatedAt, asset.CreatedBy, asset.LastUpdatedAt, asset.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("asset already exists")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("referenced workspace, project, form factor or os does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save asset "+asset.AssetID, err)
	}

	if err := r.replaceApplicationLinks(ctx, tx, asset.AssetID, applicationIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset, applicationIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `UPDATE assets SET
	project_id = $2, name = $3, kind = $4, form_factor_id = $5, os_id = $6,
	location = $7, purchase_date = $8, purchase_cost = $9,
	warranty_expires = $10, notes = $11,
	last_updated_at = $12, last_updated_by = $13
WHERE asset_id = $1`
	tag, err := tx.Exec(ctx, query,
		asset.AssetID, asset.ProjectID, asset.Name, asset.Kind,
		asset.FormFactorID, asset.OSID, asset.Location, asset.PurchaseDate,
		asset.PurchaseCost, asset.WarrantyExpires, asset.Notes,
		asset.LastUpdatedAt, asset.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced project, form factor or os does not exist")
		}
		return apperrors.NewAppError(500, "failed to update asset "+asset.AssetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// A nil slice means the caller is not touching the links.
	if applicationIDs != nil {
		if err := r.replaceApplicationLinks(ctx, tx, asset.AssetID, applicationIDs); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAssetRepository) replaceApplicationLinks(ctx context.Context, tx pgx.Tx, assetID string, applicationIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM asset_applications WHERE asset_id = $1`, assetID); err != nil {
		return apperrors.NewAppError(500, "failed to clear asset application links", err)
	}
	for _, appID := range applicationIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO asset_applications (asset_id, application_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			assetID, appID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("application " + appID + " does not exist")
			}
			return apperrors.NewAppError(500, "failed to link application "+appID, err)
		}
	}
	return nil
}

func (r *PgxAssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1`, assetID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("asset is still referenced by work orders or activity")
		}
		return apperrors.NewAppError(500, "failed to delete asset "+assetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
