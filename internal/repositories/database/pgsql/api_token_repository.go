package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new repository for API token data.
func newPgxAPITokenRepository(pool *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

var FULL_API_TOKEN_SELECT_QUERY = `
SELECT
	t.id, t.user_id, t.name, t.token_hash, t.last_used_at, t.expires_at,
	t.created_at, t.updated_at, t.deleted_at
FROM api_tokens t
`

func (r *PgxAPITokenRepository) getTokens(ctx context.Context, filterQuery string, args ...any) ([]domain.APIToken, error) {
	query := FULL_API_TOKEN_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query api tokens", err)
	}
	defer rows.Close()
	tokens, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.APIToken])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.APIToken{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect api token rows", err)
	}
	return tokens, nil
}

func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	query := `INSERT INTO api_tokens (
	id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.Pool.Exec(ctx, query,
		token.ID, token.UserID, token.Name, token.TokenHash,
		token.LastUsedAt, token.ExpiresAt, token.CreatedAt, token.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("api token already exists")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("user does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to create api token "+token.ID, err)
	}
	return nil
}

func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	tokens, err := r.getTokens(ctx, `WHERE t.id = $1 AND t.deleted_at IS NULL`, id)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &tokens[0], nil
}

func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	return r.getTokens(ctx, `WHERE t.user_id = $1 AND t.deleted_at IS NULL ORDER BY t.created_at DESC`, userID)
}

// FindByTokenHash is the hot path of API key authentication; token_hash is
// uniquely indexed.
func (r *PgxAPITokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	tokens, err := r.getTokens(ctx, `WHERE t.token_hash = $1 AND t.deleted_at IS NULL`, tokenHash)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &tokens[0], nil
}

func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	query := `UPDATE api_tokens SET
	name = $2, last_used_at = $3, expires_at = $4, updated_at = $5, deleted_at = $6
WHERE id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		token.ID, token.Name, token.LastUsedAt, token.ExpiresAt, token.UpdatedAt, token.DeletedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update api token "+token.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE api_tokens SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete api token "+id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAPITokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE api_tokens SET deleted_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete api tokens for user "+userID, err)
	}
	return nil
}

func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`, before)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete expired api tokens", err)
	}
	return tag.RowsAffected(), nil
}
