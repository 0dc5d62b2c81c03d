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

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace and
// membership data. It also backs the permission evaluator's role lookups.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryWithTx {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkspaceRepositoryWithTx = (*PgxWorkspaceRepository)(nil)

var FULL_WORKSPACE_SELECT_QUERY = `
SELECT
	w.workspace_id, w.name, w.slug,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM workspaces w
`

var FULL_MEMBERSHIP_SELECT_QUERY = `
SELECT
	m.membership_id, m.user_id, u.username, m.workspace_id, m.role, m.joined_at
FROM memberships m
JOIN users u ON u.user_id = m.user_id
`

func (r *PgxWorkspaceRepository) getWorkspaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workspace, error) {
	query := FULL_WORKSPACE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()
	workspaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Workspace])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Workspace{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect workspace rows", err)
	}
	return workspaces, nil
}

func (r *PgxWorkspaceRepository) getMemberships(ctx context.Context, filterQuery string, args ...any) ([]domain.Membership, error) {
	query := FULL_MEMBERSHIP_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships", err)
	}
	defer rows.Close()
	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Membership{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect membership rows", err)
	}
	return memberships, nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	workspaces, err := r.getWorkspaces(ctx, `WHERE w.workspace_id = $1`, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	workspaces, err := r.getWorkspaces(ctx, `WHERE w.slug = $1`, slug)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

// ListWorkspaces narrows to the user's memberships when visibleToUserID is
// non-empty; staff callers pass "" to list everything.
func (r *PgxWorkspaceRepository) ListWorkspaces(ctx context.Context, visibleToUserID string, limit, offset int) ([]domain.Workspace, error) {
	if visibleToUserID == "" {
		return r.getWorkspaces(ctx, `ORDER BY w.name LIMIT $1 OFFSET $2`, limit, offset)
	}
	filter := `
JOIN memberships m ON m.workspace_id = w.workspace_id
WHERE m.user_id = $1
ORDER BY w.name LIMIT $2 OFFSET $3`
	return r.getWorkspaces(ctx, filter, visibleToUserID, limit, offset)
}

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		INSERT INTO workspaces (
			workspace_id, name, slug,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Slug,
		workspace.CreatedAt,
		workspace.CreatedBy,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("workspace name or slug already exists")
		}
		return apperrors.NewAppError(500, "failed to save workspace "+workspace.WorkspaceID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $2, slug = $3, last_updated_at = $4, last_updated_by = $5
		WHERE workspace_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Slug,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("workspace name or slug already exists")
		}
		return apperrors.NewAppError(500, "failed to update workspace "+workspace.WorkspaceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM workspaces WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete workspace "+workspaceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) AddMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		INSERT INTO memberships (membership_id, user_id, workspace_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.MembershipID,
		membership.UserID,
		membership.WorkspaceID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique (user_id, workspace_id)
				return apperrors.NewConflictError("user is already a member of this workspace")
			}
			if pgErr.Code == "23503" { // user or workspace missing
				return apperrors.NewValidationFailedError("user or workspace does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to add membership for user "+membership.UserID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error) {
	memberships, err := r.getMemberships(ctx, `WHERE m.user_id = $1 AND m.workspace_id = $2`, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &memberships[0], nil
}

// HasWorkspaceRole is the evaluator's membership lookup.
func (r *PgxWorkspaceRepository) HasWorkspaceRole(ctx context.Context, userID, workspaceID string, roles ...domain.MembershipRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}
	roleStrs := make([]string, len(roles))
	for i, role := range roles {
		roleStrs[i] = string(role)
	}
	query := `
		SELECT EXISTS(
			SELECT 1 FROM memberships
			WHERE user_id = $1 AND workspace_id = $2 AND role = ANY($3)
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, workspaceID, roleStrs).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check workspace role", err)
	}
	return exists, nil
}

func (r *PgxWorkspaceRepository) ListWorkspaceMemberships(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	return r.getMemberships(ctx, `WHERE m.workspace_id = $1 ORDER BY m.joined_at`, workspaceID)
}

func (r *PgxWorkspaceRepository) ListUserMemberships(ctx context.Context, userID string) ([]domain.Membership, error) {
	return r.getMemberships(ctx, `WHERE m.user_id = $1 ORDER BY m.joined_at`, userID)
}

func (r *PgxWorkspaceRepository) UpdateMembershipRole(ctx context.Context, userID, workspaceID string, role domain.MembershipRole) error {
	query := `
		UPDATE memberships
		SET role = $3
		WHERE user_id = $1 AND workspace_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, workspaceID, role)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update membership role", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) RemoveMembership(ctx context.Context, userID, workspaceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM memberships WHERE user_id = $1 AND workspace_id = $2`, userID, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove membership", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
