package pgsql

import (
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	workspaceRepo := newPgxWorkspaceRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	assetRepo := newPgxAssetRepository(dbPool)
	catalogRepo := newPgxCatalogRepository(dbPool)
	taskRepo := newPgxTaskRepository(dbPool)
	workOrderRepo := newPgxWorkOrderRepository(dbPool)
	activityRepo := newPgxActivityRepository(dbPool)
	apiTokenRepo := newPgxAPITokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		WorkspaceRepo: workspaceRepo,
		ProjectRepo:   projectRepo,
		AssetRepo:     assetRepo,
		CatalogRepo:   catalogRepo,
		TaskRepo:      taskRepo,
		WorkOrderRepo: workOrderRepo,
		ActivityRepo:  activityRepo,
		APITokenRepo:  apiTokenRepo,
	}
}
