package services

import (
	"log/slog"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The evaluator answers every permission question; it is backed by the
	// live membership table so role changes apply immediately.
	container.Evaluator = authz.NewEvaluator(repos.WorkspaceRepo, logger)

	container.User = NewUserService(repos.UserRepo)
	container.Workspace = NewWorkspaceService(repos.WorkspaceRepo, repos.UserRepo, container.Evaluator)
	container.Project = NewProjectService(repos.ProjectRepo, repos.WorkspaceRepo, container.Evaluator)
	container.Asset = NewAssetService(repos.AssetRepo, repos.WorkspaceRepo, container.Evaluator)
	container.Catalog = NewCatalogService(repos.CatalogRepo, container.Evaluator)
	container.Task = NewTaskService(repos.TaskRepo, repos.WorkspaceRepo, container.Evaluator)
	container.WorkOrder = NewWorkOrderService(repos.WorkOrderRepo, repos.AssetRepo, repos.TaskRepo, repos.WorkspaceRepo, container.Evaluator)
	container.Activity = NewActivityService(repos.ActivityRepo, repos.AssetRepo, repos.WorkOrderRepo, repos.WorkspaceRepo, container.Evaluator)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.User)

	return container
}
