package services

import "github.com/FlynntKnapp/planit-mini/internal/core/authz"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User               UserSvcFacade
	Workspace          WorkspaceSvcFacade
	Project            ProjectSvcFacade
	Asset              AssetSvcFacade
	Catalog            CatalogSvcFacade
	Task               TaskSvcFacade
	WorkOrder          WorkOrderSvcFacade
	Activity           ActivitySvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	APIToken           APITokenSvc

	// Evaluator is the shared permission evaluator; handlers use it for the
	// coarse per-request check, services for object-level checks.
	Evaluator *authz.Evaluator
}
