package handlers

import (
	"github.com/FlynntKnapp/planit-mini/cmd/docs"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
	"github.com/FlynntKnapp/planit-mini/internal/platform/config"
	"github.com/FlynntKnapp/planit-mini/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {

	// Add health check and root routes
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with auth middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	// Non-staff quota, e.g. "1000-D". Staff users are exempt inside the
	// middleware itself.
	rate, err := limiter.NewRateFromFormatted(cfg.NonStaffRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("1000-D")
	}
	nonStaffLimiter := limiter.New(memory.NewStore(), rate)

	// API token auth runs first; requests it authenticates skip JWT auth.
	v1 := r.Group("/api/v1",
		middleware.APITokenAuth(services.APIToken),
		middleware.AuthMiddleware(cfg.JWTSecret, services.User),
		middleware.NonStaffRateLimit(nonStaffLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.User)
	registerWorkspaceRoutes(v1, services.Workspace)
	registerProjectRoutes(v1, services.Project)
	registerAssetRoutes(v1, services.Asset)
	registerCatalogRoutes(v1, services.Catalog)
	registerTaskRoutes(v1, services.Task)
	registerWorkOrderRoutes(v1, services.WorkOrder)
	registerActivityRoutes(v1, services.Activity)
	RegisterAPITokenRoutes(v1, services.APIToken)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
