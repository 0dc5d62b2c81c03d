package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
	"github.com/gin-gonic/gin"
)

// assetHandler handles HTTP requests related to assets.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

// newAssetHandler creates a new assetHandler.
func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{
		assetService: as,
	}
}

// registerAssetRoutes registers routes related to assets.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:asset_id", h.getAsset)
		assets.PUT("/:asset_id", h.updateAsset)
		assets.DELETE("/:asset_id", h.deleteAsset)
	}
}

// createAsset godoc
// @Summary Create a new asset
// @Description Creates an asset in a workspace the caller can see.
// @Tags assets
// @Accept  json
// @Produce  json
// @Param asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	asset, err := h.assetService.CreateAsset(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create asset")
		return
	}

	logger.Info("Asset created successfully", slog.String("asset_id", asset.AssetID))
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// listAssets godoc
// @Summary List assets
// @Description Retrieves the assets visible to the caller, narrowed by filters.
// @Tags assets
// @Produce  json
// @Param formFactorID query string false "Filter by form factor"
// @Param osID query string false "Filter by operating system"
// @Param applicationID query string false "Filter by installed application"
// @Param location query string false "Filter by exact location"
// @Param name query string false "Filter by name substring"
// @Param warrantyExpiresBefore query string false "Warranty cutoff date (YYYY-MM-DD)"
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAssetsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	var params dto.ListAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	assets, err := h.assetService.ListAssets(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err, "Failed to list assets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssetsResponse(assets))
}

// getAsset godoc
// @Summary Get an asset
// @Description Retrieves an asset visible to the caller, with installed applications. Non-members get 404.
// @Tags assets
// @Produce  json
// @Param asset_id path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{asset_id} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	asset, err := h.assetService.GetAsset(c.Request.Context(), principal, c.Param("asset_id"))
	if err != nil {
		respondError(c, err, "Failed to get asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// updateAsset godoc
// @Summary Update an asset
// @Description Updates an asset. Requires a write role in the owning workspace.
// @Tags assets
// @Accept  json
// @Produce  json
// @Param asset_id path string true "Asset ID"
// @Param asset body dto.UpdateAssetRequest true "Fields to update"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{asset_id} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	asset, err := h.assetService.UpdateAsset(c.Request.Context(), principal, c.Param("asset_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// deleteAsset godoc
// @Summary Delete an asset
// @Description Deletes an asset. Requires a write role in the owning workspace.
// @Tags assets
// @Param asset_id path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{asset_id} [delete]
func (h *assetHandler) deleteAsset(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.assetService.DeleteAsset(c.Request.Context(), principal, c.Param("asset_id")); err != nil {
		respondError(c, err, "Failed to delete asset")
		return
	}

	c.Status(http.StatusNoContent)
}
