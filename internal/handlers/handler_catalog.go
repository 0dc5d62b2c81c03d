package handlers

import (
	"net/http"

	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests for the global catalog: form factors,
// operating systems and applications. Reads are open to any authenticated
// user; writes are reserved to staff and maintenance managers.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newCatalogHandler creates a new catalogHandler.
func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{
		catalogService: cs,
	}
}

// registerCatalogRoutes registers routes for the three catalog record types.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	formFactors := rg.Group("/form-factors")
	{
		formFactors.POST("", h.createFormFactor)
		formFactors.GET("", h.listFormFactors)
		formFactors.GET("/:id", h.getFormFactor)
		formFactors.PUT("/:id", h.updateFormFactor)
		formFactors.DELETE("/:id", h.deleteFormFactor)
	}

	oses := rg.Group("/oses")
	{
		oses.POST("", h.createOS)
		oses.GET("", h.listOSes)
		oses.GET("/:id", h.getOS)
		oses.PUT("/:id", h.updateOS)
		oses.DELETE("/:id", h.deleteOS)
	}

	applications := rg.Group("/applications")
	{
		applications.POST("", h.createApplication)
		applications.GET("", h.listApplications)
		applications.GET("/:id", h.getApplication)
		applications.PUT("/:id", h.updateApplication)
		applications.DELETE("/:id", h.deleteApplication)
	}
}

// --- Form factors ---

// createFormFactor godoc
// @Summary Create a form factor
// @Description Creates a catalog form factor. Requires staff or maintenance manager.
// @Tags catalog
// @Accept json
// @Produce json
// @Param formFactor body dto.CatalogEntryRequest true "Form factor details"
// @Success 201 {object} dto.CatalogEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /form-factors [post]
func (h *catalogHandler) createFormFactor(c *gin.Context) {
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	formFactor, err := h.catalogService.CreateFormFactor(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create form factor")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFormFactorResponse(formFactor))
}

// listFormFactors godoc
// @Summary List form factors
// @Tags catalog
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListCatalogResponse
// @Security BearerAuth
// @Router /form-factors [get]
func (h *catalogHandler) listFormFactors(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	formFactors, err := h.catalogService.ListFormFactors(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list form factors")
		return
	}

	entries := make([]dto.CatalogEntryResponse, len(formFactors))
	for i := range formFactors {
		entries[i] = dto.ToFormFactorResponse(&formFactors[i])
	}
	c.JSON(http.StatusOK, dto.ListCatalogResponse{Entries: entries})
}

// getFormFactor godoc
// @Summary Get a form factor
// @Tags catalog
// @Produce json
// @Param id path string true "Form factor ID"
// @Success 200 {object} dto.CatalogEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /form-factors/{id} [get]
func (h *catalogHandler) getFormFactor(c *gin.Context) {
	formFactor, err := h.catalogService.GetFormFactor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get form factor")
		return
	}

	c.JSON(http.StatusOK, dto.ToFormFactorResponse(formFactor))
}

// updateFormFactor godoc
// @Summary Update a form factor
// @Description Updates a catalog form factor. Requires staff or maintenance manager.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Form factor ID"
// @Param formFactor body dto.CatalogEntryRequest true "Form factor details"
// @Success 200 {object} dto.CatalogEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /form-factors/{id} [put]
func (h *catalogHandler) updateFormFactor(c *gin.Context) {
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	formFactor, err := h.catalogService.UpdateFormFactor(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update form factor")
		return
	}

	c.JSON(http.StatusOK, dto.ToFormFactorResponse(formFactor))
}

// deleteFormFactor godoc
// @Summary Delete a form factor
// @Description Deletes a catalog form factor. Requires staff or maintenance manager.
// @Tags catalog
// @Param id path string true "Form factor ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /form-factors/{id} [delete]
func (h *catalogHandler) deleteFormFactor(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.catalogService.DeleteFormFactor(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete form factor")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Operating systems ---

// createOS godoc
// @Summary Create an operating system
// @Description Creates a catalog OS entry. Requires staff or maintenance manager.
// @Tags catalog
// @Accept json
// @Produce json
// @Param os body dto.CatalogEntryRequest true "OS details"
// @Success 201 {object} dto.CatalogEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /oses [post]
func (h *catalogHandler) createOS(c *gin.Context) {
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	os, err := h.catalogService.CreateOS(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create os")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOSResponse(os))
}

// listOSes godoc
// @Summary List operating systems
// @Tags catalog
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListCatalogResponse
// @Security BearerAuth
// @Router /oses [get]
func (h *catalogHandler) listOSes(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	oses, err := h.catalogService.ListOSes(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list oses")
		return
	}

	entries := make([]dto.CatalogEntryResponse, len(oses))
	for i := range oses {
		entries[i] = dto.ToOSResponse(&oses[i])
	}
	c.JSON(http.StatusOK, dto.ListCatalogResponse{Entries: entries})
}

// getOS godoc
// @Summary Get an operating system
// @Tags catalog
// @Produce json
// @Param id path string true "OS ID"
// @Success 200 {object} dto.CatalogEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /oses/{id} [get]
func (h *catalogHandler) getOS(c *gin.Context) {
	os, err := h.catalogService.GetOS(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get os")
		return
	}

	c.JSON(http.StatusOK, dto.ToOSResponse(os))
}

// updateOS godoc
// @Summary Update an operating system
// @Description Updates a catalog OS entry. Requires staff or maintenance manager.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "OS ID"
// @Param os body dto.CatalogEntryRequest true "OS details"
// @Success 200 {object} dto.CatalogEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /oses/{id} [put]
func (h *catalogHandler) updateOS(c *gin.Context) {
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	os, err := h.catalogService.UpdateOS(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update os")
		return
	}

	c.JSON(http.StatusOK, dto.ToOSResponse(os))
}

// deleteOS godoc
// @Summary Delete an operating system
// @Description Deletes a catalog OS entry. Requires staff or maintenance manager.
// @Tags catalog
// @Param id path string true "OS ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /oses/{id} [delete]
func (h *catalogHandler) deleteOS(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.catalogService.DeleteOS(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete os")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Applications ---

// createApplication godoc
// @Summary Create an application
// @Description Creates a catalog application. Requires staff or maintenance manager.
// @Tags catalog
// @Accept json
// @Produce json
// @Param application body dto.CatalogEntryRequest true "Application details"
// @Success 201 {object} dto.CatalogEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /applications [post]
func (h *catalogHandler) createApplication(c *gin.Context) {
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	application, err := h.catalogService.CreateApplication(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create application")
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationResponse(application))
}

// listApplications godoc
// @Summary List applications
// @Tags catalog
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListCatalogResponse
// @Security BearerAuth
// @Router /applications [get]
func (h *catalogHandler) listApplications(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	applications, err := h.catalogService.ListApplications(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list applications")
		return
	}

	entries := make([]dto.CatalogEntryResponse, len(applications))
	for i := range applications {
		entries[i] = dto.ToApplicationResponse(&applications[i])
	}
	c.JSON(http.StatusOK, dto.ListCatalogResponse{Entries: entries})
}

// getApplication godoc
// @Summary Get an application
// @Tags catalog
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} dto.CatalogEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /applications/{id} [get]
func (h *catalogHandler) getApplication(c *gin.Context) {
	application, err := h.catalogService.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(application))
}

// updateApplication godoc
// @Summary Update an application
// @Description Updates a catalog application. Requires staff or maintenance manager.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param application body dto.CatalogEntryRequest true "Application details"
// @Success 200 {object} dto.CatalogEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /applications/{id} [put]
func (h *catalogHandler) updateApplication(c *gin.Context) {
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	application, err := h.catalogService.UpdateApplication(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(application))
}

// deleteApplication godoc
// @Summary Delete an application
// @Description Deletes a catalog application. Requires staff or maintenance manager.
// @Tags catalog
// @Param id path string true "Application ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /applications/{id} [delete]
func (h *catalogHandler) deleteApplication(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.catalogService.DeleteApplication(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete application")
		return
	}

	c.Status(http.StatusNoContent)
}
