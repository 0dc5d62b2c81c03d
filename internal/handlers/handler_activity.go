package handlers

import (
	"net/http"

	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
	"github.com/gin-gonic/gin"
)

// activityHandler handles HTTP requests related to logged maintenance activity.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

// newActivityHandler creates a new activityHandler.
func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{
		activityService: as,
	}
}

// registerActivityRoutes registers routes related to activity records.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)

	activities := rg.Group("/activities")
	{
		activities.POST("", h.createActivity)
		activities.GET("", h.listActivities)
		activities.GET("/feed", h.activityFeed)
		activities.GET("/:activity_id", h.getActivity)
		activities.PUT("/:activity_id", h.updateActivity)
		activities.DELETE("/:activity_id", h.deleteActivity)
	}
}

// createActivity godoc
// @Summary Log a maintenance activity
// @Description Records completed maintenance against an asset, optionally tied to a work order.
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body dto.CreateActivityRequest true "Activity details"
// @Success 201 {object} dto.ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities [post]
func (h *activityHandler) createActivity(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	activity, err := h.activityService.CreateActivity(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to log activity")
		return
	}

	c.JSON(http.StatusCreated, dto.ToActivityResponse(activity))
}

// listActivities godoc
// @Summary List activity records
// @Description Retrieves the activity records visible to the caller, newest first.
// @Tags activities
// @Produce json
// @Param assetID query string false "Filter by asset"
// @Param kind query string false "Filter by kind" Enums(checked, patched, backup_verified)
// @Param occurredAfter query string false "Occurrence cutoff (YYYY-MM-DD)"
// @Param occurredBefore query string false "Occurrence cutoff (YYYY-MM-DD)"
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	activities, err := h.activityService.ListActivities(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err, "Failed to list activities")
		return
	}

	c.JSON(http.StatusOK, dto.ToListActivitiesResponse(activities))
}

// activityFeed godoc
// @Summary Recent activity feed
// @Description Retrieves the most recent activity across every workspace the caller can see.
// @Tags activities
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Success 200 {object} dto.ListActivitiesResponse
// @Security BearerAuth
// @Router /activities/feed [get]
func (h *activityHandler) activityFeed(c *gin.Context) {
	var params dto.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	activities, err := h.activityService.ActivityFeed(c.Request.Context(), principal, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to build activity feed")
		return
	}

	c.JSON(http.StatusOK, dto.ToListActivitiesResponse(activities))
}

// getActivity godoc
// @Summary Get an activity record
// @Description Retrieves an activity record visible to the caller. Non-members get 404.
// @Tags activities
// @Produce json
// @Param activity_id path string true "Activity ID"
// @Success 200 {object} dto.ActivityResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{activity_id} [get]
func (h *activityHandler) getActivity(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	activity, err := h.activityService.GetActivity(c.Request.Context(), principal, c.Param("activity_id"))
	if err != nil {
		respondError(c, err, "Failed to get activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

// updateActivity godoc
// @Summary Update an activity record
// @Description Updates an activity's kind, note or occurrence time. Requires a write role in the owning workspace.
// @Tags activities
// @Accept json
// @Produce json
// @Param activity_id path string true "Activity ID"
// @Param activity body dto.UpdateActivityRequest true "Fields to update"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{activity_id} [put]
func (h *activityHandler) updateActivity(c *gin.Context) {
	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	activity, err := h.activityService.UpdateActivity(c.Request.Context(), principal, c.Param("activity_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

// deleteActivity godoc
// @Summary Delete an activity record
// @Description Deletes an activity record. Requires a write role in the owning workspace.
// @Tags activities
// @Param activity_id path string true "Activity ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{activity_id} [delete]
func (h *activityHandler) deleteActivity(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.activityService.DeleteActivity(c.Request.Context(), principal, c.Param("activity_id")); err != nil {
		respondError(c, err, "Failed to delete activity")
		return
	}

	c.Status(http.StatusNoContent)
}
