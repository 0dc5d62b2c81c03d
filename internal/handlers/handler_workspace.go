package handlers

import (
	"log/slog"
	"net/http"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workspaceHandler handles HTTP requests related to workspaces.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

// newWorkspaceHandler creates a new workspaceHandler.
func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
	}
}

// registerWorkspaceRoutes registers routes related to workspaces and their members.
func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := newWorkspaceHandler(workspaceService)

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listWorkspaces)
		workspaces.GET("/:workspace_id", h.getWorkspace)
		workspaces.PUT("/:workspace_id", h.updateWorkspace)
		workspaces.DELETE("/:workspace_id", h.deleteWorkspace)

		// Manage members within a workspace
		members := workspaces.Group("/:workspace_id/members")
		{
			members.GET("", h.listMembers)
			members.POST("", h.addMember)
			members.PUT("/:user_id", h.updateMemberRole)
			members.DELETE("/:user_id", h.removeMember)
		}
	}
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a new workspace and assigns the creator as admin.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	newWorkspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), principal, req.Name, req.Slug)
	if err != nil {
		respondError(c, err, "Failed to create workspace")
		return
	}

	logger.Info("Workspace created successfully", slog.String("workspace_id", newWorkspace.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(newWorkspace))
}

// listWorkspaces godoc
// @Summary List workspaces
// @Description Retrieves the workspaces visible to the caller: all of them for staff, memberships otherwise.
// @Tags workspaces
// @Produce  json
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Param slug query string false "Look up a single workspace by slug"
// @Success 200 {object} dto.ListWorkspacesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listWorkspaces(c *gin.Context) {
	var params dto.ListWorkspacesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)

	if params.Slug != "" {
		workspace, err := h.workspaceService.GetWorkspaceBySlug(c.Request.Context(), principal, params.Slug)
		if err != nil {
			respondError(c, err, "Failed to get workspace")
			return
		}
		c.JSON(http.StatusOK, dto.ToListWorkspacesResponse([]domain.Workspace{*workspace}))
		return
	}

	workspaces, err := h.workspaceService.ListWorkspaces(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list workspaces")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkspacesResponse(workspaces))
}

// getWorkspace godoc
// @Summary Get a workspace
// @Description Retrieves a workspace the caller may see. Non-members get 404.
// @Tags workspaces
// @Produce  json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	workspace, err := h.workspaceService.GetWorkspace(c.Request.Context(), principal, c.Param("workspace_id"))
	if err != nil {
		respondError(c, err, "Failed to get workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// updateWorkspace godoc
// @Summary Update a workspace
// @Description Updates a workspace's name and slug. Requires workspace admin, staff, or maintenance manager.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param workspace_id path string true "Workspace ID"
// @Param workspace body dto.UpdateWorkspaceRequest true "Workspace details"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [put]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), principal, c.Param("workspace_id"), req.Name, req.Slug)
	if err != nil {
		respondError(c, err, "Failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// deleteWorkspace godoc
// @Summary Delete a workspace
// @Description Deletes a workspace and everything it owns. Requires workspace admin, staff, or maintenance manager.
// @Tags workspaces
// @Param workspace_id path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), principal, c.Param("workspace_id")); err != nil {
		respondError(c, err, "Failed to delete workspace")
		return
	}

	c.Status(http.StatusNoContent)
}

// listMembers godoc
// @Summary List workspace members
// @Description Retrieves the memberships of a workspace the caller may see.
// @Tags workspaces
// @Produce  json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.ListMembershipsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [get]
func (h *workspaceHandler) listMembers(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	members, err := h.workspaceService.ListMembers(c.Request.Context(), principal, c.Param("workspace_id"))
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMembershipsResponse(members))
}

// addMember godoc
// @Summary Add a member to a workspace
// @Description Adds a user to a workspace with a role. Requires workspace admin, staff, or maintenance manager.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param workspace_id path string true "Workspace ID"
// @Param member body dto.AddMemberRequest true "User ID and role"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [post]
func (h *workspaceHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	membership, err := h.workspaceService.AddMember(c.Request.Context(), principal, c.Param("workspace_id"), req.UserID, req.Role)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipResponse(membership))
}

// updateMemberRole godoc
// @Summary Change a member's role
// @Description Changes a member's role in a workspace. Requires workspace admin, staff, or maintenance manager.
// @Tags workspaces
// @Accept  json
// @Param workspace_id path string true "Workspace ID"
// @Param user_id path string true "User ID"
// @Param role body dto.UpdateMemberRoleRequest true "New role"
// @Produce json
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [put]
func (h *workspaceHandler) updateMemberRole(c *gin.Context) {
	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	membership, err := h.workspaceService.UpdateMemberRole(c.Request.Context(), principal, c.Param("workspace_id"), c.Param("user_id"), req.Role)
	if err != nil {
		respondError(c, err, "Failed to update member role")
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipResponse(membership))
}

// removeMember godoc
// @Summary Remove a member from a workspace
// @Description Removes a user from a workspace. Members may remove themselves; otherwise requires workspace admin, staff, or maintenance manager.
// @Tags workspaces
// @Param workspace_id path string true "Workspace ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [delete]
func (h *workspaceHandler) removeMember(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	err := h.workspaceService.RemoveMember(c.Request.Context(), principal, c.Param("workspace_id"), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}
