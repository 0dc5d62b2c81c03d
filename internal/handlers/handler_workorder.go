package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workOrderHandler handles HTTP requests related to work orders.
type workOrderHandler struct {
	workOrderService portssvc.WorkOrderSvcFacade
}

// newWorkOrderHandler creates a new workOrderHandler.
func newWorkOrderHandler(ws portssvc.WorkOrderSvcFacade) *workOrderHandler {
	return &workOrderHandler{
		workOrderService: ws,
	}
}

// registerWorkOrderRoutes registers routes related to work orders.
func registerWorkOrderRoutes(rg *gin.RouterGroup, workOrderService portssvc.WorkOrderSvcFacade) {
	h := newWorkOrderHandler(workOrderService)

	workOrders := rg.Group("/workorders")
	{
		workOrders.POST("", h.createWorkOrder)
		workOrders.GET("", h.listWorkOrders)
		workOrders.GET("/:work_order_id", h.getWorkOrder)
		workOrders.PUT("/:work_order_id", h.updateWorkOrder)
		workOrders.DELETE("/:work_order_id", h.deleteWorkOrder)
	}
}

// createWorkOrder godoc
// @Summary Schedule a work order
// @Description Schedules a maintenance task against an asset in a workspace the caller can see.
// @Tags workorders
// @Accept json
// @Produce json
// @Param workOrder body dto.CreateWorkOrderRequest true "Work order details"
// @Success 201 {object} dto.WorkOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workorders [post]
func (h *workOrderHandler) createWorkOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	workOrder, err := h.workOrderService.CreateWorkOrder(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create work order")
		return
	}

	logger.Info("Work order created successfully", slog.String("work_order_id", workOrder.WorkOrderID))
	c.JSON(http.StatusCreated, dto.ToWorkOrderResponse(workOrder))
}

// listWorkOrders godoc
// @Summary List work orders
// @Description Retrieves the work orders visible to the caller, narrowed by filters.
// @Tags workorders
// @Produce json
// @Param assetID query string false "Filter by asset"
// @Param taskID query string false "Filter by task"
// @Param status query string false "Filter by status" Enums(open, done, cancelled)
// @Param dueAfter query string false "Due cutoff (YYYY-MM-DD)"
// @Param dueBefore query string false "Due cutoff (YYYY-MM-DD)"
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListWorkOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /workorders [get]
func (h *workOrderHandler) listWorkOrders(c *gin.Context) {
	var params dto.ListWorkOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	workOrders, err := h.workOrderService.ListWorkOrders(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err, "Failed to list work orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkOrdersResponse(workOrders))
}

// getWorkOrder godoc
// @Summary Get a work order
// @Description Retrieves a work order visible to the caller. Non-members get 404.
// @Tags workorders
// @Produce json
// @Param work_order_id path string true "Work order ID"
// @Success 200 {object} dto.WorkOrderResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workorders/{work_order_id} [get]
func (h *workOrderHandler) getWorkOrder(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	workOrder, err := h.workOrderService.GetWorkOrder(c.Request.Context(), principal, c.Param("work_order_id"))
	if err != nil {
		respondError(c, err, "Failed to get work order")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderResponse(workOrder))
}

// updateWorkOrder godoc
// @Summary Update a work order
// @Description Updates a work order's due date, status or assignee. Requires a write role in the owning workspace.
// @Tags workorders
// @Accept json
// @Produce json
// @Param work_order_id path string true "Work order ID"
// @Param workOrder body dto.UpdateWorkOrderRequest true "Fields to update"
// @Success 200 {object} dto.WorkOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workorders/{work_order_id} [put]
func (h *workOrderHandler) updateWorkOrder(c *gin.Context) {
	var req dto.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	workOrder, err := h.workOrderService.UpdateWorkOrder(c.Request.Context(), principal, c.Param("work_order_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update work order")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderResponse(workOrder))
}

// deleteWorkOrder godoc
// @Summary Delete a work order
// @Description Deletes a work order. Requires a write role in the owning workspace.
// @Tags workorders
// @Param work_order_id path string true "Work order ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workorders/{work_order_id} [delete]
func (h *workOrderHandler) deleteWorkOrder(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.workOrderService.DeleteWorkOrder(c.Request.Context(), principal, c.Param("work_order_id")); err != nil {
		respondError(c, err, "Failed to delete work order")
		return
	}

	c.Status(http.StatusNoContent)
}
