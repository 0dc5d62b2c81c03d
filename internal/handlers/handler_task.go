package handlers

import (
	"net/http"

	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taskHandler handles HTTP requests related to maintenance tasks.
type taskHandler struct {
	taskService portssvc.TaskSvcFacade
}

// newTaskHandler creates a new taskHandler.
func newTaskHandler(ts portssvc.TaskSvcFacade) *taskHandler {
	return &taskHandler{
		taskService: ts,
	}
}

// registerTaskRoutes registers routes related to maintenance tasks.
func registerTaskRoutes(rg *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	h := newTaskHandler(taskService)

	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.createTask)
		tasks.GET("", h.listTasks)
		tasks.GET("/:task_id", h.getTask)
		tasks.PUT("/:task_id", h.updateTask)
		tasks.DELETE("/:task_id", h.deleteTask)
	}
}

// createTask godoc
// @Summary Create a maintenance task
// @Description Creates a recurring maintenance task in a workspace the caller can see.
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body dto.CreateTaskRequest true "Task details"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *taskHandler) createTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	task, err := h.taskService.CreateTask(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// listTasks godoc
// @Summary List maintenance tasks
// @Description Retrieves the maintenance tasks visible to the caller.
// @Tags tasks
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListTasksResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *taskHandler) listTasks(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	tasks, err := h.taskService.ListTasks(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTasksResponse(tasks))
}

// getTask godoc
// @Summary Get a maintenance task
// @Description Retrieves a task visible to the caller. Non-members get 404.
// @Tags tasks
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id} [get]
func (h *taskHandler) getTask(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	task, err := h.taskService.GetTask(c.Request.Context(), principal, c.Param("task_id"))
	if err != nil {
		respondError(c, err, "Failed to get task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// updateTask godoc
// @Summary Update a maintenance task
// @Description Updates a task. Requires a write role in the owning workspace.
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path string true "Task ID"
// @Param task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id} [put]
func (h *taskHandler) updateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	task, err := h.taskService.UpdateTask(c.Request.Context(), principal, c.Param("task_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// deleteTask godoc
// @Summary Delete a maintenance task
// @Description Deletes a task while no work orders reference it. Requires a write role in the owning workspace.
// @Tags tasks
// @Param task_id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{task_id} [delete]
func (h *taskHandler) deleteTask(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	if err := h.taskService.DeleteTask(c.Request.Context(), principal, c.Param("task_id")); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}
