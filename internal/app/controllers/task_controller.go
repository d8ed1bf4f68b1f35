package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// TaskController handles task management endpoints
type TaskController struct {
	taskService *services.TaskService
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService *services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// Create adds a task
func (c *TaskController) Create(ctx *gin.Context) {
	var req dto.CreateTaskRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	task, err := c.taskService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(task))
}

// List returns tasks with filtering and pagination
func (c *TaskController) List(ctx *gin.Context) {
	filter := &dto.TaskListFilter{
		Search:    ctx.Query("search"),
		Status:    ctx.Query("status"),
		Priority:  ctx.Query("priority"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}
	if internParam := ctx.Query("internId"); internParam != "" {
		if internID, err := uuid.Parse(internParam); err == nil {
			filter.InternID = &internID
		}
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	tasks, total, err := c.taskService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      tasks,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// GetByID returns one task with its assignments
func (c *TaskController) GetByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	task, err := c.taskService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(task))
}

// Update applies a partial update to a task
func (c *TaskController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	task, err := c.taskService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(task))
}

// Delete removes a task and its assignments
func (c *TaskController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.taskService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Task deleted"}))
}

// Assign links an intern to a task
func (c *TaskController) Assign(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	assignment, err := c.taskService.Assign(ctx.Request.Context(), id, req.InternID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment))
}

// Unassign removes the link between an intern and a task
func (c *TaskController) Unassign(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	internID, ok := parseUUIDParam(ctx, "internId")
	if !ok {
		return
	}

	if err := c.taskService.Unassign(ctx.Request.Context(), id, internID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Task unassigned"}))
}

// UpdateAssignmentStatus moves an assignment along its lifecycle
func (c *TaskController) UpdateAssignmentStatus(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	internID, ok := parseUUIDParam(ctx, "internId")
	if !ok {
		return
	}

	var req dto.UpdateAssignmentStatusRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	err := c.taskService.UpdateAssignmentStatus(ctx.Request.Context(), id, internID,
		models.AssignmentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Assignment updated"}))
}
