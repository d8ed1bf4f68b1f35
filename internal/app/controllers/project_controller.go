package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// ProjectController handles project management endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// Create adds a project
func (c *ProjectController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	project, err := c.projectService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(project))
}

// List returns projects with filtering and pagination
func (c *ProjectController) List(ctx *gin.Context) {
	filter := &dto.ProjectListFilter{
		Search:    ctx.Query("search"),
		Status:    ctx.Query("status"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	projects, total, err := c.projectService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      projects,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// GetByID returns one project with its members
func (c *ProjectController) GetByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	project, err := c.projectService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(project))
}

// Update applies a partial update to a project
func (c *ProjectController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	project, err := c.projectService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(project))
}

// Delete removes a project and its memberships
func (c *ProjectController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.projectService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Project deleted"}))
}

// AddMember puts an intern on a project
func (c *ProjectController) AddMember(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignProjectRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	member, err := c.projectService.AddMember(ctx.Request.Context(), id, req.InternID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(member))
}

// RemoveMember takes an intern off a project
func (c *ProjectController) RemoveMember(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	internID, ok := parseUUIDParam(ctx, "internId")
	if !ok {
		return
	}

	if err := c.projectService.RemoveMember(ctx.Request.Context(), id, internID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Member removed"}))
}
