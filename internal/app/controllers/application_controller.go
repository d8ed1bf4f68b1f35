package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// ApplicationController handles application intake and the hiring workflow
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// Submit accepts a multipart application form with optional resume and
// profile picture parts. Anonymous endpoint.
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !middleware.ValidateStruct(ctx, &req) {
		return
	}

	resume, _ := ctx.FormFile("resume")
	profileImage, _ := ctx.FormFile("profileImage")

	app, err := c.applicationService.Submit(ctx.Request.Context(), &req, resume, profileImage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromApplication(app)))
}

// List returns applications with filtering and pagination
func (c *ApplicationController) List(ctx *gin.Context) {
	filter := &dto.ApplicationListFilter{
		Search:    ctx.Query("search"),
		Status:    ctx.Query("status"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	apps, total, err := c.applicationService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		items = append(items, dto.FromApplication(app))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// GetByID returns one application
func (c *ApplicationController) GetByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromApplication(app)))
}

// UpdateStatus moves an application through the hiring workflow
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	app, err := c.applicationService.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromApplication(app)))
}

// Delete removes an application
func (c *ApplicationController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.applicationService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Application deleted"}))
}

// CreateToken mints an invite token and emails the application link
func (c *ApplicationController) CreateToken(ctx *gin.Context) {
	var req dto.CreateApplicationTokenRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	token, err := c.applicationService.CreateToken(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(token))
}

// ListTokens returns active invite tokens
func (c *ApplicationController) ListTokens(ctx *gin.Context) {
	tokens, err := c.applicationService.ListActiveTokens(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	items, pagination := helpers.PaginateSlice(tokens, page, size)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}))
}

// ScheduleInterview records an interview for an application
func (c *ApplicationController) ScheduleInterview(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ScheduleInterviewRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	interview, err := c.applicationService.ScheduleInterview(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(interview))
}

// ListInterviews returns interviews scheduled for an application
func (c *ApplicationController) ListInterviews(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	interviews, err := c.applicationService.ListInterviews(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interviews))
}

// CompleteInterview marks an interview done with closing notes
func (c *ApplicationController) CompleteInterview(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "interviewId")
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.applicationService.CompleteInterview(ctx.Request.Context(), id, req.Notes); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Interview completed"}))
}
