package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// InternController handles intern record management
type InternController struct {
	internService *services.InternService
}

// NewInternController creates a new InternController
func NewInternController(internService *services.InternService) *InternController {
	return &InternController{internService: internService}
}

// Create registers an intern directly
func (c *InternController) Create(ctx *gin.Context) {
	var req dto.CreateInternRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	intern, err := c.internService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromIntern(intern)))
}

// List returns interns with filtering, sorting and pagination
func (c *InternController) List(ctx *gin.Context) {
	filter := &dto.InternListFilter{
		Search:     ctx.Query("search"),
		Department: ctx.Query("department"),
		Status:     ctx.Query("status"),
		SortBy:     ctx.Query("sortBy"),
		SortOrder:  ctx.Query("sortOrder"),
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	interns, total, err := c.internService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.InternResponse, 0, len(interns))
	for _, intern := range interns {
		items = append(items, dto.FromIntern(intern))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// GetByID returns one intern
func (c *InternController) GetByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	intern, err := c.internService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromIntern(intern)))
}

// Update applies a partial update to an intern
func (c *InternController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInternRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	intern, err := c.internService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromIntern(intern)))
}

// Delete removes an intern and their login
func (c *InternController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Intern deleted"}))
}

// UploadProfileImage stores a new profile picture
func (c *InternController) UploadProfileImage(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Profile image file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	intern, err := c.internService.SetProfileImage(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromIntern(intern)))
}

// ExportCSV streams every intern as a CSV attachment
func (c *InternController) ExportCSV(ctx *gin.Context) {
	data, err := c.internService.ExportCSV(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := "interns_" + time.Now().Format("20060102") + ".csv"
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}
