package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// DocumentController handles document storage endpoints
type DocumentController struct {
	documentService *services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// Upload stores an uploaded file with its metadata
func (c *DocumentController) Upload(ctx *gin.Context) {
	uploadedBy, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UploadDocumentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrValidationFailed)
		return
	}
	if !middleware.ValidateStruct(ctx, &req) {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrValidationFailed)
		return
	}

	document, err := c.documentService.Upload(ctx.Request.Context(), uploadedBy, file, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(document))
}

// List returns documents with filtering and pagination
func (c *DocumentController) List(ctx *gin.Context) {
	filter := &dto.DocumentListFilter{
		Search:     ctx.Query("search"),
		Tag:        ctx.Query("tag"),
		UploadedBy: ctx.Query("uploadedBy"),
		SortBy:     ctx.Query("sortBy"),
		SortOrder:  ctx.Query("sortOrder"),
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	documents, total, err := c.documentService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      documents,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// GetByID returns document metadata
func (c *DocumentController) GetByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	document, err := c.documentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// Download streams the stored file back as an attachment
func (c *DocumentController) Download(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	path, fileName, err := c.documentService.FilePath(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(path, fileName)
}

// Update changes document metadata
func (c *DocumentController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDocumentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	document, err := c.documentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// Delete removes a document and its file
func (c *DocumentController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.documentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Document deleted"}))
}
