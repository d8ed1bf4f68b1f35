package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// EvaluationController handles performance evaluation endpoints
type EvaluationController struct {
	evaluationService *services.EvaluationService
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(evaluationService *services.EvaluationService) *EvaluationController {
	return &EvaluationController{evaluationService: evaluationService}
}

// Create records an evaluation for an intern
func (c *EvaluationController) Create(ctx *gin.Context) {
	var req dto.CreateEvaluationRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	evaluation, err := c.evaluationService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(evaluation))
}

// List returns evaluations, optionally scoped to one intern
func (c *EvaluationController) List(ctx *gin.Context) {
	var internID *uuid.UUID
	if internParam := ctx.Query("internId"); internParam != "" {
		id, err := uuid.Parse(internParam)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
			errorDetail = errorDetail.WithDetails("internId must be a valid UUID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		internID = &id
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	evaluations, total, err := c.evaluationService.List(ctx.Request.Context(), internID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      evaluations,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// GetByID returns one evaluation
func (c *EvaluationController) GetByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	evaluation, err := c.evaluationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(evaluation))
}

// Update applies a partial update and rederives the overall rating
func (c *EvaluationController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEvaluationRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	evaluation, err := c.evaluationService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(evaluation))
}

// Delete removes an evaluation
func (c *EvaluationController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.evaluationService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Evaluation deleted"}))
}

// ExportCSV downloads all evaluations as a CSV file
func (c *EvaluationController) ExportCSV(ctx *gin.Context) {
	data, err := c.evaluationService.ExportCSV(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fileName := "evaluations_" + time.Now().Format("20060102") + ".csv"
	ctx.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}
