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

// AttendanceController handles daily clock-in/out endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// ClockIn records today's attendance for an intern
func (c *AttendanceController) ClockIn(ctx *gin.Context) {
	var req dto.ClockInRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	att, err := c.attendanceService.ClockIn(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(att))
}

// ClockOut closes today's attendance record
func (c *AttendanceController) ClockOut(ctx *gin.Context) {
	var req dto.ClockOutRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	att, err := c.attendanceService.ClockOut(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(att))
}

// List returns attendance records with filtering and pagination
func (c *AttendanceController) List(ctx *gin.Context) {
	filter := &dto.AttendanceListFilter{
		Status:    ctx.Query("status"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}
	if internParam := ctx.Query("internId"); internParam != "" {
		if internID, err := uuid.Parse(internParam); err == nil {
			filter.InternID = &internID
		}
	}
	if fromParam := ctx.Query("from"); fromParam != "" {
		if from, err := time.Parse("2006-01-02", fromParam); err == nil {
			filter.From = &from
		}
	}
	if toParam := ctx.Query("to"); toParam != "" {
		if to, err := time.Parse("2006-01-02", toParam); err == nil {
			filter.To = &to
		}
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	records, total, err := c.attendanceService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      records,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// ExportCSV streams attendance for a date range as a CSV attachment.
// Defaults to the current month when no range is given.
func (c *AttendanceController) ExportCSV(ctx *gin.Context) {
	now := time.Now()
	from := helpers.StartOfMonth(now)
	to := now

	if fromParam := ctx.Query("from"); fromParam != "" {
		parsed, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid from date")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		from = parsed
	}
	if toParam := ctx.Query("to"); toParam != "" {
		parsed, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid to date")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		to = parsed
	}

	data, err := c.attendanceService.ExportCSV(ctx.Request.Context(), from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := "attendance_" + from.Format("20060102") + "_" + to.Format("20060102") + ".csv"
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}
