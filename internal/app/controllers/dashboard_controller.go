package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
)

const (
	defaultTrendMonths = 6
	defaultRateWeeks   = 4
)

// DashboardController handles dashboard and analytics endpoints
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Summary returns the headline counters
func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.dashboardService.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}

// ApplicationTrend returns monthly application counts
func (c *DashboardController) ApplicationTrend(ctx *gin.Context) {
	report, err := c.dashboardService.ApplicationTrend(ctx.Request.Context(), trendMonths(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// InternTrend returns monthly intern onboarding counts
func (c *DashboardController) InternTrend(ctx *gin.Context) {
	report, err := c.dashboardService.InternTrend(ctx.Request.Context(), trendMonths(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// ApplicationBreakdown returns application counts by status
func (c *DashboardController) ApplicationBreakdown(ctx *gin.Context) {
	breakdown, err := c.dashboardService.ApplicationBreakdown(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(breakdown))
}

// InternBreakdown returns intern counts by internship status
func (c *DashboardController) InternBreakdown(ctx *gin.Context) {
	breakdown, err := c.dashboardService.InternBreakdown(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(breakdown))
}

// DepartmentBreakdown returns intern counts by department
func (c *DashboardController) DepartmentBreakdown(ctx *gin.Context) {
	breakdown, err := c.dashboardService.DepartmentBreakdown(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(breakdown))
}

// AttendanceBreakdown returns attendance counts for the current month
func (c *DashboardController) AttendanceBreakdown(ctx *gin.Context) {
	breakdown, err := c.dashboardService.AttendanceBreakdown(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(breakdown))
}

// AttendanceRate returns weekly attendance rates
func (c *DashboardController) AttendanceRate(ctx *gin.Context) {
	weeks, err := strconv.Atoi(ctx.DefaultQuery("weeks", strconv.Itoa(defaultRateWeeks)))
	if err != nil || weeks < 1 {
		weeks = defaultRateWeeks
	}
	points, err := c.dashboardService.AttendanceRate(ctx.Request.Context(), weeks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(points))
}

// PerformanceOverview returns aggregate performance indicators
func (c *DashboardController) PerformanceOverview(ctx *gin.Context) {
	overview, err := c.dashboardService.PerformanceOverview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview))
}

func trendMonths(ctx *gin.Context) int {
	months, err := strconv.Atoi(ctx.DefaultQuery("months", strconv.Itoa(defaultTrendMonths)))
	if err != nil || months < 1 {
		return defaultTrendMonths
	}
	return months
}
