package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController          *AuthController
	ApplicationController   *ApplicationController
	InternController        *InternController
	AttendanceController    *AttendanceController
	TaskController          *TaskController
	ProjectController       *ProjectController
	DocumentController      *DocumentController
	EvaluationController    *EvaluationController
	CommunicationController *CommunicationController
	DashboardController     *DashboardController
	AdminController         *AdminController
}

// NewControllers initializes all controllers
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:          NewAuthController(svcs.AuthService),
		ApplicationController:   NewApplicationController(svcs.ApplicationService),
		InternController:        NewInternController(svcs.InternService),
		AttendanceController:    NewAttendanceController(svcs.AttendanceService),
		TaskController:          NewTaskController(svcs.TaskService),
		ProjectController:       NewProjectController(svcs.ProjectService),
		DocumentController:      NewDocumentController(svcs.DocumentService),
		EvaluationController:    NewEvaluationController(svcs.EvaluationService),
		CommunicationController: NewCommunicationController(svcs.CommunicationService),
		DashboardController:     NewDashboardController(svcs.DashboardService),
		AdminController:         NewAdminController(svcs.AdminService),
	}
}

// parseUUIDParam reads a path parameter as a UUID. On failure it writes
// a 400 response and reports false.
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
		errorDetail = errorDetail.WithDetails(name + " must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID reads the authenticated user id set by the JWT middleware.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}
