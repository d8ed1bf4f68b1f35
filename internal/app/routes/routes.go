package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/controllers"
	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	// API version group
	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.GET("/public-key", ctrl.AuthController.GetPublicKey)
		auth.POST("/login", ctrl.AuthController.Login)
		auth.POST("/refresh", ctrl.AuthController.RefreshToken)
		auth.POST("/forgot-password", ctrl.AuthController.RequestOTP)
		auth.POST("/validate-otp", ctrl.AuthController.ValidateOTP)
		auth.GET("/security-questions", ctrl.AuthController.ListSecurityQuestions)
		auth.POST("/security-questions/verify", ctrl.AuthController.VerifySecurityQuestions)
		auth.POST("/reset-password", ctrl.AuthController.ResetPassword)
	}

	// --- Public application intake ---
	// Submission is reached through a tokenized invitation link, not a login.
	v1.POST("/applications", ctrl.ApplicationController.Submit)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrl.AuthController.Logout)
		authenticated.POST("/auth/change-password", ctrl.AuthController.ChangePassword)
		authenticated.POST("/auth/security-questions", ctrl.AuthController.SetSecurityQuestions)

		// Interns can read their own slice of the system; everything that
		// manages the program is admin-only below.
		interns := authenticated.Group("/interns")
		{
			interns.GET("", ctrl.InternController.List)
			interns.GET("/:id", ctrl.InternController.GetByID)
			interns.POST("/:id/profile-image", ctrl.InternController.UploadProfileImage)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.POST("/clock-in", ctrl.AttendanceController.ClockIn)
			attendance.POST("/clock-out", ctrl.AttendanceController.ClockOut)
			attendance.GET("", ctrl.AttendanceController.List)
		}

		tasks := authenticated.Group("/tasks")
		{
			tasks.GET("", ctrl.TaskController.List)
			tasks.GET("/:id", ctrl.TaskController.GetByID)
			tasks.PUT("/:id/assignments/:internId", ctrl.TaskController.UpdateAssignmentStatus)
		}

		projects := authenticated.Group("/projects")
		{
			projects.GET("", ctrl.ProjectController.List)
			projects.GET("/:id", ctrl.ProjectController.GetByID)
		}

		documents := authenticated.Group("/documents")
		{
			documents.GET("", ctrl.DocumentController.List)
			documents.GET("/:id", ctrl.DocumentController.GetByID)
			documents.GET("/:id/download", ctrl.DocumentController.Download)
			documents.POST("", ctrl.DocumentController.Upload)
		}

		evaluations := authenticated.Group("/evaluations")
		{
			evaluations.GET("", ctrl.EvaluationController.List)
			evaluations.GET("/:id", ctrl.EvaluationController.GetByID)
		}

		communication := authenticated.Group("/communication")
		{
			communication.GET("/messages/:internId", ctrl.CommunicationController.ListMessages)
		}

		// --- Admin-only routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.POST("/interns", ctrl.InternController.Create)
			admin.PUT("/interns/:id", ctrl.InternController.Update)
			admin.DELETE("/interns/:id", ctrl.InternController.Delete)
			admin.GET("/interns/export", ctrl.InternController.ExportCSV)

			admin.GET("/applications", ctrl.ApplicationController.List)
			admin.GET("/applications/:id", ctrl.ApplicationController.GetByID)
			admin.PUT("/applications/:id/status", ctrl.ApplicationController.UpdateStatus)
			admin.DELETE("/applications/:id", ctrl.ApplicationController.Delete)
			admin.POST("/applications/tokens", ctrl.ApplicationController.CreateToken)
			admin.GET("/applications/tokens", ctrl.ApplicationController.ListTokens)
			admin.POST("/applications/:id/interviews", ctrl.ApplicationController.ScheduleInterview)
			admin.GET("/applications/:id/interviews", ctrl.ApplicationController.ListInterviews)
			admin.PUT("/interviews/:interviewId/complete", ctrl.ApplicationController.CompleteInterview)

			admin.GET("/attendance/export", ctrl.AttendanceController.ExportCSV)

			admin.POST("/tasks", ctrl.TaskController.Create)
			admin.PUT("/tasks/:id", ctrl.TaskController.Update)
			admin.DELETE("/tasks/:id", ctrl.TaskController.Delete)
			admin.POST("/tasks/:id/assignments", ctrl.TaskController.Assign)
			admin.DELETE("/tasks/:id/assignments/:internId", ctrl.TaskController.Unassign)

			admin.POST("/projects", ctrl.ProjectController.Create)
			admin.PUT("/projects/:id", ctrl.ProjectController.Update)
			admin.DELETE("/projects/:id", ctrl.ProjectController.Delete)
			admin.POST("/projects/:id/members", ctrl.ProjectController.AddMember)
			admin.DELETE("/projects/:id/members/:internId", ctrl.ProjectController.RemoveMember)

			admin.PUT("/documents/:id", ctrl.DocumentController.Update)
			admin.DELETE("/documents/:id", ctrl.DocumentController.Delete)

			admin.POST("/evaluations", ctrl.EvaluationController.Create)
			admin.PUT("/evaluations/:id", ctrl.EvaluationController.Update)
			admin.DELETE("/evaluations/:id", ctrl.EvaluationController.Delete)
			admin.GET("/evaluations/export", ctrl.EvaluationController.ExportCSV)

			admin.POST("/communication/messages", ctrl.CommunicationController.SendMessage)
			admin.POST("/communication/templates", ctrl.CommunicationController.CreateTemplate)
			admin.GET("/communication/templates", ctrl.CommunicationController.ListTemplates)
			admin.PUT("/communication/templates/:id", ctrl.CommunicationController.UpdateTemplate)
			admin.DELETE("/communication/templates/:id", ctrl.CommunicationController.DeleteTemplate)

			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/summary", ctrl.DashboardController.Summary)
				dashboard.GET("/trends/applications", ctrl.DashboardController.ApplicationTrend)
				dashboard.GET("/trends/interns", ctrl.DashboardController.InternTrend)
				dashboard.GET("/trends/attendance", ctrl.DashboardController.AttendanceRate)
				dashboard.GET("/breakdown/applications", ctrl.DashboardController.ApplicationBreakdown)
				dashboard.GET("/breakdown/interns", ctrl.DashboardController.InternBreakdown)
				dashboard.GET("/breakdown/departments", ctrl.DashboardController.DepartmentBreakdown)
				dashboard.GET("/breakdown/attendance", ctrl.DashboardController.AttendanceBreakdown)
				dashboard.GET("/performance", ctrl.DashboardController.PerformanceOverview)
			}

			admin.POST("/admins", ctrl.AdminController.Create)
			admin.GET("/admins", ctrl.AdminController.List)
			admin.GET("/admins/:id", ctrl.AdminController.GetByID)
			admin.PUT("/admins/:id", ctrl.AdminController.Update)
			admin.DELETE("/admins/:id", ctrl.AdminController.Delete)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
