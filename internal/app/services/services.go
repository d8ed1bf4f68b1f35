package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/repositories"
	"github.com/internhub/internhub/internal/pkg/auth"
	"github.com/internhub/internhub/internal/pkg/crypto"
	"github.com/internhub/internhub/internal/pkg/email"
	"github.com/internhub/internhub/internal/pkg/filestorage"
	"github.com/internhub/internhub/internal/pkg/otp"
)

// Services holds all the service instances
type Services struct {
	AuthService          *AuthService
	ApplicationService   *ApplicationService
	InternService        *InternService
	AttendanceService    *AttendanceService
	TaskService          *TaskService
	ProjectService       *ProjectService
	DocumentService      *DocumentService
	EvaluationService    *EvaluationService
	CommunicationService *CommunicationService
	DashboardService     *DashboardService
	AdminService         *AdminService
}

// Deps carries the shared infrastructure the services are built on.
type Deps struct {
	JWTService *auth.JWTService
	Crypto     *crypto.Service
	OTPCache   *otp.Cache
	Emails     email.Sender
	Storage    filestorage.FileStorage
	Logger     zerolog.Logger

	BaseURL            string
	MaxFailedLogins    int
	LockoutDuration    time.Duration
	ResetTokenLifetime time.Duration
	LateClockInCutoff  string
}

// NewServices wires every service to the repositories.
func NewServices(repos *repositories.Repositories, deps Deps) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.LoginRepository,
			repos.TokenRepository,
			repos.InternRepository,
			repos.SecurityQuestionRepository,
			deps.JWTService,
			deps.Crypto,
			deps.OTPCache,
			deps.Emails,
			deps.Logger,
			deps.MaxFailedLogins,
			deps.LockoutDuration,
			deps.ResetTokenLifetime,
		),
		ApplicationService: NewApplicationService(
			repos.ApplicationRepository,
			repos.ApplicationTokenRepository,
			repos.InterviewRepository,
			repos.InternRepository,
			repos.LoginRepository,
			deps.Storage,
			deps.Emails,
			deps.Logger,
			deps.BaseURL,
		),
		InternService: NewInternService(
			repos.InternRepository,
			repos.LoginRepository,
			deps.Storage,
			deps.Logger,
		),
		AttendanceService: NewAttendanceService(
			repos.AttendanceRepository,
			repos.InternRepository,
			deps.LateClockInCutoff,
			deps.Logger,
		),
		TaskService: NewTaskService(
			repos.TaskRepository,
			repos.InternRepository,
			deps.Logger,
		),
		ProjectService: NewProjectService(
			repos.ProjectRepository,
			repos.InternRepository,
			deps.Logger,
		),
		DocumentService: NewDocumentService(
			repos.DocumentRepository,
			deps.Storage,
			deps.Logger,
		),
		EvaluationService: NewEvaluationService(
			repos.EvaluationRepository,
			repos.InternRepository,
			deps.Logger,
		),
		CommunicationService: NewCommunicationService(
			repos.MessageRepository,
			repos.InternRepository,
			deps.Emails,
			deps.Logger,
		),
		DashboardService: NewDashboardService(
			repos.InternRepository,
			repos.ApplicationRepository,
			repos.TaskRepository,
			repos.ProjectRepository,
			repos.AttendanceRepository,
			repos.EvaluationRepository,
			deps.Logger,
		),
		AdminService: NewAdminService(
			repos.AdminRepository,
			repos.LoginRepository,
			deps.Logger,
		),
	}
}
