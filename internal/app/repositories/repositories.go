package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	InternRepository           *InternRepository
	LoginRepository            *LoginRepository
	AdminRepository            *AdminRepository
	TokenRepository            *TokenRepository
	ApplicationRepository      *ApplicationRepository
	ApplicationTokenRepository *ApplicationTokenRepository
	InterviewRepository        *InterviewRepository
	TaskRepository             *TaskRepository
	ProjectRepository          *ProjectRepository
	AttendanceRepository       *AttendanceRepository
	DocumentRepository         *DocumentRepository
	EvaluationRepository       *EvaluationRepository
	MessageRepository          *MessageRepository
	SecurityQuestionRepository *SecurityQuestionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		InternRepository:           NewInternRepository(db),
		LoginRepository:            NewLoginRepository(db),
		AdminRepository:            NewAdminRepository(db),
		TokenRepository:            NewTokenRepository(db),
		ApplicationRepository:      NewApplicationRepository(db),
		ApplicationTokenRepository: NewApplicationTokenRepository(db),
		InterviewRepository:        NewInterviewRepository(db),
		TaskRepository:             NewTaskRepository(db),
		ProjectRepository:          NewProjectRepository(db),
		AttendanceRepository:       NewAttendanceRepository(db),
		DocumentRepository:         NewDocumentRepository(db),
		EvaluationRepository:       NewEvaluationRepository(db),
		MessageRepository:          NewMessageRepository(db),
		SecurityQuestionRepository: NewSecurityQuestionRepository(db),
	}
}
