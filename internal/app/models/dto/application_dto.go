package dto

import (
	"time"

	"github.com/internhub/internhub/internal/app/models"
)

// SubmitApplicationRequest is the multipart form for a new candidacy.
// Resume and profile picture arrive as file parts alongside these fields.
type SubmitApplicationRequest struct {
	FirstName        string `form:"firstName" validate:"required,max=100"`
	LastName         string `form:"lastName" validate:"required,max=100"`
	Email            string `form:"email" validate:"required,email"`
	Phone            string `form:"phone" validate:"omitempty,max=20"`
	EnrollmentNumber string `form:"enrollmentNumber" validate:"required,max=50"`
	University       string `form:"university" validate:"required,max=200"`
	Degree           string `form:"degree" validate:"omitempty,max=100"`
	Department       string `form:"department" validate:"omitempty,max=100"`
	Skills           string `form:"skills"` // comma-separated
	CoverLetter      string `form:"coverLetter" validate:"omitempty,max=5000"`
	Token            string `form:"token"` // optional invite token
}

// UpdateApplicationStatusRequest drives the hiring workflow
type UpdateApplicationStatusRequest struct {
	Status        string     `json:"status" validate:"required,oneof=SUBMITTED REVIEW INTERVIEW HIRED REJECTED"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	InterviewLink *string    `json:"interviewLink,omitempty"`
}

// ApplicationListFilter carries list query parameters
type ApplicationListFilter struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
}

// ApplicationResponse is the transport shape of an application
type ApplicationResponse struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	EnrollmentNumber string     `json:"enrollmentNumber"`
	University       string     `json:"university"`
	Degree           string     `json:"degree"`
	Department       string     `json:"department"`
	Skills           []string   `json:"skills"`
	CoverLetter      string     `json:"coverLetter"`
	Status           string     `json:"status"`
	ResumeURL        *string    `json:"resumeUrl,omitempty"`
	ProfileImageURL  *string    `json:"profileImageUrl,omitempty"`
	InterviewDate    *time.Time `json:"interviewDate,omitempty"`
	InterviewLink    *string    `json:"interviewLink,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FromApplication converts a model to its response shape
func FromApplication(app *models.Application) ApplicationResponse {
	if app == nil {
		return ApplicationResponse{}
	}
	return ApplicationResponse{
		ID:               app.ID.String(),
		FirstName:        app.FirstName,
		LastName:         app.LastName,
		Email:            app.Email,
		Phone:            app.Phone,
		EnrollmentNumber: app.EnrollmentNumber,
		University:       app.University,
		Degree:           app.Degree,
		Department:       app.Department,
		Skills:           app.Skills,
		CoverLetter:      app.CoverLetter,
		Status:           string(app.Status),
		ResumeURL:        app.ResumeURL,
		ProfileImageURL:  app.ProfileImageURL,
		InterviewDate:    app.InterviewDate,
		InterviewLink:    app.InterviewLink,
		CreatedAt:        app.CreatedAt,
	}
}

// CreateApplicationTokenRequest mints an invite token for an email
type CreateApplicationTokenRequest struct {
	Email     string `json:"email" validate:"required,email"`
	ExpiresIn string `json:"expiresIn" validate:"omitempty"` // duration, default 72h
}

// ScheduleInterviewRequest records an interview for an application
type ScheduleInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	MeetingLink string    `json:"meetingLink" validate:"required,url"`
	Interviewer string    `json:"interviewer" validate:"required,max=200"`
	Notes       string    `json:"notes" validate:"omitempty,max=2000"`
}
