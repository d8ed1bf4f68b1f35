package models

import (
	"time"

	"github.com/google/uuid"
)

// Application is one row per candidacy. Uploaded files are URL strings,
// not blobs; the bytes live in file storage.
type Application struct {
	ID               uuid.UUID         `json:"id" db:"id"`
	FirstName        string            `json:"firstName" db:"first_name"`
	LastName         string            `json:"lastName" db:"last_name"`
	Email            string            `json:"email" db:"email"`
	Phone            string            `json:"phone" db:"phone"`
	EnrollmentNumber string            `json:"enrollmentNumber" db:"enrollment_number"`
	University       string            `json:"university" db:"university"`
	Degree           string            `json:"degree" db:"degree"`
	Department       string            `json:"department" db:"department"`
	Skills           StringList        `json:"skills" db:"skills"`
	CoverLetter      string            `json:"coverLetter" db:"cover_letter"`
	Status           ApplicationStatus `json:"status" db:"status"`
	ResumeURL        *string           `json:"resumeUrl,omitempty" db:"resume_url"`
	ProfileImageURL  *string           `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	InterviewDate    *time.Time        `json:"interviewDate,omitempty" db:"interview_date"`
	InterviewLink    *string           `json:"interviewLink,omitempty" db:"interview_link"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time         `json:"updatedAt" db:"updated_at"`
}

// ApplicationToken gates invited application submissions. Single use,
// expiring.
type ApplicationToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Token     string    `json:"token" db:"token"`
	Email     string    `json:"email" db:"email"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Interview is a scheduled interview for an application
type Interview struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ApplicationID uuid.UUID  `json:"applicationId" db:"application_id"`
	ScheduledAt   time.Time  `json:"scheduledAt" db:"scheduled_at"`
	MeetingLink   string     `json:"meetingLink" db:"meeting_link"`
	Interviewer   string     `json:"interviewer" db:"interviewer"`
	Notes         string     `json:"notes" db:"notes"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}
