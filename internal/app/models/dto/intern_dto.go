package dto

import (
	"time"

	"github.com/internhub/internhub/internal/app/models"
)

// CreateInternRequest creates an intern directly (outside the hire workflow)
type CreateInternRequest struct {
	FirstName        string     `json:"firstName" validate:"required,max=100"`
	LastName         string     `json:"lastName" validate:"required,max=100"`
	Email            string     `json:"email" validate:"required,email"`
	Phone            string     `json:"phone" validate:"omitempty,max=20"`
	Address          string     `json:"address" validate:"omitempty,max=500"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	EnrollmentNumber string     `json:"enrollmentNumber" validate:"required,max=50"`
	University       string     `json:"university" validate:"omitempty,max=200"`
	Degree           string     `json:"degree" validate:"omitempty,max=100"`
	GraduationYear   *int       `json:"graduationYear,omitempty" validate:"omitempty,min=1950,max=2100"`
	Department       string     `json:"department" validate:"omitempty,max=100"`
	MentorName       string     `json:"mentorName" validate:"omitempty,max=200"`
	Skills           []string   `json:"skills"`
	Password         string     `json:"password" validate:"required,min=8"`
}

/// UpdateInternRequest selectively overwrites fields: nil means "leave as is"
// (PATCH-by-convention).
type UpdateInternRequest struct {
	FirstName      *string    `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName       *string    `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address        *string    `json:"address,omitempty" validate:"omitempty,max=500"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	University     *string    `json:"university,omitempty" validate:"omitempty,max=200"`
	Degree         *string    `json:"degree,omitempty" validate:"omitempty,max=100"`
	GraduationYear *int       `json:"graduationYear,omitempty" validate:"omitempty,min=1950,max=2100"`
	Department     *string    `json:"department,omitempty" validate:"omitempty,max=100"`
	MentorName     *string    `json:"mentorName,omitempty" validate:"omitempty,max=200"`
	Skills         *[]string  `json:"skills,omitempty"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE ON_LEAVE COMPLETED TERMINATED"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}

// InternListFilter carries list query parameters
type InternListFilter struct {
	Search     string // substring match on name or email
	Department string
	Status     string
	SortBy     string
	SortOrder  string
}

// InternResponse is the transport shape of an intern
type InternResponse struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	EnrollmentNumber string     `json:"enrollmentNumber"`
	University       string     `json:"university"`
	Degree           string     `json:"degree"`
	Department       string     `json:"department"`
	MentorName       string     `json:"mentorName,omitempty"`
	Skills           []string   `json:"skills"`
	Status           string     `json:"status"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	ProfileImageURL  *string    `json:"profileImageUrl,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FromIntern converts a model to its response shape
func FromIntern(intern *models.Intern) InternResponse {
	if intern == nil {
		return InternResponse{}
	}
	return InternResponse{
		ID:               intern.ID.String(),
		FirstName:        intern.FirstName,
		LastName:         intern.LastName,
		Email:            intern.Email,
		Phone:            intern.Phone,
		EnrollmentNumber: intern.EnrollmentNumber,
		University:       intern.University,
		Degree:           intern.Degree,
		Department:       intern.Department,
		MentorName:       intern.MentorName,
		Skills:           intern.Skills,
		Status:           string(intern.Status),
		StartDate:        intern.StartDate,
		EndDate:          intern.EndDate,
		ProfileImageURL:  intern.ProfileImageURL,
		CreatedAt:        intern.CreatedAt,
	}
}
