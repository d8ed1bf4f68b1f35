package models

import (
	"time"

	"github.com/google/uuid"
)

// Intern defines an applicant-turned-employee based on the 'interns' table
type Intern struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	FirstName        string           `json:"firstName" db:"first_name"`
	LastName         string           `json:"lastName" db:"last_name"`
	Email            string           `json:"email" db:"email"`
	Password         string           `json:"-" db:"password"`
	Phone            string           `json:"phone" db:"phone"`
	Address          string           `json:"address" db:"address"`
	DateOfBirth      *time.Time       `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	EnrollmentNumber string           `json:"enrollmentNumber" db:"enrollment_number"`
	University       string           `json:"university" db:"university"`
	Degree           string           `json:"degree" db:"degree"`
	GraduationYear   *int             `json:"graduationYear,omitempty" db:"graduation_year"`
	Department       string           `json:"department" db:"department"`
	Skills           StringList       `json:"skills" db:"skills"`
	Status           InternshipStatus `json:"status" db:"status"`
	StartDate        *time.Time       `json:"startDate,omitempty" db:"start_date"`
	EndDate          *time.Time       `json:"endDate,omitempty" db:"end_date"`
	MentorName       string           `json:"mentorName" db:"mentor_name"`
	ProfileImageURL  *string          `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	ResumeURL        *string          `json:"resumeUrl,omitempty" db:"resume_url"`
	// Security question fallback: exactly three question/answer pairs,
	// answers individually hashed. Empty until the intern sets them.
	SecurityQuestion1 *uuid.UUID `json:"-" db:"security_question1"`
	SecurityAnswer1   *string    `json:"-" db:"security_answer1"`
	SecurityQuestion2 *uuid.UUID `json:"-" db:"security_question2"`
	SecurityAnswer2   *string    `json:"-" db:"security_answer2"`
	SecurityQuestion3 *uuid.UUID `json:"-" db:"security_question3"`
	SecurityAnswer3   *string    `json:"-" db:"security_answer3"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// HasSecurityQuestions reports whether all three pairs are set.
func (i *Intern) HasSecurityQuestions() bool {
	return i.SecurityQuestion1 != nil && i.SecurityAnswer1 != nil &&
		i.SecurityQuestion2 != nil && i.SecurityAnswer2 != nil &&
		i.SecurityQuestion3 != nil && i.SecurityAnswer3 != nil
}
