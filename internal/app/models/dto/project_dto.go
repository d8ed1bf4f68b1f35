package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest creates a project
type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Budget      float64    `json:"budget" validate:"omitempty,min=0"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Tags        []string   `json:"tags"`
}

// UpdateProjectRequest selectively overwrites project fields. Progress
// outside [0,100] is clamped, not rejected.
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=PLANNING ACTIVE ON_HOLD COMPLETED"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Progress    *int       `json:"progress,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,min=0"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}

// AssignProjectRequest adds an intern to a project
type AssignProjectRequest struct {
	InternID uuid.UUID `json:"internId" validate:"required"`
}

// ProjectListFilter carries list query parameters
type ProjectListFilter struct {
	Search    string
	Status    string
	Priority  string
	SortBy    string
	SortOrder string
}
