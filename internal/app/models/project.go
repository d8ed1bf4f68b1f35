package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a container of work with its own lifecycle and budget
type Project struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	Priority    Priority      `json:"priority" db:"priority"`
	Progress    int           `json:"progress" db:"progress"` // clamped to [0,100]
	Budget      float64       `json:"budget" db:"budget"`
	StartDate   *time.Time    `json:"startDate,omitempty" db:"start_date"`
	EndDate     *time.Time    `json:"endDate,omitempty" db:"end_date"`
	Tags        StringList    `json:"tags" db:"tags"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	Members []*ProjectIntern `json:"members,omitempty"`
}

// ProjectIntern is the project↔intern join row; it carries only the
// assignment date.
type ProjectIntern struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProjectID    uuid.UUID `json:"projectId" db:"project_id"`
	InternID     uuid.UUID `json:"internId" db:"intern_id"`
	AssignedDate time.Time `json:"assignedDate" db:"assigned_date"`

	InternName string `json:"internName,omitempty"`
}

// ClampProgress keeps progress within [0,100].
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
