package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest creates a task
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
}

// UpdateTaskRequest selectively overwrites task fields
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}

// AssignTaskRequest assigns a task to an intern
type AssignTaskRequest struct {
	InternID uuid.UUID `json:"internId" validate:"required"`
}

// UpdateAssignmentStatusRequest moves a task assignment along
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ASSIGNED IN_PROGRESS COMPLETED"`
}

// TaskListFilter carries list query parameters
type TaskListFilter struct {
	Search    string
	Status    string
	Priority  string
	InternID  *uuid.UUID
	SortBy    string
	SortOrder string
}
