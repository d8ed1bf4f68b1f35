package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work assignable to interns
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	Priority    Priority   `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Tags        StringList `json:"tags" db:"tags"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Relational field populated on detail reads
	Assignments []*InternTask `json:"assignments,omitempty"`
}

// InternTask is the intern↔task join row. It carries assignment-specific
// attributes beyond the plain association.
type InternTask struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	InternID         uuid.UUID        `json:"internId" db:"intern_id"`
	TaskID           uuid.UUID        `json:"taskId" db:"task_id"`
	AssignedDate     time.Time        `json:"assignedDate" db:"assigned_date"`
	AssignmentStatus AssignmentStatus `json:"assignmentStatus" db:"assignment_status"`

	InternName string `json:"internName,omitempty"`
}
