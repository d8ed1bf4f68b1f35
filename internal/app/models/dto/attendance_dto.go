package dto

import (
	"time"

	"github.com/google/uuid"
)

// ClockInRequest records today's attendance for an intern
type ClockInRequest struct {
	InternID uuid.UUID `json:"internId" validate:"required"`
	Status   string    `json:"status" validate:"omitempty,oneof=PRESENT ABSENT LATE"`
	Notes    string    `json:"notes" validate:"omitempty,max=500"`
}

// ClockOutRequest closes today's attendance record
type ClockOutRequest struct {
	InternID uuid.UUID `json:"internId" validate:"required"`
}

// AttendanceListFilter carries list query parameters
type AttendanceListFilter struct {
	InternID  *uuid.UUID
	Status    string
	From      *time.Time
	To        *time.Time
	SortBy    string
	SortOrder string
}
