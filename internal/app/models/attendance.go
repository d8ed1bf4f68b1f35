package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one clock-in event per intern per day. InternID is a plain
// reference, not an enforced relation, matching the original schema.
type Attendance struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	InternID  uuid.UUID        `json:"internId" db:"intern_id"`
	Date      time.Time        `json:"date" db:"date"`
	ClockIn   time.Time        `json:"clockIn" db:"clock_in"`
	ClockOut  *time.Time       `json:"clockOut,omitempty" db:"clock_out"`
	Status    AttendanceStatus `json:"status" db:"status"`
	Notes     string           `json:"notes" db:"notes"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`

	InternName string `json:"internName,omitempty"`
}
