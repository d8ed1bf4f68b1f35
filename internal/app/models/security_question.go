package models

import (
	"time"

	"github.com/google/uuid"
)

// SecurityQuestion is a catalog entry interns pick their three questions
// from. The hashed answers live on the intern row.
type SecurityQuestion struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
