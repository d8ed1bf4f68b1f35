package models

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation is a periodic performance review of an intern. Scores are 1-5;
// OverallRating is the mean of the three scores.
type Evaluation struct {
	ID               uuid.UUID `json:"id" db:"id"`
	InternID         uuid.UUID `json:"internId" db:"intern_id"`
	Evaluator        string    `json:"evaluator" db:"evaluator"`
	Period           string    `json:"period" db:"period"`
	TechnicalScore   int       `json:"technicalScore" db:"technical_score"`
	TeamworkScore    int       `json:"teamworkScore" db:"teamwork_score"`
	PunctualityScore int       `json:"punctualityScore" db:"punctuality_score"`
	OverallRating    float64   `json:"overallRating" db:"overall_rating"`
	Comments         string    `json:"comments" db:"comments"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	InternName string `json:"internName,omitempty"`
}
