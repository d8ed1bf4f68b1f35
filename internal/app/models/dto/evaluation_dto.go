package dto

import "github.com/google/uuid"

// CreateEvaluationRequest records a performance review
type CreateEvaluationRequest struct {
	InternID         uuid.UUID `json:"internId" validate:"required"`
	Evaluator        string    `json:"evaluator" validate:"required,max=200"`
	Period           string    `json:"period" validate:"required,max=50"`
	TechnicalScore   int       `json:"technicalScore" validate:"required,min=1,max=5"`
	TeamworkScore    int       `json:"teamworkScore" validate:"required,min=1,max=5"`
	PunctualityScore int       `json:"punctualityScore" validate:"required,min=1,max=5"`
	Comments         string    `json:"comments" validate:"omitempty,max=5000"`
}

// UpdateEvaluationRequest selectively overwrites evaluation fields
type UpdateEvaluationRequest struct {
	Evaluator        *string `json:"evaluator,omitempty" validate:"omitempty,max=200"`
	Period           *string `json:"period,omitempty" validate:"omitempty,max=50"`
	TechnicalScore   *int    `json:"technicalScore,omitempty" validate:"omitempty,min=1,max=5"`
	TeamworkScore    *int    `json:"teamworkScore,omitempty" validate:"omitempty,min=1,max=5"`
	PunctualityScore *int    `json:"punctualityScore,omitempty" validate:"omitempty,min=1,max=5"`
	Comments         *string `json:"comments,omitempty" validate:"omitempty,max=5000"`
}
