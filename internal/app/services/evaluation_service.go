package services

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/csvutil"
)

type evaluationStore interface {
	Create(ctx context.Context, eval *models.Evaluation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Evaluation, error)
	Update(ctx context.Context, eval *models.Evaluation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, internID *uuid.UUID, page, pageSize int) ([]*models.Evaluation, int64, error)
	GetAll(ctx context.Context) ([]*models.Evaluation, error)
}

// EvaluationService implements periodic performance reviews.
type EvaluationService struct {
	evaluations evaluationStore
	interns     internChecker
	logger      zerolog.Logger
}

// NewEvaluationService creates a new EvaluationService.
func NewEvaluationService(evaluations evaluationStore, interns internChecker, logger zerolog.Logger) *EvaluationService {
	return &EvaluationService{evaluations: evaluations, interns: interns, logger: logger}
}

// overallRating is the mean of the three category scores.
func overallRating(technical, teamwork, punctuality int) float64 {
	return float64(technical+teamwork+punctuality) / 3.0
}

// Create records a review. OverallRating is derived, never client supplied.
func (s *EvaluationService) Create(ctx context.Context, req *dto.CreateEvaluationRequest) (*models.Evaluation, error) {
	if _, err := s.interns.GetByID(ctx, req.InternID); err != nil {
		return nil, err
	}

	eval := &models.Evaluation{
		InternID:         req.InternID,
		Evaluator:        req.Evaluator,
		Period:           req.Period,
		TechnicalScore:   req.TechnicalScore,
		TeamworkScore:    req.TeamworkScore,
		PunctualityScore: req.PunctualityScore,
		OverallRating:    overallRating(req.TechnicalScore, req.TeamworkScore, req.PunctualityScore),
		Comments:         req.Comments,
	}
	if err := s.evaluations.Create(ctx, eval); err != nil {
		return nil, err
	}
	return eval, nil
}

// GetByID returns one evaluation.
func (s *EvaluationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	return s.evaluations.GetByID(ctx, id)
}

// List returns evaluations, optionally for a single intern.
func (s *EvaluationService) List(ctx context.Context, internID *uuid.UUID, page, pageSize int) ([]*models.Evaluation, int64, error) {
	return s.evaluations.List(ctx, internID, page, pageSize)
}

// Update applies a partial update and rederives the overall rating.
func (s *EvaluationService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEvaluationRequest) (*models.Evaluation, error) {
	eval, err := s.evaluations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Evaluator != nil {
		eval.Evaluator = *req.Evaluator
	}
	if req.Period != nil {
		eval.Period = *req.Period
	}
	if req.TechnicalScore != nil {
		eval.TechnicalScore = *req.TechnicalScore
	}
	if req.TeamworkScore != nil {
		eval.TeamworkScore = *req.TeamworkScore
	}
	if req.PunctualityScore != nil {
		eval.PunctualityScore = *req.PunctualityScore
	}
	if req.Comments != nil {
		eval.Comments = *req.Comments
	}
	eval.OverallRating = overallRating(eval.TechnicalScore, eval.TeamworkScore, eval.PunctualityScore)

	if err := s.evaluations.Update(ctx, eval); err != nil {
		return nil, err
	}
	return eval, nil
}

// Delete removes an evaluation.
func (s *EvaluationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.evaluations.Delete(ctx, id)
}

// ExportCSV renders every evaluation as a CSV document.
func (s *EvaluationService) ExportCSV(ctx context.Context) ([]byte, error) {
	evals, err := s.evaluations.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	header := []string{"Intern", "Evaluator", "Period", "Technical", "Teamwork", "Punctuality", "Overall", "Comments"}
	rows := make([][]string, 0, len(evals))
	for _, eval := range evals {
		rows = append(rows, []string{
			eval.InternName,
			eval.Evaluator,
			eval.Period,
			strconv.Itoa(eval.TechnicalScore),
			strconv.Itoa(eval.TeamworkScore),
			strconv.Itoa(eval.PunctualityScore),
			formatRating(eval.OverallRating),
			eval.Comments,
		})
	}
	return csvutil.Write(header, rows)
}
