package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// EvaluationRepository handles database operations for evaluations.
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new EvaluationRepository.
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

const evaluationColumns = `e.id, e.intern_id, e.evaluator, e.period, e.technical_score,
		e.teamwork_score, e.punctuality_score, e.overall_rating, e.comments,
		e.created_at, e.updated_at`

// Create inserts a new evaluation.
func (r *EvaluationRepository) Create(ctx context.Context, eval *models.Evaluation) error {
	query := `
		INSERT INTO evaluations (id, intern_id, evaluator, period, technical_score,
			teamwork_score, punctuality_score, overall_rating, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	if eval.ID == uuid.Nil {
		eval.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query,
		eval.ID, eval.InternID, eval.Evaluator, eval.Period, eval.TechnicalScore,
		eval.TeamworkScore, eval.PunctualityScore, eval.OverallRating, eval.Comments,
	).Scan(&eval.CreatedAt, &eval.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

// GetByID retrieves an evaluation by id.
func (r *EvaluationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + `,
			COALESCE(i.first_name || ' ' || i.last_name, '')
		FROM evaluations e
		LEFT JOIN interns i ON i.id = e.intern_id
		WHERE e.id = $1`

	var eval models.Evaluation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&eval.ID, &eval.InternID, &eval.Evaluator, &eval.Period, &eval.TechnicalScore,
		&eval.TeamworkScore, &eval.PunctualityScore, &eval.OverallRating, &eval.Comments,
		&eval.CreatedAt, &eval.UpdatedAt, &eval.InternName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &eval, nil
}

// Update persists changes to an existing evaluation.
func (r *EvaluationRepository) Update(ctx context.Context, eval *models.Evaluation) error {
	query := `
		UPDATE evaluations
		SET evaluator = $2, period = $3, technical_score = $4, teamwork_score = $5,
			punctuality_score = $6, overall_rating = $7, comments = $8, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		eval.ID, eval.Evaluator, eval.Period, eval.TechnicalScore,
		eval.TeamworkScore, eval.PunctualityScore, eval.OverallRating, eval.Comments,
	)
	if err != nil {
		return fmt.Errorf("failed to update evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes an evaluation.
func (r *EvaluationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// List returns evaluations, optionally scoped to a single intern.
func (r *EvaluationRepository) List(ctx context.Context, internID *uuid.UUID, page, pageSize int) ([]*models.Evaluation, int64, error) {
	countQuery := `SELECT COUNT(*) FROM evaluations e`
	listQuery := `SELECT ` + evaluationColumns + `,
			COALESCE(i.first_name || ' ' || i.last_name, '')
		FROM evaluations e
		LEFT JOIN interns i ON i.id = e.intern_id`

	var countArgs, listArgs []any
	if internID != nil {
		countQuery += ` WHERE e.intern_id = $1`
		listQuery += ` WHERE e.intern_id = $1`
		countArgs = append(countArgs, *internID)
		listArgs = append(listArgs, *internID)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	listQuery += fmt.Sprintf(` ORDER BY e.created_at DESC OFFSET %d LIMIT %d`, offset, limit)

	rows, err := r.db.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*models.Evaluation
	for rows.Next() {
		var eval models.Evaluation
		err := rows.Scan(
			&eval.ID, &eval.InternID, &eval.Evaluator, &eval.Period, &eval.TechnicalScore,
			&eval.TeamworkScore, &eval.PunctualityScore, &eval.OverallRating, &eval.Comments,
			&eval.CreatedAt, &eval.UpdatedAt, &eval.InternName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evals = append(evals, &eval)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read evaluations: %w", err)
	}
	return evals, total, nil
}

// GetAll returns every evaluation with intern names, for exports.
func (r *EvaluationRepository) GetAll(ctx context.Context) ([]*models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + `,
			COALESCE(i.first_name || ' ' || i.last_name, '')
		FROM evaluations e
		LEFT JOIN interns i ON i.id = e.intern_id
		ORDER BY e.created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*models.Evaluation
	for rows.Next() {
		var eval models.Evaluation
		err := rows.Scan(
			&eval.ID, &eval.InternID, &eval.Evaluator, &eval.Period, &eval.TechnicalScore,
			&eval.TeamworkScore, &eval.PunctualityScore, &eval.OverallRating, &eval.Comments,
			&eval.CreatedAt, &eval.UpdatedAt, &eval.InternName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evals = append(evals, &eval)
	}
	return evals, rows.Err()
}

// AverageRating returns the mean overall rating across all evaluations.
func (r *EvaluationRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(overall_rating), 0) FROM evaluations`
	if err := r.db.QueryRow(ctx, query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}
