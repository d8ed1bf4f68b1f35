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
)

// SecurityQuestionRepository handles the security question catalog.
type SecurityQuestionRepository struct {
	db *pgxpool.Pool
}

// NewSecurityQuestionRepository creates a new SecurityQuestionRepository.
func NewSecurityQuestionRepository(db *pgxpool.Pool) *SecurityQuestionRepository {
	return &SecurityQuestionRepository{db: db}
}

// Create adds a question to the catalog.
func (r *SecurityQuestionRepository) Create(ctx context.Context, question *models.SecurityQuestion) error {
	query := `INSERT INTO security_questions (id, question) VALUES ($1, $2) RETURNING created_at`

	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}

	if err := r.db.QueryRow(ctx, query, question.ID, question.Question).Scan(&question.CreatedAt); err != nil {
		return fmt.Errorf("failed to create security question: %w", err)
	}
	return nil
}

// GetByID retrieves a catalog question by id.
func (r *SecurityQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SecurityQuestion, error) {
	query := `SELECT id, question, created_at FROM security_questions WHERE id = $1`

	var q models.SecurityQuestion
	err := r.db.QueryRow(ctx, query, id).Scan(&q.ID, &q.Question, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get security question: %w", err)
	}
	return &q, nil
}

// List returns the full question catalog.
func (r *SecurityQuestionRepository) List(ctx context.Context) ([]*models.SecurityQuestion, error) {
	rows, err := r.db.Query(ctx, `SELECT id, question, created_at FROM security_questions ORDER BY question`)
	if err != nil {
		return nil, fmt.Errorf("failed to list security questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.SecurityQuestion
	for rows.Next() {
		var q models.SecurityQuestion
		if err := rows.Scan(&q.ID, &q.Question, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan security question: %w", err)
		}
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}

// Count returns the catalog size, used by seeding to avoid duplicates.
func (r *SecurityQuestionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM security_questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count security questions: %w", err)
	}
	return count, nil
}
