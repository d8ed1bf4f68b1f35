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

// InterviewRepository handles database operations for scheduled interviews.
type InterviewRepository struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new InterviewRepository.
func NewInterviewRepository(db *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{db: db}
}

// Create records a scheduled interview.
func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	query := `
		INSERT INTO interviews (id, application_id, scheduled_at, meeting_link, interviewer, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query,
		interview.ID, interview.ApplicationID, interview.ScheduledAt,
		interview.MeetingLink, interview.Interviewer, interview.Notes,
	).Scan(&interview.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// GetByID retrieves an interview by id.
func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	query := `SELECT id, application_id, scheduled_at, meeting_link, interviewer, notes, created_at, completed_at
		FROM interviews WHERE id = $1`

	var iv models.Interview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.MeetingLink,
		&iv.Interviewer, &iv.Notes, &iv.CreatedAt, &iv.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return &iv, nil
}

// ListByApplication returns the interviews scheduled for an application.
func (r *InterviewRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error) {
	query := `SELECT id, application_id, scheduled_at, meeting_link, interviewer, notes, created_at, completed_at
		FROM interviews WHERE application_id = $1 ORDER BY scheduled_at`

	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []*models.Interview
	for rows.Next() {
		var iv models.Interview
		err := rows.Scan(&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.MeetingLink,
			&iv.Interviewer, &iv.Notes, &iv.CreatedAt, &iv.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, &iv)
	}
	return interviews, rows.Err()
}

// MarkCompleted stamps an interview as done and stores the notes.
func (r *InterviewRepository) MarkCompleted(ctx context.Context, id uuid.UUID, notes string) error {
	query := `UPDATE interviews SET completed_at = NOW(), notes = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, notes)
	if err != nil {
		return fmt.Errorf("failed to complete interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
