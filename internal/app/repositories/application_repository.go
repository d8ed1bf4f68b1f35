package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/dberrors"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// ApplicationRepository handles database operations for applications.
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, first_name, last_name, email, phone, enrollment_number,
		university, degree, department, skills, cover_letter, status, resume_url,
		profile_image_url, interview_date, interview_link, created_at, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID, &app.FirstName, &app.LastName, &app.Email, &app.Phone,
		&app.EnrollmentNumber, &app.University, &app.Degree, &app.Department,
		&app.Skills, &app.CoverLetter, &app.Status, &app.ResumeURL,
		&app.ProfileImageURL, &app.InterviewDate, &app.InterviewLink,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new application.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (id, first_name, last_name, email, phone, enrollment_number,
			university, degree, department, skills, cover_letter, status, resume_url, profile_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.Status == "" {
		app.Status = models.ApplicationSubmitted
	}

	err := r.db.QueryRow(ctx, query,
		app.ID, app.FirstName, app.LastName, app.Email, app.Phone, app.EnrollmentNumber,
		app.University, app.Degree, app.Department, app.Skills, app.CoverLetter,
		app.Status, app.ResumeURL, app.ProfileImageURL,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by id.
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// EmailHasActiveApplication reports whether an open (not rejected)
// application already exists for the email.
func (r *ApplicationRepository) EmailHasActiveApplication(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM applications WHERE LOWER(email) = LOWER($1) AND status != $2)`
	if err := r.db.QueryRow(ctx, query, email, models.ApplicationRejected).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check application email: %w", err)
	}
	return exists, nil
}

// UpdateStatus moves an application through the hiring workflow and
// records interview details when provided.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, interviewDate *time.Time, interviewLink *string) error {
	query := `
		UPDATE applications
		SET status = $2,
			interview_date = COALESCE($3, interview_date),
			interview_link = COALESCE($4, interview_link),
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, interviewDate, interviewLink)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Delete removes an application.
func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

func mapApplicationSortField(field string) string {
	switch strings.ToLower(field) {
	case "firstname", "first_name":
		return "first_name"
	case "lastname", "last_name":
		return "last_name"
	case "email":
		return "email"
	case "status":
		return "status"
	case "university":
		return "university"
	default:
		return "created_at"
	}
}

// List returns applications matching the filter with a total count.
func (r *ApplicationRepository) List(ctx context.Context, filter *dto.ApplicationListFilter, page, pageSize int) ([]*models.Application, int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"first_name": pattern},
				sq.ILike{"last_name": pattern},
				sq.ILike{"email": pattern},
			})
		}
		if filter.Status != "" {
			b = b.Where(sq.Eq{"status": filter.Status})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("applications")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build application count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query, args, err := applyFilter(psql.Select(applicationColumns).From("applications")).
		OrderBy(mapApplicationSortField(filter.SortBy) + " " + direction).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build application list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read applications: %w", err)
	}
	return apps, total, nil
}

// CountByStatus returns the number of applications per workflow status.
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int64)
	for rows.Next() {
		var status models.ApplicationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan application status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountCreatedBetween returns applications created inside [from, to).
func (r *ApplicationRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM applications WHERE created_at >= $1 AND created_at < $2`
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications in range: %w", err)
	}
	return count, nil
}
