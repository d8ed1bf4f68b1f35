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

// InternRepository handles database operations for intern records.
type InternRepository struct {
	db *pgxpool.Pool
}

// NewInternRepository creates a new InternRepository.
func NewInternRepository(db *pgxpool.Pool) *InternRepository {
	return &InternRepository{db: db}
}

const internColumns = `id, first_name, last_name, email, password, phone, address, date_of_birth,
		university, degree, graduation_year, enrollment_number, department, skills,
		status, start_date, end_date, mentor_name, profile_image_url, resume_url,
		security_question1, security_answer1, security_question2, security_answer2,
		security_question3, security_answer3, created_at, updated_at`

func scanIntern(row pgx.Row) (*models.Intern, error) {
	var intern models.Intern
	err := row.Scan(
		&intern.ID, &intern.FirstName, &intern.LastName, &intern.Email, &intern.Password,
		&intern.Phone, &intern.Address, &intern.DateOfBirth, &intern.University, &intern.Degree,
		&intern.GraduationYear, &intern.EnrollmentNumber, &intern.Department, &intern.Skills,
		&intern.Status, &intern.StartDate, &intern.EndDate, &intern.MentorName,
		&intern.ProfileImageURL, &intern.ResumeURL,
		&intern.SecurityQuestion1, &intern.SecurityAnswer1,
		&intern.SecurityQuestion2, &intern.SecurityAnswer2,
		&intern.SecurityQuestion3, &intern.SecurityAnswer3,
		&intern.CreatedAt, &intern.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &intern, nil
}

// Create inserts a new intern record.
func (r *InternRepository) Create(ctx context.Context, intern *models.Intern) error {
	query := `
		INSERT INTO interns (id, first_name, last_name, email, password, phone, address,
			date_of_birth, university, degree, graduation_year, enrollment_number, department,
			skills, status, start_date, end_date, mentor_name, profile_image_url, resume_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at, updated_at`

	if intern.ID == uuid.Nil {
		intern.ID = uuid.New()
	}
	if intern.Status == "" {
		intern.Status = models.InternshipActive
	}

	err := r.db.QueryRow(ctx, query,
		intern.ID, intern.FirstName, intern.LastName, intern.Email, intern.Password,
		intern.Phone, intern.Address, intern.DateOfBirth, intern.University, intern.Degree,
		intern.GraduationYear, intern.EnrollmentNumber, intern.Department, intern.Skills,
		intern.Status, intern.StartDate, intern.EndDate, intern.MentorName,
		intern.ProfileImageURL, intern.ResumeURL,
	).Scan(&intern.CreatedAt, &intern.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create intern: %w", err)
	}
	return nil
}

// GetByID retrieves an intern by its identifier.
func (r *InternRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Intern, error) {
	query := `SELECT ` + internColumns + ` FROM interns WHERE id = $1`

	intern, err := scanIntern(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternNotFound
		}
		return nil, fmt.Errorf("failed to get intern: %w", err)
	}
	return intern, nil
}

// GetByEmail retrieves an intern by email address.
func (r *InternRepository) GetByEmail(ctx context.Context, email string) (*models.Intern, error) {
	query := `SELECT ` + internColumns + ` FROM interns WHERE LOWER(email) = LOWER($1)`

	intern, err := scanIntern(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternNotFound
		}
		return nil, fmt.Errorf("failed to get intern by email: %w", err)
	}
	return intern, nil
}

// EmailExists reports whether an intern with the given email already exists.
func (r *InternRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM interns WHERE LOWER(email) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check intern email: %w", err)
	}
	return exists, nil
}

// EnrollmentExists reports whether an intern with the given enrollment number exists.
func (r *InternRepository) EnrollmentExists(ctx context.Context, enrollmentNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM interns WHERE enrollment_number = $1)`
	if err := r.db.QueryRow(ctx, query, enrollmentNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check enrollment number: %w", err)
	}
	return exists, nil
}

// Update persists changes to an existing intern record.
func (r *InternRepository) Update(ctx context.Context, intern *models.Intern) error {
	query := `
		UPDATE interns
		SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6,
			date_of_birth = $7, university = $8, degree = $9, graduation_year = $10,
			enrollment_number = $11, department = $12, skills = $13, status = $14,
			start_date = $15, end_date = $16, mentor_name = $17, profile_image_url = $18,
			resume_url = $19, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		intern.ID, intern.FirstName, intern.LastName, intern.Email, intern.Phone,
		intern.Address, intern.DateOfBirth, intern.University, intern.Degree,
		intern.GraduationYear, intern.EnrollmentNumber, intern.Department, intern.Skills,
		intern.Status, intern.StartDate, intern.EndDate, intern.MentorName,
		intern.ProfileImageURL, intern.ResumeURL,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update intern: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}
	return nil
}

// UpdateSecurityQuestions stores the hashed security answers for an intern.
func (r *InternRepository) UpdateSecurityQuestions(ctx context.Context, id uuid.UUID, questions [3]uuid.UUID, hashedAnswers [3]string) error {
	query := `
		UPDATE interns
		SET security_question1 = $2, security_answer1 = $3,
			security_question2 = $4, security_answer2 = $5,
			security_question3 = $6, security_answer3 = $7,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id,
		questions[0], hashedAnswers[0],
		questions[1], hashedAnswers[1],
		questions[2], hashedAnswers[2],
	)
	if err != nil {
		return fmt.Errorf("failed to update security questions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}
	return nil
}

// Delete removes an intern record.
func (r *InternRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM interns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete intern: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}
	return nil
}

// mapSortFieldToColumn translates an API sort field to a database column.
// Unknown fields fall back to created_at so arbitrary input never reaches SQL.
func mapInternSortField(field string) string {
	switch strings.ToLower(field) {
	case "firstname", "first_name":
		return "first_name"
	case "lastname", "last_name":
		return "last_name"
	case "email":
		return "email"
	case "department":
		return "department"
	case "status":
		return "status"
	case "startdate", "start_date":
		return "start_date"
	default:
		return "created_at"
	}
}

// List returns interns matching the filter with pagination metadata.
func (r *InternRepository) List(ctx context.Context, filter *dto.InternListFilter, page, pageSize int) ([]*models.Intern, int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select(internColumns).From("interns")
	countBase := psql.Select("COUNT(*)").From("interns")

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"first_name": pattern},
				sq.ILike{"last_name": pattern},
				sq.ILike{"email": pattern},
				sq.ILike{"enrollment_number": pattern},
			})
		}
		if filter.Department != "" {
			b = b.Where(sq.Eq{"department": filter.Department})
		}
		if filter.Status != "" {
			b = b.Where(sq.Eq{"status": filter.Status})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(countBase).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build intern count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count interns: %w", err)
	}

	sortColumn := mapInternSortField(filter.SortBy)
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query, args, err := applyFilter(base).
		OrderBy(sortColumn + " " + direction).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build intern list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list interns: %w", err)
	}
	defer rows.Close()

	var interns []*models.Intern
	for rows.Next() {
		intern, err := scanIntern(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan intern: %w", err)
		}
		interns = append(interns, intern)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read interns: %w", err)
	}
	return interns, total, nil
}

// GetAll returns every intern ordered by name, used for exports.
func (r *InternRepository) GetAll(ctx context.Context) ([]*models.Intern, error) {
	query := `SELECT ` + internColumns + ` FROM interns ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all interns: %w", err)
	}
	defer rows.Close()

	var interns []*models.Intern
	for rows.Next() {
		intern, err := scanIntern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intern: %w", err)
		}
		interns = append(interns, intern)
	}
	return interns, rows.Err()
}

// CountByStatus returns the number of interns per internship status.
func (r *InternRepository) CountByStatus(ctx context.Context) (map[models.InternshipStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM interns GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count interns by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.InternshipStatus]int64)
	for rows.Next() {
		var status models.InternshipStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountByDepartment returns the number of interns per department.
func (r *InternRepository) CountByDepartment(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT department, COUNT(*) FROM interns GROUP BY department`)
	if err != nil {
		return nil, fmt.Errorf("failed to count interns by department: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var department string
		var count int64
		if err := rows.Scan(&department, &count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts[department] = count
	}
	return counts, rows.Err()
}

// CountCreatedBetween returns interns created inside the half-open interval [from, to).
func (r *InternRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM interns WHERE created_at >= $1 AND created_at < $2`
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count interns in range: %w", err)
	}
	return count, nil
}
