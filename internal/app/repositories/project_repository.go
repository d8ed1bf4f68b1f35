package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// ProjectRepository handles database operations for projects and memberships.
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, description, status, priority, progress, budget,
		start_date, end_date, tags, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID, &project.Name, &project.Description, &project.Status,
		&project.Priority, &project.Progress, &project.Budget,
		&project.StartDate, &project.EndDate, &project.Tags,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, description, status, priority, progress, budget,
			start_date, end_date, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Status == "" {
		project.Status = models.ProjectPlanning
	}
	if project.Priority == "" {
		project.Priority = models.PriorityMedium
	}
	project.Progress = models.ClampProgress(project.Progress)

	err := r.db.QueryRow(ctx, query,
		project.ID, project.Name, project.Description, project.Status, project.Priority,
		project.Progress, project.Budget, project.StartDate, project.EndDate, project.Tags,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by id without its members.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// Update persists changes to an existing project.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, priority = $5, progress = $6,
			budget = $7, start_date = $8, end_date = $9, tags = $10, updated_at = NOW()
		WHERE id = $1`

	project.Progress = models.ClampProgress(project.Progress)

	tag, err := r.db.Exec(ctx, query,
		project.ID, project.Name, project.Description, project.Status, project.Priority,
		project.Progress, project.Budget, project.StartDate, project.EndDate, project.Tags,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project together with its membership rows.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete project: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM project_interns WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project members: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return tx.Commit(ctx)
}

func mapProjectSortField(field string) string {
	switch strings.ToLower(field) {
	case "name":
		return "name"
	case "status":
		return "status"
	case "priority":
		return "priority"
	case "progress":
		return "progress"
	case "startdate", "start_date":
		return "start_date"
	default:
		return "created_at"
	}
}

// List returns projects matching the filter with a total count.
func (r *ProjectRepository) List(ctx context.Context, filter *dto.ProjectListFilter, page, pageSize int) ([]*models.Project, int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"name": pattern},
				sq.ILike{"description": pattern},
			})
		}
		if filter.Status != "" {
			b = b.Where(sq.Eq{"status": filter.Status})
		}
		if filter.Priority != "" {
			b = b.Where(sq.Eq{"priority": filter.Priority})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("projects")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build project count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query, args, err := applyFilter(psql.Select(projectColumns).From("projects")).
		OrderBy(mapProjectSortField(filter.SortBy) + " " + direction).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build project list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read projects: %w", err)
	}
	return projects, total, nil
}

// AddMember links an intern to a project.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, internID uuid.UUID) (*models.ProjectIntern, error) {
	query := `
		INSERT INTO project_interns (id, project_id, intern_id, assigned_date)
		VALUES ($1, $2, $3, NOW())
		RETURNING assigned_date`

	member := &models.ProjectIntern{
		ID:        uuid.New(),
		ProjectID: projectID,
		InternID:  internID,
	}

	err := r.db.QueryRow(ctx, query, member.ID, projectID, internID).Scan(&member.AssignedDate)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to add project member: %w", err)
	}
	return member, nil
}

// RemoveMember unlinks an intern from a project.
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, internID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM project_interns WHERE project_id = $1 AND intern_id = $2`, projectID, internID)
	if err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// GetMembers returns membership rows for a project with intern names.
func (r *ProjectRepository) GetMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectIntern, error) {
	query := `
		SELECT pi.id, pi.project_id, pi.intern_id, pi.assigned_date,
			COALESCE(i.first_name || ' ' || i.last_name, '')
		FROM project_interns pi
		LEFT JOIN interns i ON i.id = pi.intern_id
		WHERE pi.project_id = $1
		ORDER BY pi.assigned_date`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}
	defer rows.Close()

	var members []*models.ProjectIntern
	for rows.Next() {
		var m models.ProjectIntern
		err := rows.Scan(&m.ID, &m.ProjectID, &m.InternID, &m.AssignedDate, &m.InternName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// CountByStatus returns the number of projects per status.
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[models.ProjectStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ProjectStatus]int64)
	for rows.Next() {
		var status models.ProjectStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan project status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
