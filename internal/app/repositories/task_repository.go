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

// TaskRepository handles database operations for tasks and assignments.
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, due_date, tags, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &task.Tags, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	err := r.db.QueryRow(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.Tags,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by id without its assignments.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update persists changes to an existing task.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
			due_date = $6, tags = $7, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.Tags,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task together with its assignment rows. The join table
// has no cascading constraint, so the cleanup is explicit.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete task: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM intern_tasks WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task assignments: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}
	return tx.Commit(ctx)
}

func mapTaskSortField(field string) string {
	switch strings.ToLower(field) {
	case "title":
		return "title"
	case "status":
		return "status"
	case "priority":
		return "priority"
	case "duedate", "due_date":
		return "due_date"
	default:
		return "created_at"
	}
}

// List returns tasks matching the filter. When the filter names an intern,
// only tasks assigned to that intern are returned.
func (r *TaskRepository) List(ctx context.Context, filter *dto.TaskListFilter, page, pageSize int) ([]*models.Task, int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"t.title": pattern},
				sq.ILike{"t.description": pattern},
			})
		}
		if filter.Status != "" {
			b = b.Where(sq.Eq{"t.status": filter.Status})
		}
		if filter.Priority != "" {
			b = b.Where(sq.Eq{"t.priority": filter.Priority})
		}
		if filter.InternID != nil {
			b = b.Join("intern_tasks it ON it.task_id = t.id").
				Where(sq.Eq{"it.intern_id": *filter.InternID})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("tasks t")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build task count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	cols := make([]string, 0, 9)
	for _, c := range strings.Split(taskColumns, ",") {
		cols = append(cols, "t."+strings.TrimSpace(c))
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query, args, err := applyFilter(psql.Select(cols...).From("tasks t")).
		OrderBy("t." + mapTaskSortField(filter.SortBy) + " " + direction).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build task list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, total, nil
}

// Assign links an intern to a task.
func (r *TaskRepository) Assign(ctx context.Context, internID, taskID uuid.UUID) (*models.InternTask, error) {
	query := `
		INSERT INTO intern_tasks (id, intern_id, task_id, assigned_date, assignment_status)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING assigned_date`

	assignment := &models.InternTask{
		ID:               uuid.New(),
		InternID:         internID,
		TaskID:           taskID,
		AssignmentStatus: models.AssignmentAssigned,
	}

	err := r.db.QueryRow(ctx, query,
		assignment.ID, internID, taskID, assignment.AssignmentStatus,
	).Scan(&assignment.AssignedDate)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}
	return assignment, nil
}

// Unassign removes the link between an intern and a task.
func (r *TaskRepository) Unassign(ctx context.Context, internID, taskID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM intern_tasks WHERE intern_id = $1 AND task_id = $2`, internID, taskID)
	if err != nil {
		return fmt.Errorf("failed to unassign task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// UpdateAssignmentStatus moves an assignment through its lifecycle.
func (r *TaskRepository) UpdateAssignmentStatus(ctx context.Context, internID, taskID uuid.UUID, status models.AssignmentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE intern_tasks SET assignment_status = $3 WHERE intern_id = $1 AND task_id = $2`,
		internID, taskID, status)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// GetAssignments returns the assignment rows for a task with intern names.
func (r *TaskRepository) GetAssignments(ctx context.Context, taskID uuid.UUID) ([]*models.InternTask, error) {
	query := `
		SELECT it.id, it.intern_id, it.task_id, it.assigned_date, it.assignment_status,
			COALESCE(i.first_name || ' ' || i.last_name, '')
		FROM intern_tasks it
		LEFT JOIN interns i ON i.id = it.intern_id
		WHERE it.task_id = $1
		ORDER BY it.assigned_date`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.InternTask
	for rows.Next() {
		var a models.InternTask
		err := rows.Scan(&a.ID, &a.InternID, &a.TaskID, &a.AssignedDate,
			&a.AssignmentStatus, &a.InternName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

// CountByStatus returns the number of tasks per status.
func (r *TaskRepository) CountByStatus(ctx context.Context) (map[models.TaskStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.TaskStatus]int64)
	for rows.Next() {
		var status models.TaskStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan task status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountOverdue returns tasks past their due date and not yet completed.
func (r *TaskRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM tasks WHERE due_date < $1 AND status != $2`
	if err := r.db.QueryRow(ctx, query, now, models.TaskCompleted).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	return count, nil
}
