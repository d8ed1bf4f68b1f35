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

// AttendanceRepository handles database operations for attendance records.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a clock-in record. The unique index on (intern_id, date)
// turns a second clock-in on the same day into ErrAlreadyClockedIn.
func (r *AttendanceRepository) Create(ctx context.Context, att *models.Attendance) error {
	query := `
		INSERT INTO attendance (id, intern_id, date, clock_in, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	if att.ID == uuid.Nil {
		att.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query,
		att.ID, att.InternID, att.Date, att.ClockIn, att.Status, att.Notes,
	).Scan(&att.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyClockedIn
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

// GetByID retrieves an attendance record by id.
func (r *AttendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Attendance, error) {
	query := `SELECT id, intern_id, date, clock_in, clock_out, status, notes, created_at
		FROM attendance WHERE id = $1`

	var att models.Attendance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.InternID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.Status, &att.Notes, &att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &att, nil
}

// GetForDay returns the attendance row for an intern on a calendar day.
func (r *AttendanceRepository) GetForDay(ctx context.Context, internID uuid.UUID, day time.Time) (*models.Attendance, error) {
	query := `SELECT id, intern_id, date, clock_in, clock_out, status, notes, created_at
		FROM attendance WHERE intern_id = $1 AND date = $2`

	var att models.Attendance
	err := r.db.QueryRow(ctx, query, internID, day).Scan(
		&att.ID, &att.InternID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.Status, &att.Notes, &att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance for day: %w", err)
	}
	return &att, nil
}

// SetClockOut stamps the clock-out time on an open attendance record.
func (r *AttendanceRepository) SetClockOut(ctx context.Context, id uuid.UUID, clockOut time.Time, notes string) error {
	query := `
		UPDATE attendance
		SET clock_out = $2, notes = CASE WHEN $3 != '' THEN $3 ELSE notes END
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, clockOut, notes)
	if err != nil {
		return fmt.Errorf("failed to set clock out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

func mapAttendanceSortField(field string) string {
	switch strings.ToLower(field) {
	case "date":
		return "a.date"
	case "clockin", "clock_in":
		return "a.clock_in"
	case "status":
		return "a.status"
	default:
		return "a.date"
	}
}

// List returns attendance rows matching the filter with intern names.
func (r *AttendanceRepository) List(ctx context.Context, filter *dto.AttendanceListFilter, page, pageSize int) ([]*models.Attendance, int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.InternID != nil {
			b = b.Where(sq.Eq{"a.intern_id": *filter.InternID})
		}
		if filter.Status != "" {
			b = b.Where(sq.Eq{"a.status": filter.Status})
		}
		if filter.From != nil {
			b = b.Where(sq.GtOrEq{"a.date": *filter.From})
		}
		if filter.To != nil {
			b = b.Where(sq.LtOrEq{"a.date": *filter.To})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("attendance a")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build attendance count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query, args, err := applyFilter(psql.
		Select("a.id", "a.intern_id", "a.date", "a.clock_in", "a.clock_out",
			"a.status", "a.notes", "a.created_at",
			"COALESCE(i.first_name || ' ' || i.last_name, '')").
		From("attendance a").
		LeftJoin("interns i ON i.id = a.intern_id")).
		OrderBy(mapAttendanceSortField(filter.SortBy) + " " + direction).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build attendance list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var att models.Attendance
		err := rows.Scan(&att.ID, &att.InternID, &att.Date, &att.ClockIn, &att.ClockOut,
			&att.Status, &att.Notes, &att.CreatedAt, &att.InternName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, &att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read attendance: %w", err)
	}
	return records, total, nil
}

// GetRange returns all attendance rows inside [from, to] for exports.
func (r *AttendanceRepository) GetRange(ctx context.Context, from, to time.Time) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.intern_id, a.date, a.clock_in, a.clock_out, a.status, a.notes, a.created_at,
			COALESCE(i.first_name || ' ' || i.last_name, '')
		FROM attendance a
		LEFT JOIN interns i ON i.id = a.intern_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date, a.clock_in`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var att models.Attendance
		err := rows.Scan(&att.ID, &att.InternID, &att.Date, &att.ClockIn, &att.ClockOut,
			&att.Status, &att.Notes, &att.CreatedAt, &att.InternName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, &att)
	}
	return records, rows.Err()
}

// CountByStatusSince returns per-status counts for records on or after the day.
func (r *AttendanceRepository) CountByStatusSince(ctx context.Context, since time.Time) (map[models.AttendanceStatus]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM attendance WHERE date >= $1 GROUP BY status`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AttendanceStatus]int64)
	for rows.Next() {
		var status models.AttendanceStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountByStatusBetween returns per-status counts for records with
// from <= date < to.
func (r *AttendanceRepository) CountByStatusBetween(ctx context.Context, from, to time.Time) (map[models.AttendanceStatus]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM attendance WHERE date >= $1 AND date < $2 GROUP BY status`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AttendanceStatus]int64)
	for rows.Next() {
		var status models.AttendanceStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountPresentOn returns the number of interns with a record on the day.
func (r *AttendanceRepository) CountPresentOn(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM attendance WHERE date = $1 AND status != $2`
	if err := r.db.QueryRow(ctx, query, day, models.AttendanceAbsent).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance for day: %w", err)
	}
	return count, nil
}
