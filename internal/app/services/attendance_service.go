package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/csvutil"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

type attendanceStore interface {
	Create(ctx context.Context, att *models.Attendance) error
	GetForDay(ctx context.Context, internID uuid.UUID, day time.Time) (*models.Attendance, error)
	SetClockOut(ctx context.Context, id uuid.UUID, clockOut time.Time, notes string) error
	List(ctx context.Context, filter *dto.AttendanceListFilter, page, pageSize int) ([]*models.Attendance, int64, error)
	GetRange(ctx context.Context, from, to time.Time) ([]*models.Attendance, error)
}

type internChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Intern, error)
}

// AttendanceService implements daily clock-in/out bookkeeping.
type AttendanceService struct {
	attendance attendanceStore
	interns    internChecker
	logger     zerolog.Logger

	// lateCutoff is the wall-clock time after which a clock-in counts as LATE.
	lateCutoffHour   int
	lateCutoffMinute int

	now func() time.Time
}

// NewAttendanceService creates a new AttendanceService. lateCutoff is in
// "HH:MM" form; a malformed value falls back to 09:30.
func NewAttendanceService(attendance attendanceStore, interns internChecker, lateCutoff string, logger zerolog.Logger) *AttendanceService {
	hour, minute := 9, 30
	if t, err := time.Parse("15:04", lateCutoff); err == nil {
		hour, minute = t.Hour(), t.Minute()
	} else if lateCutoff != "" {
		logger.Warn().Str("cutoff", lateCutoff).Msg("Invalid late cutoff, using 09:30")
	}
	return &AttendanceService{
		attendance:       attendance,
		interns:          interns,
		logger:           logger,
		lateCutoffHour:   hour,
		lateCutoffMinute: minute,
		now:              time.Now,
	}
}

// ClockIn records today's attendance. Status defaults to PRESENT, flipped
// to LATE when the clock-in lands after the cutoff. One record per intern
// per day.
func (s *AttendanceService) ClockIn(ctx context.Context, req *dto.ClockInRequest) (*models.Attendance, error) {
	if _, err := s.interns.GetByID(ctx, req.InternID); err != nil {
		return nil, err
	}

	now := s.now()
	day := helpers.StartOfDay(now)

	if _, err := s.attendance.GetForDay(ctx, req.InternID, day); err == nil {
		return nil, apperrors.ErrAlreadyClockedIn
	} else if !errors.Is(err, apperrors.ErrAttendanceNotFound) {
		return nil, err
	}

	status := models.AttendanceStatus(req.Status)
	if status == "" {
		status = models.AttendancePresent
	}
	if status == models.AttendancePresent && s.isLate(now) {
		status = models.AttendanceLate
	}

	att := &models.Attendance{
		InternID: req.InternID,
		Date:     day,
		ClockIn:  now,
		Status:   status,
		Notes:    req.Notes,
	}
	if err := s.attendance.Create(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

func (s *AttendanceService) isLate(t time.Time) bool {
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), s.lateCutoffHour, s.lateCutoffMinute, 0, 0, t.Location())
	return t.After(cutoff)
}

// ClockOut closes today's open record for the intern.
func (s *AttendanceService) ClockOut(ctx context.Context, req *dto.ClockOutRequest) (*models.Attendance, error) {
	now := s.now()
	day := helpers.StartOfDay(now)

	att, err := s.attendance.GetForDay(ctx, req.InternID, day)
	if err != nil {
		return nil, err
	}
	if att.ClockOut != nil {
		return nil, apperrors.NewConflictError("already clocked out today")
	}

	if err := s.attendance.SetClockOut(ctx, att.ID, now, ""); err != nil {
		return nil, err
	}
	att.ClockOut = &now
	return att, nil
}

// List returns attendance records matching the filter.
func (s *AttendanceService) List(ctx context.Context, filter *dto.AttendanceListFilter, page, pageSize int) ([]*models.Attendance, int64, error) {
	return s.attendance.List(ctx, filter, page, pageSize)
}

// ExportCSV renders attendance inside [from, to] as a CSV document.
func (s *AttendanceService) ExportCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	records, err := s.attendance.GetRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	header := []string{"Date", "Intern", "Clock In", "Clock Out", "Status", "Hours", "Notes"}
	rows := make([][]string, 0, len(records))
	for _, att := range records {
		clockOut := ""
		hours := ""
		if att.ClockOut != nil {
			clockOut = att.ClockOut.Format("15:04")
			hours = strconv.FormatFloat(att.ClockOut.Sub(att.ClockIn).Hours(), 'f', 2, 64)
		}
		rows = append(rows, []string{
			att.Date.Format("2006-01-02"),
			att.InternName,
			att.ClockIn.Format("15:04"),
			clockOut,
			string(att.Status),
			hours,
			att.Notes,
		})
	}
	return csvutil.Write(header, rows)
}
