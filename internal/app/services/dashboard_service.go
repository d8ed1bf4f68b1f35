package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

type internStats interface {
	CountByStatus(ctx context.Context) (map[models.InternshipStatus]int64, error)
	CountByDepartment(ctx context.Context) (map[string]int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type applicationStats interface {
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type taskStats interface {
	CountByStatus(ctx context.Context) (map[models.TaskStatus]int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}

type projectStats interface {
	CountByStatus(ctx context.Context) (map[models.ProjectStatus]int64, error)
}

type attendanceStats interface {
	CountPresentOn(ctx context.Context, day time.Time) (int64, error)
	CountByStatusSince(ctx context.Context, since time.Time) (map[models.AttendanceStatus]int64, error)
	CountByStatusBetween(ctx context.Context, from, to time.Time) (map[models.AttendanceStatus]int64, error)
}

type evaluationStats interface {
	AverageRating(ctx context.Context) (float64, error)
}

// DashboardService aggregates counters and trends for the admin dashboard.
type DashboardService struct {
	interns      internStats
	applications applicationStats
	tasks        taskStats
	projects     projectStats
	attendance   attendanceStats
	evaluations  evaluationStats
	logger       zerolog.Logger

	now func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	interns internStats,
	applications applicationStats,
	tasks taskStats,
	projects projectStats,
	attendance attendanceStats,
	evaluations evaluationStats,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		interns:      interns,
		applications: applications,
		tasks:        tasks,
		projects:     projects,
		attendance:   attendance,
		evaluations:  evaluations,
		logger:       logger,
		now:          time.Now,
	}
}

// Summary returns the headline counters block.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	internCounts, err := s.interns.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	appCounts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	taskCounts, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	projectCounts, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	presentToday, err := s.attendance.CountPresentOn(ctx, helpers.StartOfDay(s.now()))
	if err != nil {
		return nil, err
	}

	var totalInterns int64
	for _, count := range internCounts {
		totalInterns += count
	}
	var totalTasks int64
	for _, count := range taskCounts {
		totalTasks += count
	}

	completionRate := 0.0
	if totalTasks > 0 {
		completionRate = float64(taskCounts[models.TaskCompleted]) / float64(totalTasks) * 100
	}

	return &dto.DashboardSummary{
		ActiveInterns: internCounts[models.InternshipActive],
		TotalInterns:  totalInterns,
		PendingApplications: appCounts[models.ApplicationSubmitted] +
			appCounts[models.ApplicationReview] +
			appCounts[models.ApplicationInterview],
		OpenTasks:          taskCounts[models.TaskPending] + taskCounts[models.TaskInProgress],
		ActiveProjects:     projectCounts[models.ProjectActive],
		PresentToday:       presentToday,
		TaskCompletionRate: completionRate,
	}, nil
}

type countsInRange func(ctx context.Context, from, to time.Time) (int64, error)

// monthlyTrend buckets counts by calendar month over the trailing window
// and computes the change of the current month against the previous one.
func (s *DashboardService) monthlyTrend(ctx context.Context, months int, count countsInRange) (*dto.TrendReport, error) {
	if months < 2 {
		months = 2
	}

	now := s.now()
	points := make([]dto.TrendPoint, 0, months)
	var current, previous int64

	for i := months - 1; i >= 0; i-- {
		start := helpers.StartOfMonth(now.AddDate(0, -i, 0))
		end := start.AddDate(0, 1, 0)

		n, err := count(ctx, start, end)
		if err != nil {
			return nil, err
		}
		points = append(points, dto.TrendPoint{
			Period: start.Format("2006-01"),
			Count:  n,
		})
		switch i {
		case 0:
			current = n
		case 1:
			previous = n
		}
	}

	change := 0.0
	if previous > 0 {
		change = float64(current-previous) / float64(previous) * 100
	} else if current > 0 {
		change = 100
	}

	return &dto.TrendReport{
		Points:        points,
		CurrentPeriod: current,
		PercentChange: change,
	}, nil
}

// ApplicationTrend reports monthly application volume.
func (s *DashboardService) ApplicationTrend(ctx context.Context, months int) (*dto.TrendReport, error) {
	return s.monthlyTrend(ctx, months, s.applications.CountCreatedBetween)
}

// InternTrend reports monthly intern onboarding volume.
func (s *DashboardService) InternTrend(ctx context.Context, months int) (*dto.TrendReport, error) {
	return s.monthlyTrend(ctx, months, s.interns.CountCreatedBetween)
}

// ApplicationBreakdown returns per-status application counts.
func (s *DashboardService) ApplicationBreakdown(ctx context.Context) ([]dto.StatusBreakdown, error) {
	counts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	breakdown := make([]dto.StatusBreakdown, 0, len(counts))
	for _, status := range []models.ApplicationStatus{
		models.ApplicationSubmitted, models.ApplicationReview,
		models.ApplicationInterview, models.ApplicationHired, models.ApplicationRejected,
	} {
		breakdown = append(breakdown, dto.StatusBreakdown{Status: string(status), Count: counts[status]})
	}
	return breakdown, nil
}

// InternBreakdown returns per-status intern counts.
func (s *DashboardService) InternBreakdown(ctx context.Context) ([]dto.StatusBreakdown, error) {
	counts, err := s.interns.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	breakdown := make([]dto.StatusBreakdown, 0, len(counts))
	for _, status := range []models.InternshipStatus{
		models.InternshipActive, models.InternshipOnLeave,
		models.InternshipCompleted, models.InternshipTerminated,
	} {
		breakdown = append(breakdown, dto.StatusBreakdown{Status: string(status), Count: counts[status]})
	}
	return breakdown, nil
}

// DepartmentBreakdown returns per-department intern counts.
func (s *DashboardService) DepartmentBreakdown(ctx context.Context) ([]dto.StatusBreakdown, error) {
	counts, err := s.interns.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	breakdown := make([]dto.StatusBreakdown, 0, len(counts))
	for department, count := range counts {
		if department == "" {
			department = "Unassigned"
		}
		breakdown = append(breakdown, dto.StatusBreakdown{Status: department, Count: count})
	}
	return breakdown, nil
}

// AttendanceBreakdown returns per-status attendance counts for the current
// month.
func (s *DashboardService) AttendanceBreakdown(ctx context.Context) ([]dto.StatusBreakdown, error) {
	counts, err := s.attendance.CountByStatusSince(ctx, helpers.StartOfMonth(s.now()))
	if err != nil {
		return nil, err
	}
	breakdown := make([]dto.StatusBreakdown, 0, len(counts))
	for _, status := range []models.AttendanceStatus{
		models.AttendancePresent, models.AttendanceLate, models.AttendanceAbsent,
	} {
		breakdown = append(breakdown, dto.StatusBreakdown{Status: string(status), Count: counts[status]})
	}
	return breakdown, nil
}

// AttendanceRate reports the share of PRESENT and LATE records per calendar
// week over the trailing window. Weeks with no records report a zero rate.
func (s *DashboardService) AttendanceRate(ctx context.Context, weeks int) ([]dto.AttendanceRatePoint, error) {
	if weeks < 1 {
		weeks = 1
	}

	now := s.now()
	points := make([]dto.AttendanceRatePoint, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		start := helpers.StartOfWeek(now.AddDate(0, 0, -7*i))
		end := start.AddDate(0, 0, 7)

		counts, err := s.attendance.CountByStatusBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		present := counts[models.AttendancePresent]
		late := counts[models.AttendanceLate]
		absent := counts[models.AttendanceAbsent]

		rate := 0.0
		if total := present + late + absent; total > 0 {
			rate = float64(present+late) / float64(total) * 100
		}
		points = append(points, dto.AttendanceRatePoint{
			WeekStart: start.Format("2006-01-02"),
			Present:   present,
			Late:      late,
			Absent:    absent,
			Rate:      rate,
		})
	}
	return points, nil
}

// PerformanceOverview returns overdue task count and the mean evaluation
// rating as a small analytics block.
func (s *DashboardService) PerformanceOverview(ctx context.Context) (map[string]string, error) {
	overdue, err := s.tasks.CountOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}
	avg, err := s.evaluations.AverageRating(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"overdueTasks":  fmt.Sprintf("%d", overdue),
		"averageRating": formatRating(avg),
	}, nil
}
