package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internhub/internal/app/models"
)

type fakeInternStats struct {
	byStatus     map[models.InternshipStatus]int64
	byDepartment map[string]int64
	byMonth      map[string]int64 // keyed by "2006-01" of the range start
}

func (f *fakeInternStats) CountByStatus(ctx context.Context) (map[models.InternshipStatus]int64, error) {
	return f.byStatus, nil
}

func (f *fakeInternStats) CountByDepartment(ctx context.Context) (map[string]int64, error) {
	return f.byDepartment, nil
}

func (f *fakeInternStats) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return f.byMonth[from.Format("2006-01")], nil
}

type fakeApplicationStats struct {
	byStatus map[models.ApplicationStatus]int64
	byMonth  map[string]int64
}

func (f *fakeApplicationStats) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	return f.byStatus, nil
}

func (f *fakeApplicationStats) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return f.byMonth[from.Format("2006-01")], nil
}

type fakeTaskStats struct {
	byStatus map[models.TaskStatus]int64
	overdue  int64
}

func (f *fakeTaskStats) CountByStatus(ctx context.Context) (map[models.TaskStatus]int64, error) {
	return f.byStatus, nil
}

func (f *fakeTaskStats) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	return f.overdue, nil
}

type fakeProjectStats struct {
	byStatus map[models.ProjectStatus]int64
}

func (f *fakeProjectStats) CountByStatus(ctx context.Context) (map[models.ProjectStatus]int64, error) {
	return f.byStatus, nil
}

type fakeAttendanceStats struct {
	presentToday int64
	byStatus     map[models.AttendanceStatus]int64
	byWeek       map[string]map[models.AttendanceStatus]int64 // keyed by "2006-01-02" of the week start
}

func (f *fakeAttendanceStats) CountPresentOn(ctx context.Context, day time.Time) (int64, error) {
	return f.presentToday, nil
}

func (f *fakeAttendanceStats) CountByStatusSince(ctx context.Context, since time.Time) (map[models.AttendanceStatus]int64, error) {
	return f.byStatus, nil
}

func (f *fakeAttendanceStats) CountByStatusBetween(ctx context.Context, from, to time.Time) (map[models.AttendanceStatus]int64, error) {
	if counts, ok := f.byWeek[from.Format("2006-01-02")]; ok {
		return counts, nil
	}
	return map[models.AttendanceStatus]int64{}, nil
}

type fakeEvaluationStats struct {
	average float64
}

func (f *fakeEvaluationStats) AverageRating(ctx context.Context) (float64, error) {
	return f.average, nil
}

type dashboardFixture struct {
	svc          *DashboardService
	interns      *fakeInternStats
	applications *fakeApplicationStats
	tasks        *fakeTaskStats
	attendance   *fakeAttendanceStats
}

func newDashboardFixture() *dashboardFixture {
	interns := &fakeInternStats{
		byStatus:     map[models.InternshipStatus]int64{},
		byDepartment: map[string]int64{},
		byMonth:      map[string]int64{},
	}
	applications := &fakeApplicationStats{
		byStatus: map[models.ApplicationStatus]int64{},
		byMonth:  map[string]int64{},
	}
	tasks := &fakeTaskStats{byStatus: map[models.TaskStatus]int64{}}
	attendance := &fakeAttendanceStats{
		presentToday: 4,
		byStatus: map[models.AttendanceStatus]int64{
			models.AttendancePresent: 40,
			models.AttendanceLate:    5,
		},
		byWeek: map[string]map[models.AttendanceStatus]int64{},
	}
	svc := NewDashboardService(
		interns, applications, tasks,
		&fakeProjectStats{byStatus: map[models.ProjectStatus]int64{models.ProjectActive: 2}},
		attendance,
		&fakeEvaluationStats{average: 4.25},
		zerolog.Nop(),
	)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return &dashboardFixture{svc: svc, interns: interns, applications: applications, tasks: tasks, attendance: attendance}
}

func TestDashboardSummary(t *testing.T) {
	fx := newDashboardFixture()
	fx.interns.byStatus = map[models.InternshipStatus]int64{
		models.InternshipActive:    6,
		models.InternshipCompleted: 4,
	}
	fx.applications.byStatus = map[models.ApplicationStatus]int64{
		models.ApplicationSubmitted: 3,
		models.ApplicationReview:    2,
		models.ApplicationInterview: 1,
		models.ApplicationRejected:  5,
	}
	fx.tasks.byStatus = map[models.TaskStatus]int64{
		models.TaskPending:    2,
		models.TaskInProgress: 3,
		models.TaskCompleted:  5,
	}

	summary, err := fx.svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), summary.ActiveInterns)
	assert.Equal(t, int64(10), summary.TotalInterns)
	assert.Equal(t, int64(6), summary.PendingApplications)
	assert.Equal(t, int64(5), summary.OpenTasks)
	assert.Equal(t, int64(2), summary.ActiveProjects)
	assert.Equal(t, int64(4), summary.PresentToday)
	assert.InDelta(t, 50.0, summary.TaskCompletionRate, 0.001)
}

func TestDashboardSummaryNoTasks(t *testing.T) {
	fx := newDashboardFixture()

	summary, err := fx.svc.Summary(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, summary.TaskCompletionRate, 0.001)
}

func TestApplicationTrend(t *testing.T) {
	fx := newDashboardFixture()
	fx.applications.byMonth = map[string]int64{
		"2025-04": 2,
		"2025-05": 4,
		"2025-06": 6,
	}

	report, err := fx.svc.ApplicationTrend(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, report.Points, 3)
	assert.Equal(t, "2025-04", report.Points[0].Period)
	assert.Equal(t, "2025-06", report.Points[2].Period)
	assert.Equal(t, int64(6), report.CurrentPeriod)
	assert.InDelta(t, 50.0, report.PercentChange, 0.001)
}

func TestTrendChangeFromZeroPrevious(t *testing.T) {
	fx := newDashboardFixture()
	fx.interns.byMonth = map[string]int64{"2025-06": 3}

	report, err := fx.svc.InternTrend(context.Background(), 2)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, report.PercentChange, 0.001)
}

func TestTrendFlatAtZero(t *testing.T) {
	fx := newDashboardFixture()

	report, err := fx.svc.InternTrend(context.Background(), 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, report.PercentChange, 0.001)
}

func TestTrendWindowMinimumTwoMonths(t *testing.T) {
	fx := newDashboardFixture()

	report, err := fx.svc.ApplicationTrend(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, report.Points, 2)
}

func TestApplicationBreakdownCoversAllStatuses(t *testing.T) {
	fx := newDashboardFixture()
	fx.applications.byStatus = map[models.ApplicationStatus]int64{
		models.ApplicationSubmitted: 3,
	}

	breakdown, err := fx.svc.ApplicationBreakdown(context.Background())
	require.NoError(t, err)

	require.Len(t, breakdown, 5)
	assert.Equal(t, "SUBMITTED", breakdown[0].Status)
	assert.Equal(t, int64(3), breakdown[0].Count)
	assert.Equal(t, int64(0), breakdown[1].Count)
}

func TestDepartmentBreakdownRenamesEmptyDepartment(t *testing.T) {
	fx := newDashboardFixture()
	fx.interns.byDepartment = map[string]int64{
		"":            2,
		"Engineering": 5,
	}

	breakdown, err := fx.svc.DepartmentBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	counts := make(map[string]int64, len(breakdown))
	for _, entry := range breakdown {
		counts[entry.Status] = entry.Count
	}
	assert.Equal(t, int64(2), counts["Unassigned"])
	assert.Equal(t, int64(5), counts["Engineering"])
}

func TestAttendanceBreakdown(t *testing.T) {
	fx := newDashboardFixture()

	breakdown, err := fx.svc.AttendanceBreakdown(context.Background())
	require.NoError(t, err)

	require.Len(t, breakdown, 3)
	assert.Equal(t, "PRESENT", breakdown[0].Status)
	assert.Equal(t, int64(40), breakdown[0].Count)
	assert.Equal(t, int64(5), breakdown[1].Count)
	assert.Equal(t, int64(0), breakdown[2].Count)
}

func TestAttendanceRateByWeek(t *testing.T) {
	fx := newDashboardFixture()
	fx.attendance.byWeek = map[string]map[models.AttendanceStatus]int64{
		"2025-06-02": {
			models.AttendancePresent: 8,
			models.AttendanceLate:    1,
			models.AttendanceAbsent:  1,
		},
		"2025-06-09": {
			models.AttendancePresent: 3,
			models.AttendanceAbsent:  2,
		},
	}

	points, err := fx.svc.AttendanceRate(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, "2025-06-02", points[0].WeekStart)
	assert.InDelta(t, 90.0, points[0].Rate, 0.001)
	assert.Equal(t, "2025-06-09", points[1].WeekStart)
	assert.Equal(t, int64(3), points[1].Present)
	assert.InDelta(t, 60.0, points[1].Rate, 0.001)
}

func TestAttendanceRateEmptyWeek(t *testing.T) {
	fx := newDashboardFixture()

	points, err := fx.svc.AttendanceRate(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, points, 1)
	assert.InDelta(t, 0.0, points[0].Rate, 0.001)
}

func TestPerformanceOverview(t *testing.T) {
	fx := newDashboardFixture()
	fx.tasks.overdue = 7

	overview, err := fx.svc.PerformanceOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "7", overview["overdueTasks"])
	assert.Equal(t, "4.25", overview["averageRating"])
}
