package dto

// DashboardSummary is the headline counters block
type DashboardSummary struct {
	ActiveInterns       int64   `json:"activeInterns"`
	TotalInterns        int64   `json:"totalInterns"`
	PendingApplications int64   `json:"pendingApplications"`
	OpenTasks           int64   `json:"openTasks"`
	ActiveProjects      int64   `json:"activeProjects"`
	PresentToday        int64   `json:"presentToday"`
	TaskCompletionRate  float64 `json:"taskCompletionRate"` // percent
}

// TrendPoint is one bucket of a time-series aggregate
type TrendPoint struct {
	Period string `json:"period"` // e.g. "2026-01" or "2026-W03"
	Count  int64  `json:"count"`
}

// TrendReport is a bucketed series with change vs the previous period
type TrendReport struct {
	Points        []TrendPoint `json:"points"`
	CurrentPeriod int64        `json:"currentPeriod"`
	PercentChange float64      `json:"percentChange"`
}

// AttendanceRatePoint is one week of attendance with its presence rate
type AttendanceRatePoint struct {
	WeekStart string  `json:"weekStart"` // Monday, "2006-01-02"
	Present   int64   `json:"present"`
	Late      int64   `json:"late"`
	Absent    int64   `json:"absent"`
	Rate      float64 `json:"rate"` // percent of records that are PRESENT or LATE
}

// StatusBreakdown maps a status to its count
type StatusBreakdown struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
