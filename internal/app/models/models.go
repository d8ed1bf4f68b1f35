package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin  RoleType = "ADMIN"
	RoleIntern RoleType = "INTERN"
)

// InternshipStatus tracks where an intern is in their internship
type InternshipStatus string

const (
	InternshipActive     InternshipStatus = "ACTIVE"
	InternshipOnLeave    InternshipStatus = "ON_LEAVE"
	InternshipCompleted  InternshipStatus = "COMPLETED"
	InternshipTerminated InternshipStatus = "TERMINATED"
)

// ApplicationStatus is the hiring workflow state
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationReview    ApplicationStatus = "REVIEW"
	ApplicationInterview ApplicationStatus = "INTERVIEW"
	ApplicationHired     ApplicationStatus = "HIRED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
)

// ValidApplicationStatus reports whether s is a known workflow state.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationSubmitted, ApplicationReview, ApplicationInterview, ApplicationHired, ApplicationRejected:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// AssignmentStatus is the per-intern state of a task assignment
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "PLANNING"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

// Priority applies to tasks and projects
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// AttendanceStatus marks one clock-in event
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)
