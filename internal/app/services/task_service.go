package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
)

type taskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *dto.TaskListFilter, page, pageSize int) ([]*models.Task, int64, error)
	Assign(ctx context.Context, internID, taskID uuid.UUID) (*models.InternTask, error)
	Unassign(ctx context.Context, internID, taskID uuid.UUID) error
	UpdateAssignmentStatus(ctx context.Context, internID, taskID uuid.UUID, status models.AssignmentStatus) error
	GetAssignments(ctx context.Context, taskID uuid.UUID) ([]*models.InternTask, error)
}

// TaskService implements task management and intern assignments.
type TaskService struct {
	tasks   taskStore
	interns internChecker
	logger  zerolog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks taskStore, interns internChecker, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, interns: interns, logger: logger}
}

// Create adds a task.
func (s *TaskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskPending,
		Priority:    models.Priority(req.Priority),
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetByID returns a task with its assignments attached.
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	assignments, err := s.tasks.GetAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Assignments = assignments
	return task, nil
}

// List returns tasks matching the filter.
func (s *TaskService) List(ctx context.Context, filter *dto.TaskListFilter, page, pageSize int) ([]*models.Task, int64, error) {
	return s.tasks.List(ctx, filter, page, pageSize)
}

// Update applies a partial update; nil fields keep their current value.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = models.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task and its assignments.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Delete(ctx, id)
}

// Assign links an intern to a task.
func (s *TaskService) Assign(ctx context.Context, taskID, internID uuid.UUID) (*models.InternTask, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	if _, err := s.interns.GetByID(ctx, internID); err != nil {
		return nil, err
	}
	return s.tasks.Assign(ctx, internID, taskID)
}

// Unassign removes the link between an intern and a task.
func (s *TaskService) Unassign(ctx context.Context, taskID, internID uuid.UUID) error {
	return s.tasks.Unassign(ctx, internID, taskID)
}

// UpdateAssignmentStatus moves one assignment along its lifecycle. When
// every assignment of the task is completed the task itself is closed.
func (s *TaskService) UpdateAssignmentStatus(ctx context.Context, taskID, internID uuid.UUID, status models.AssignmentStatus) error {
	if err := s.tasks.UpdateAssignmentStatus(ctx, internID, taskID, status); err != nil {
		return err
	}

	if status != models.AssignmentCompleted {
		return nil
	}

	assignments, err := s.tasks.GetAssignments(ctx, taskID)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if a.AssignmentStatus != models.AssignmentCompleted {
			return nil
		}
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	task.Status = models.TaskCompleted
	return s.tasks.Update(ctx, task)
}
