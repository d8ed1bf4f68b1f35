package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
)

type projectStore interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *dto.ProjectListFilter, page, pageSize int) ([]*models.Project, int64, error)
	AddMember(ctx context.Context, projectID, internID uuid.UUID) (*models.ProjectIntern, error)
	RemoveMember(ctx context.Context, projectID, internID uuid.UUID) error
	GetMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectIntern, error)
}

// ProjectService implements project management and team membership.
type ProjectService struct {
	projects projectStore
	interns  internChecker
	logger   zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects projectStore, interns internChecker, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, interns: interns, logger: logger}
}

// Create adds a project.
func (s *ProjectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*models.Project, error) {
	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectPlanning,
		Priority:    models.Priority(req.Priority),
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Tags:        req.Tags,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetByID returns a project with its members attached.
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.projects.GetMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Members = members
	return project, nil
}

// List returns projects matching the filter.
func (s *ProjectService) List(ctx context.Context, filter *dto.ProjectListFilter, page, pageSize int) ([]*models.Project, int64, error) {
	return s.projects.List(ctx, filter, page, pageSize)
}

// Update applies a partial update. Progress outside [0,100] is clamped,
// not rejected.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}
	if req.Priority != nil {
		project.Priority = models.Priority(*req.Priority)
	}
	if req.Progress != nil {
		project.Progress = models.ClampProgress(*req.Progress)
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and its membership rows.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.projects.Delete(ctx, id)
}

// AddMember puts an intern on the project team.
func (s *ProjectService) AddMember(ctx context.Context, projectID, internID uuid.UUID) (*models.ProjectIntern, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.interns.GetByID(ctx, internID); err != nil {
		return nil, err
	}
	return s.projects.AddMember(ctx, projectID, internID)
}

// RemoveMember takes an intern off the project team.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, internID uuid.UUID) error {
	return s.projects.RemoveMember(ctx, projectID, internID)
}
