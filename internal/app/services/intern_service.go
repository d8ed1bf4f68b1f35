package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/auth"
	"github.com/internhub/internhub/internal/pkg/csvutil"
	"github.com/internhub/internhub/internal/pkg/filestorage"
)

type internStore interface {
	Create(ctx context.Context, intern *models.Intern) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Intern, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EnrollmentExists(ctx context.Context, enrollmentNumber string) (bool, error)
	Update(ctx context.Context, intern *models.Intern) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *dto.InternListFilter, page, pageSize int) ([]*models.Intern, int64, error)
	GetAll(ctx context.Context) ([]*models.Intern, error)
}

type loginLifecycle interface {
	Create(ctx context.Context, login *models.Login) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// InternService implements intern record management.
type InternService struct {
	interns internStore
	logins  loginLifecycle
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewInternService creates a new InternService.
func NewInternService(interns internStore, logins loginLifecycle, storage filestorage.FileStorage, logger zerolog.Logger) *InternService {
	return &InternService{interns: interns, logins: logins, storage: storage, logger: logger}
}

// Create registers an intern directly, outside the hiring workflow, with
// an explicit password.
func (s *InternService) Create(ctx context.Context, req *dto.CreateInternRequest) (*models.Intern, error) {
	exists, err := s.interns.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if req.EnrollmentNumber != "" {
		taken, err := s.interns.EnrollmentExists(ctx, req.EnrollmentNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrEnrollmentExists
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	intern := &models.Intern{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Password:         hash,
		Phone:            req.Phone,
		Address:          req.Address,
		DateOfBirth:      req.DateOfBirth,
		EnrollmentNumber: req.EnrollmentNumber,
		University:       req.University,
		Degree:           req.Degree,
		GraduationYear:   req.GraduationYear,
		Department:       req.Department,
		MentorName:       req.MentorName,
		Skills:           req.Skills,
		Status:           models.InternshipActive,
		StartDate:        &now,
	}
	if err := s.interns.Create(ctx, intern); err != nil {
		return nil, err
	}

	login := &models.Login{
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleIntern,
		UserID:   intern.ID,
	}
	if err := s.logins.Create(ctx, login); err != nil {
		return nil, err
	}
	return intern, nil
}

// GetByID returns one intern.
func (s *InternService) GetByID(ctx context.Context, id uuid.UUID) (*models.Intern, error) {
	return s.interns.GetByID(ctx, id)
}

// List returns interns matching the filter.
func (s *InternService) List(ctx context.Context, filter *dto.InternListFilter, page, pageSize int) ([]*models.Intern, int64, error) {
	return s.interns.List(ctx, filter, page, pageSize)
}

// Update applies a partial update; nil fields keep their current value.
func (s *InternService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateInternRequest) (*models.Intern, error) {
	intern, err := s.interns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		intern.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		intern.LastName = *req.LastName
	}
	if req.Phone != nil {
		intern.Phone = *req.Phone
	}
	if req.Address != nil {
		intern.Address = *req.Address
	}
	if req.DateOfBirth != nil {
		intern.DateOfBirth = req.DateOfBirth
	}
	if req.GraduationYear != nil {
		intern.GraduationYear = req.GraduationYear
	}
	if req.MentorName != nil {
		intern.MentorName = *req.MentorName
	}
	if req.University != nil {
		intern.University = *req.University
	}
	if req.Degree != nil {
		intern.Degree = *req.Degree
	}
	if req.Department != nil {
		intern.Department = *req.Department
	}
	if req.Skills != nil {
		intern.Skills = *req.Skills
	}
	if req.Status != nil {
		intern.Status = models.InternshipStatus(*req.Status)
	}
	if req.StartDate != nil {
		intern.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		intern.EndDate = req.EndDate
	}

	if err := s.interns.Update(ctx, intern); err != nil {
		return nil, err
	}
	return intern, nil
}

// Delete removes an intern and their login.
func (s *InternService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.interns.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.logins.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("internId", id.String()).Msg("Failed to delete login")
	}
	return s.interns.Delete(ctx, id)
}

// SetProfileImage stores a new profile picture and records its URL.
func (s *InternService) SetProfileImage(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*models.Intern, error) {
	intern, err := s.interns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	saved, err := s.storage.SaveFileWithPath(file, "profile_images")
	if err != nil {
		return nil, fmt.Errorf("failed to store profile image: %w", err)
	}

	if intern.ProfileImageURL != nil {
		if err := s.storage.DeleteFile(s.storage.GetFullPath(*intern.ProfileImageURL)); err != nil {
			s.logger.Warn().Err(err).Str("internId", id.String()).Msg("Failed to delete old profile image")
		}
	}

	intern.ProfileImageURL = &saved.URL
	if err := s.interns.Update(ctx, intern); err != nil {
		return nil, err
	}
	return intern, nil
}

// ExportCSV renders every intern as a CSV document.
func (s *InternService) ExportCSV(ctx context.Context) ([]byte, error) {
	interns, err := s.interns.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	header := []string{"ID", "First Name", "Last Name", "Email", "Phone", "Enrollment Number",
		"University", "Degree", "Department", "Skills", "Status", "Start Date", "End Date"}

	rows := make([][]string, 0, len(interns))
	for _, intern := range interns {
		rows = append(rows, []string{
			intern.ID.String(),
			intern.FirstName,
			intern.LastName,
			intern.Email,
			intern.Phone,
			intern.EnrollmentNumber,
			intern.University,
			intern.Degree,
			intern.Department,
			strings.Join(intern.Skills, "; "),
			string(intern.Status),
			formatDatePtr(intern.StartDate),
			formatDatePtr(intern.EndDate),
		})
	}
	return csvutil.Write(header, rows)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 2, 64)
}
