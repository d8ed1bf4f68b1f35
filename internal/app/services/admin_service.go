package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/auth"
)

type adminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	List(ctx context.Context) ([]*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// AdminService implements staff account management.
type AdminService struct {
	admins adminStore
	logins loginLifecycle
	logger zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins adminStore, logins loginLifecycle, logger zerolog.Logger) *AdminService {
	return &AdminService{admins: admins, logins: logins, logger: logger}
}

// Create registers a staff account with admin role.
func (s *AdminService) Create(ctx context.Context, req *dto.CreateAdminRequest) (*models.Admin, error) {
	exists, err := s.admins.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	login := &models.Login{
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleAdmin,
		UserID:   admin.ID,
	}
	if err := s.logins.Create(ctx, login); err != nil {
		return nil, err
	}
	return admin, nil
}

// GetByID returns one staff account.
func (s *AdminService) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	return s.admins.GetByID(ctx, id)
}

// List returns every staff account.
func (s *AdminService) List(ctx context.Context) ([]*models.Admin, error) {
	return s.admins.List(ctx)
}

// Update selectively overwrites admin fields. A new password reaches only
// the admin row; the login row is changed through the auth flows.
func (s *AdminService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAdminRequest) (*models.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		admin.Username = *req.Username
	}
	if req.Email != nil && *req.Email != admin.Email {
		exists, err := s.admins.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		admin.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		admin.Password = hash
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete removes a staff account together with its login.
func (s *AdminService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.admins.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.logins.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("adminId", id.String()).Msg("Failed to delete admin login")
	}
	return s.admins.Delete(ctx, id)
}
