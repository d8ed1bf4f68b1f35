package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/dberrors"
)

// LoginRepository handles database operations for login credentials.
type LoginRepository struct {
	db *pgxpool.Pool
}

// NewLoginRepository creates a new LoginRepository.
func NewLoginRepository(db *pgxpool.Pool) *LoginRepository {
	return &LoginRepository{db: db}
}

const loginColumns = `id, email, password, role, user_id, failed_attempts, lockout_until,
		reset_token, reset_token_expiry, last_login_at, created_at, updated_at`

func scanLogin(row pgx.Row) (*models.Login, error) {
	var login models.Login
	err := row.Scan(
		&login.ID, &login.Email, &login.Password, &login.Role, &login.UserID,
		&login.FailedAttempts, &login.LockoutUntil,
		&login.ResetToken, &login.ResetTokenExpiry, &login.LastLoginAt,
		&login.CreatedAt, &login.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &login, nil
}

// Create inserts a new login record.
func (r *LoginRepository) Create(ctx context.Context, login *models.Login) error {
	query := `
		INSERT INTO logins (id, email, password, role, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	if login.ID == uuid.Nil {
		login.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query,
		login.ID, login.Email, login.Password, login.Role, login.UserID,
	).Scan(&login.CreatedAt, &login.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create login: %w", err)
	}
	return nil
}

// GetByEmail retrieves a login by email address.
func (r *LoginRepository) GetByEmail(ctx context.Context, email string) (*models.Login, error) {
	query := `SELECT ` + loginColumns + ` FROM logins WHERE LOWER(email) = LOWER($1)`

	login, err := scanLogin(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get login by email: %w", err)
	}
	return login, nil
}

// GetByUserID retrieves a login by the owning user id.
func (r *LoginRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Login, error) {
	query := `SELECT ` + loginColumns + ` FROM logins WHERE user_id = $1`

	login, err := scanLogin(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get login by user id: %w", err)
	}
	return login, nil
}

// RecordFailedAttempt increments the failed login counter and applies a
// lockout once the threshold is reached.
func (r *LoginRepository) RecordFailedAttempt(ctx context.Context, id uuid.UUID, attempts int, lockoutUntil *time.Time) error {
	query := `UPDATE logins SET failed_attempts = $2, lockout_until = $3, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, attempts, lockoutUntil); err != nil {
		return fmt.Errorf("failed to record failed attempt: %w", err)
	}
	return nil
}

// ResetFailedAttempts clears the failure counter and lockout after a
// successful login, stamping last_login_at.
func (r *LoginRepository) ResetFailedAttempts(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE logins
		SET failed_attempts = 0, lockout_until = NULL, last_login_at = NOW(), updated_at = NOW()
		WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to reset failed attempts: %w", err)
	}
	return nil
}

// SetResetToken stores a password reset token and its expiry.
func (r *LoginRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	query := `UPDATE logins SET reset_token = $2, reset_token_expiry = $3, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, token, expiry); err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

// GetByResetToken retrieves the login holding an unexpired reset token.
func (r *LoginRepository) GetByResetToken(ctx context.Context, token string) (*models.Login, error) {
	query := `SELECT ` + loginColumns + ` FROM logins WHERE reset_token = $1 AND reset_token_expiry > NOW()`

	login, err := scanLogin(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, fmt.Errorf("failed to get login by reset token: %w", err)
	}
	return login, nil
}

// UpdatePassword replaces the stored password hash and clears any reset token.
func (r *LoginRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	query := `
		UPDATE logins
		SET password = $2, reset_token = NULL, reset_token_expiry = NULL,
			failed_attempts = 0, lockout_until = NULL, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes a login by the owning user id.
func (r *LoginRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM logins WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete login: %w", err)
	}
	return nil
}
