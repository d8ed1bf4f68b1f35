package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/pkg/apperrors"
)

// ApplicationTokenRepository handles invite token persistence.
type ApplicationTokenRepository struct {
	db *pgxpool.Pool
}

// NewApplicationTokenRepository creates a new ApplicationTokenRepository.
func NewApplicationTokenRepository(db *pgxpool.Pool) *ApplicationTokenRepository {
	return &ApplicationTokenRepository{db: db}
}

// Create inserts a new invite token.
func (r *ApplicationTokenRepository) Create(ctx context.Context, token *models.ApplicationToken) error {
	query := `
		INSERT INTO application_tokens (id, token, email, expires_at, used)
		VALUES ($1, $2, $3, $4, false)
		RETURNING created_at`

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query, token.ID, token.Token, token.Email, token.ExpiresAt).
		Scan(&token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application token: %w", err)
	}
	return nil
}

// GetByToken retrieves a token by its value.
func (r *ApplicationTokenRepository) GetByToken(ctx context.Context, token string) (*models.ApplicationToken, error) {
	query := `SELECT id, token, email, expires_at, used, created_at
		FROM application_tokens WHERE token = $1`

	var t models.ApplicationToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.Token, &t.Email, &t.ExpiresAt, &t.Used, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get application token: %w", err)
	}
	return &t, nil
}

// MarkUsed flags a token as consumed. Returns ErrApplicationTokenUsed
// when the token was consumed concurrently.
func (r *ApplicationTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE application_tokens SET used = true WHERE id = $1 AND used = false`, id)
	if err != nil {
		return fmt.Errorf("failed to mark application token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationTokenUsed
	}
	return nil
}

// ListActive returns unexpired, unused tokens, newest first.
func (r *ApplicationTokenRepository) ListActive(ctx context.Context) ([]*models.ApplicationToken, error) {
	query := `SELECT id, token, email, expires_at, used, created_at
		FROM application_tokens
		WHERE used = false AND expires_at > NOW()
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list application tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*models.ApplicationToken
	for rows.Next() {
		var t models.ApplicationToken
		if err := rows.Scan(&t.ID, &t.Token, &t.Email, &t.ExpiresAt, &t.Used, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application token: %w", err)
		}
		tokens = append(tokens, &t)
	}
	return tokens, rows.Err()
}
