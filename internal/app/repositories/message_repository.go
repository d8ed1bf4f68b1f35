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
	"github.com/internhub/internhub/internal/pkg/dberrors"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// MessageRepository handles database operations for messages and templates.
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage stores a sent message.
func (r *MessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, intern_id, subject, body, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query,
		msg.ID, msg.SenderID, msg.InternID, msg.Subject, msg.Body, msg.SentAt,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListMessagesByIntern returns messages sent to one intern, newest first.
func (r *MessageRepository) ListMessagesByIntern(ctx context.Context, internID uuid.UUID, page, pageSize int) ([]*models.Message, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM messages WHERE intern_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, internID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query := `
		SELECT id, sender_id, intern_id, subject, body, sent_at, created_at
		FROM messages WHERE intern_id = $1
		ORDER BY sent_at DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, internID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(&msg.ID, &msg.SenderID, &msg.InternID, &msg.Subject,
			&msg.Body, &msg.SentAt, &msg.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, total, nil
}

// CreateTemplate stores a reusable message template.
func (r *MessageRepository) CreateTemplate(ctx context.Context, tpl *models.MessageTemplate) error {
	query := `
		INSERT INTO message_templates (id, name, subject, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query, tpl.ID, tpl.Name, tpl.Subject, tpl.Body).
		Scan(&tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create message template: %w", err)
	}
	return nil
}

// GetTemplateByID retrieves a template by id.
func (r *MessageRepository) GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.MessageTemplate, error) {
	query := `SELECT id, name, subject, body, created_at, updated_at
		FROM message_templates WHERE id = $1`

	var tpl models.MessageTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tpl.ID, &tpl.Name, &tpl.Subject, &tpl.Body, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get message template: %w", err)
	}
	return &tpl, nil
}

// ListTemplates returns the full template catalog.
func (r *MessageRepository) ListTemplates(ctx context.Context) ([]*models.MessageTemplate, error) {
	query := `SELECT id, name, subject, body, created_at, updated_at
		FROM message_templates ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list message templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.MessageTemplate
	for rows.Next() {
		var tpl models.MessageTemplate
		err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Subject, &tpl.Body,
			&tpl.CreatedAt, &tpl.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message template: %w", err)
		}
		templates = append(templates, &tpl)
	}
	return templates, rows.Err()
}

// UpdateTemplate persists changes to a template.
func (r *MessageRepository) UpdateTemplate(ctx context.Context, tpl *models.MessageTemplate) error {
	query := `UPDATE message_templates SET name = $2, subject = $3, body = $4, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, tpl.ID, tpl.Name, tpl.Subject, tpl.Body)
	if err != nil {
		return fmt.Errorf("failed to update message template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteTemplate removes a template.
func (r *MessageRepository) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM message_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
