package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/email"
)

type messageStore interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessagesByIntern(ctx context.Context, internID uuid.UUID, page, pageSize int) ([]*models.Message, int64, error)
	CreateTemplate(ctx context.Context, tpl *models.MessageTemplate) error
	GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.MessageTemplate, error)
	ListTemplates(ctx context.Context) ([]*models.MessageTemplate, error)
	UpdateTemplate(ctx context.Context, tpl *models.MessageTemplate) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

// CommunicationService implements admin-to-intern messaging with optional
// templates.
type CommunicationService struct {
	messages messageStore
	interns  internChecker
	emails   email.Sender
	logger   zerolog.Logger
}

// NewCommunicationService creates a new CommunicationService.
func NewCommunicationService(messages messageStore, interns internChecker, emails email.Sender, logger zerolog.Logger) *CommunicationService {
	return &CommunicationService{messages: messages, interns: interns, emails: emails, logger: logger}
}

// SendMessage persists a message and delivers it by email. When a template
// is named, its subject and body are used with {{placeholder}} slots
// substituted; explicit subject/body fields win over template ones.
func (s *CommunicationService) SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*models.Message, error) {
	intern, err := s.interns.GetByID(ctx, req.InternID)
	if err != nil {
		return nil, err
	}

	subject, body := req.Subject, req.Body
	if req.TemplateID != nil {
		tpl, err := s.messages.GetTemplateByID(ctx, *req.TemplateID)
		if err != nil {
			return nil, err
		}
		if subject == "" {
			subject = substitutePlaceholders(tpl.Subject, req.Placeholders)
		}
		if body == "" {
			body = substitutePlaceholders(tpl.Body, req.Placeholders)
		}
	}
	if subject == "" || body == "" {
		return nil, apperrors.NewBadRequestError("subject and body are required when no template is used")
	}

	msg := &models.Message{
		SenderID: senderID,
		InternID: req.InternID,
		Subject:  subject,
		Body:     body,
		SentAt:   time.Now(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.emails.SendMessageEmail(intern.Email, subject, body); err != nil {
		s.logger.Error().Err(err).Str("email", intern.Email).Msg("Failed to deliver message email")
	}
	return msg, nil
}

// substitutePlaceholders replaces {{key}} slots. Unknown slots stay as is.
func substitutePlaceholders(text string, values map[string]string) string {
	for key, value := range values {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}

// ListMessages returns messages sent to one intern.
func (s *CommunicationService) ListMessages(ctx context.Context, internID uuid.UUID, page, pageSize int) ([]*models.Message, int64, error) {
	return s.messages.ListMessagesByIntern(ctx, internID, page, pageSize)
}

// CreateTemplate adds a reusable template.
func (s *CommunicationService) CreateTemplate(ctx context.Context, req *dto.CreateMessageTemplateRequest) (*models.MessageTemplate, error) {
	tpl := &models.MessageTemplate{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.messages.CreateTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// ListTemplates returns the template catalog.
func (s *CommunicationService) ListTemplates(ctx context.Context) ([]*models.MessageTemplate, error) {
	return s.messages.ListTemplates(ctx)
}

// UpdateTemplate applies a partial update to a template.
func (s *CommunicationService) UpdateTemplate(ctx context.Context, id uuid.UUID, req *dto.UpdateMessageTemplateRequest) (*models.MessageTemplate, error) {
	tpl, err := s.messages.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Subject != nil {
		tpl.Subject = *req.Subject
	}
	if req.Body != nil {
		tpl.Body = *req.Body
	}

	if err := s.messages.UpdateTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// DeleteTemplate removes a template.
func (s *CommunicationService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.messages.DeleteTemplate(ctx, id)
}
