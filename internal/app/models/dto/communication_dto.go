package dto

import "github.com/google/uuid"

// SendMessageRequest composes a message to an intern. When TemplateID is
// set the template body is used with Placeholders substituted.
type SendMessageRequest struct {
	InternID     uuid.UUID         `json:"internId" validate:"required"`
	Subject      string            `json:"subject" validate:"omitempty,max=200"`
	Body         string            `json:"body" validate:"omitempty,max=10000"`
	TemplateID   *uuid.UUID        `json:"templateId,omitempty"`
	Placeholders map[string]string `json:"placeholders,omitempty"`
}

// CreateMessageTemplateRequest creates a reusable template
type CreateMessageTemplateRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required,max=10000"`
}

// UpdateMessageTemplateRequest selectively overwrites template fields
type UpdateMessageTemplateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Subject *string `json:"subject,omitempty" validate:"omitempty,max=200"`
	Body    *string `json:"body,omitempty" validate:"omitempty,max=10000"`
}
