package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a persisted admin-to-intern communication, also delivered by
// email.
type Message struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SenderID  uuid.UUID `json:"senderId" db:"sender_id"`
	InternID  uuid.UUID `json:"internId" db:"intern_id"`
	Subject   string    `json:"subject" db:"subject"`
	Body      string    `json:"body" db:"body"`
	SentAt    time.Time `json:"sentAt" db:"sent_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MessageTemplate is a reusable message body with {{placeholder}} slots.
type MessageTemplate struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Subject   string    `json:"subject" db:"subject"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
