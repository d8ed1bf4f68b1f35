package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin defines a staff account based on the 'admins' table
type Admin struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      RoleType  `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Login is the credential row every account authenticates against. It holds
// a redundant copy of the password hash plus the role tag and lockout
// counters. The duplication with Intern/Admin is a deliberate denormalization
// carried over from the original schema, not a cache.
type Login struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Email            string     `json:"email" db:"email"`
	Password         string     `json:"-" db:"password"`
	Role             RoleType   `json:"role" db:"role"`
	UserID           uuid.UUID  `json:"userId" db:"user_id"`
	FailedAttempts   int        `json:"-" db:"failed_attempts"`
	LockoutUntil     *time.Time `json:"-" db:"lockout_until"`
	ResetToken       *string    `json:"-" db:"reset_token"`
	ResetTokenExpiry *time.Time `json:"-" db:"reset_token_expiry"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}
