package dto

import "github.com/google/uuid"

// LoginRequest carries credentials. Password arrives base64 RSA-encrypted by
// clients that fetched the public key; plaintext is accepted as a fallback.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the token pair returned on login/refresh
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
	Role             string `json:"role"`
}

// RefreshTokenRequest carries the opaque refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// PublicKeyResponse exposes the PEM-encoded RSA public key
type PublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

// RequestOTPRequest asks for a one-time code before registration
type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ValidateOTPRequest validates a previously requested code
type ValidateOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=4"`
}

// SecurityQAPair is one question/answer pair
type SecurityQAPair struct {
	QuestionID uuid.UUID `json:"questionId" validate:"required"`
	Answer     string    `json:"answer" validate:"required"`
}

// SetSecurityQuestionsRequest sets exactly three pairs for an intern
type SetSecurityQuestionsRequest struct {
	Pairs []SecurityQAPair `json:"pairs" validate:"required,len=3,dive"`
}

// VerifySecurityQuestionsRequest verifies three pairs for the intern
// identified by email and, on success, mints a password reset token.
type VerifySecurityQuestionsRequest struct {
	Email string           `json:"email" validate:"required,email"`
	Pairs []SecurityQAPair `json:"pairs" validate:"required,len=3,dive"`
}

// VerifySecurityQuestionsResponse carries the reset token
type VerifySecurityQuestionsResponse struct {
	ResetToken string `json:"resetToken"`
}

// ResetPasswordRequest completes a password reset with a token
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePasswordRequest changes the password of the authenticated account
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
