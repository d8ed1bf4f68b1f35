package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/auth"
	"github.com/internhub/internhub/internal/pkg/email"
	"github.com/internhub/internhub/internal/pkg/otp"
)

// loginStore is the slice of LoginRepository the auth service needs.
type loginStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Login, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Login, error)
	RecordFailedAttempt(ctx context.Context, id uuid.UUID, attempts int, lockoutUntil *time.Time) error
	ResetFailedAttempts(ctx context.Context, id uuid.UUID) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, token string) (*models.Login, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

type refreshTokenStore interface {
	CreateToken(ctx context.Context, token string, userID uuid.UUID, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (uuid.UUID, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

type internSecurityStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Intern, error)
	GetByEmail(ctx context.Context, email string) (*models.Intern, error)
	UpdateSecurityQuestions(ctx context.Context, id uuid.UUID, questions [3]uuid.UUID, hashedAnswers [3]string) error
}

type securityQuestionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.SecurityQuestion, error)
	List(ctx context.Context) ([]*models.SecurityQuestion, error)
}

// passwordDecrypter unwraps transport-encrypted passwords.
type passwordDecrypter interface {
	Decrypt(encoded string) (string, error)
	PublicKeyPEM() (string, error)
}

// AuthService implements login, token refresh and the password recovery
// flows (OTP and security questions).
type AuthService struct {
	logins     loginStore
	tokens     refreshTokenStore
	interns    internSecurityStore
	questions  securityQuestionStore
	jwtService *auth.JWTService
	decrypter  passwordDecrypter
	otpCache   *otp.Cache
	emails     email.Sender
	logger     zerolog.Logger

	maxFailedLogins    int
	lockoutDuration    time.Duration
	resetTokenLifetime time.Duration

	now func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	logins loginStore,
	tokens refreshTokenStore,
	interns internSecurityStore,
	questions securityQuestionStore,
	jwtService *auth.JWTService,
	decrypter passwordDecrypter,
	otpCache *otp.Cache,
	emails email.Sender,
	logger zerolog.Logger,
	maxFailedLogins int,
	lockoutDuration time.Duration,
	resetTokenLifetime time.Duration,
) *AuthService {
	return &AuthService{
		logins:             logins,
		tokens:             tokens,
		interns:            interns,
		questions:          questions,
		jwtService:         jwtService,
		decrypter:          decrypter,
		otpCache:           otpCache,
		emails:             emails,
		logger:             logger,
		maxFailedLogins:    maxFailedLogins,
		lockoutDuration:    lockoutDuration,
		resetTokenLifetime: resetTokenLifetime,
		now:                time.Now,
	}
}

// PublicKeyPEM returns the PEM public key clients encrypt passwords with.
func (s *AuthService) PublicKeyPEM() (string, error) {
	return s.decrypter.PublicKeyPEM()
}

// Login authenticates credentials and returns a token pair. Repeated
// failures lock the account for a configured window.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	login, err := s.logins.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if login.LockoutUntil != nil && login.LockoutUntil.After(s.now()) {
		return nil, apperrors.ErrAccountLocked
	}

	password, err := s.decrypter.Decrypt(req.Password)
	if err != nil {
		password = req.Password
	}

	if !auth.CheckPassword(login.Password, password) {
		attempts := login.FailedAttempts + 1
		var lockout *time.Time
		if attempts >= s.maxFailedLogins {
			until := s.now().Add(s.lockoutDuration)
			lockout = &until
		}
		if err := s.logins.RecordFailedAttempt(ctx, login.ID, attempts, lockout); err != nil {
			s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to record login failure")
		}
		if lockout != nil {
			return nil, apperrors.ErrAccountLocked
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.logins.ResetFailedAttempts(ctx, login.ID); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to reset login failures")
	}

	return s.issueTokens(ctx, login)
}

func (s *AuthService) issueTokens(ctx context.Context, login *models.Login) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(
		login.UserID, login.Email, string(login.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.CreateToken(ctx, refreshToken, login.UserID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
		Role:             string(login.Role),
	}, nil
}

// RefreshToken rotates a refresh token into a fresh pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiry, revoked, err := s.tokens.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if expiry.Before(s.now()) {
		return nil, apperrors.ErrTokenExpired
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	login, err := s.logins.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, login)
}

// Logout revokes every refresh token of the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.RevokeAllUserTokens(ctx, userID)
}

// RequestOTP generates a one-time code for the email and delivers it.
// The address does not need to belong to an account: the same flow
// verifies ownership of an email before registration.
func (s *AuthService) RequestOTP(ctx context.Context, emailAddr string) error {
	code, err := s.otpCache.Generate(emailAddr)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.emails.SendOTPEmail(emailAddr, code); err != nil {
		s.logger.Error().Err(err).Str("email", emailAddr).Msg("Failed to send OTP email")
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

// ValidateOTP consumes a one-time code. When the email belongs to an
// account a password reset token is minted for it; for an address with
// no account the validation alone confirms ownership and the reset
// token is empty.
func (s *AuthService) ValidateOTP(ctx context.Context, emailAddr, code string) (string, error) {
	if !s.otpCache.Validate(emailAddr, code) {
		return "", apperrors.ErrOTPInvalid
	}

	login, err := s.logins.GetByEmail(ctx, emailAddr)
	if err != nil {
		return "", nil
	}
	return s.mintResetToken(ctx, login)
}

func (s *AuthService) mintResetToken(ctx context.Context, login *models.Login) (string, error) {
	token := uuid.NewString()
	if err := s.logins.SetResetToken(ctx, login.ID, token, s.now().Add(s.resetTokenLifetime)); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// ListSecurityQuestions returns the question catalog.
func (s *AuthService) ListSecurityQuestions(ctx context.Context) ([]*models.SecurityQuestion, error) {
	return s.questions.List(ctx)
}

// SetSecurityQuestions stores three question/answer pairs for the intern.
// Answers are bcrypt hashed and never stored in clear.
func (s *AuthService) SetSecurityQuestions(ctx context.Context, internID uuid.UUID, pairs []dto.SecurityQAPair) error {
	if len(pairs) != 3 {
		return apperrors.NewBadRequestError("exactly three security questions are required")
	}

	var questionIDs [3]uuid.UUID
	var hashes [3]string
	seen := make(map[uuid.UUID]bool, 3)
	for i, pair := range pairs {
		if seen[pair.QuestionID] {
			return apperrors.NewBadRequestError("security questions must be distinct")
		}
		seen[pair.QuestionID] = true

		if _, err := s.questions.GetByID(ctx, pair.QuestionID); err != nil {
			return apperrors.NewBadRequestError("unknown security question")
		}

		hash, err := auth.HashPassword(normalizeAnswer(pair.Answer))
		if err != nil {
			return fmt.Errorf("failed to hash security answer: %w", err)
		}
		questionIDs[i] = pair.QuestionID
		hashes[i] = hash
	}

	return s.interns.UpdateSecurityQuestions(ctx, internID, questionIDs, hashes)
}

// VerifySecurityQuestions checks three answers for the intern identified by
// email. Each submitted pair is matched to the stored question by id, so
// order does not matter. On success a reset token is minted.
func (s *AuthService) VerifySecurityQuestions(ctx context.Context, req *dto.VerifySecurityQuestionsRequest) (string, error) {
	intern, err := s.interns.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same error as a wrong answer so the endpoint does not leak
		// which emails exist.
		return "", apperrors.ErrSecurityAnswersMismatch
	}
	if !intern.HasSecurityQuestions() {
		return "", apperrors.ErrSecurityQuestionsNotSet
	}

	stored := map[uuid.UUID]string{
		*intern.SecurityQuestion1: *intern.SecurityAnswer1,
		*intern.SecurityQuestion2: *intern.SecurityAnswer2,
		*intern.SecurityQuestion3: *intern.SecurityAnswer3,
	}

	if len(req.Pairs) != 3 {
		return "", apperrors.ErrSecurityAnswersMismatch
	}
	for _, pair := range req.Pairs {
		hash, ok := stored[pair.QuestionID]
		if !ok || !auth.CheckPassword(hash, normalizeAnswer(pair.Answer)) {
			return "", apperrors.ErrSecurityAnswersMismatch
		}
		delete(stored, pair.QuestionID)
	}

	login, err := s.logins.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	return s.mintResetToken(ctx, login)
}

// ResetPassword completes a reset with a previously minted token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	login, err := s.logins.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}

	password, err := s.decrypter.Decrypt(newPassword)
	if err != nil {
		password = newPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.logins.UpdatePassword(ctx, login.ID, hash); err != nil {
		return err
	}

	// Force re-authentication everywhere.
	if err := s.tokens.RevokeAllUserTokens(ctx, login.UserID); err != nil {
		s.logger.Error().Err(err).Str("email", login.Email).Msg("Failed to revoke tokens after reset")
	}
	return nil
}

// ChangePassword changes the password of an authenticated account.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	login, err := s.logins.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	current, err := s.decrypter.Decrypt(req.CurrentPassword)
	if err != nil {
		current = req.CurrentPassword
	}
	if !auth.CheckPassword(login.Password, current) {
		return apperrors.ErrInvalidCredentials
	}

	next, err := s.decrypter.Decrypt(req.NewPassword)
	if err != nil {
		next = req.NewPassword
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.logins.UpdatePassword(ctx, login.ID, hash)
}

// normalizeAnswer makes security answer comparison whitespace and case
// insensitive.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
