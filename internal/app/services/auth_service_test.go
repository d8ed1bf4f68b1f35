package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/auth"
	"github.com/internhub/internhub/internal/pkg/otp"
)

type fakeLoginStore struct {
	logins map[string]*models.Login

	failedAttempts int
	lockoutUntil   *time.Time
	resetID        uuid.UUID
	resetToken     string
	resetExpiry    time.Time
	updatedHash    string
}

func (f *fakeLoginStore) GetByEmail(_ context.Context, email string) (*models.Login, error) {
	login, ok := f.logins[email]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	return login, nil
}

func (f *fakeLoginStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Login, error) {
	for _, login := range f.logins {
		if login.UserID == userID {
			return login, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeLoginStore) RecordFailedAttempt(_ context.Context, id uuid.UUID, attempts int, lockoutUntil *time.Time) error {
	f.failedAttempts = attempts
	f.lockoutUntil = lockoutUntil
	for _, login := range f.logins {
		if login.ID == id {
			login.FailedAttempts = attempts
			login.LockoutUntil = lockoutUntil
		}
	}
	return nil
}

func (f *fakeLoginStore) ResetFailedAttempts(_ context.Context, id uuid.UUID) error {
	for _, login := range f.logins {
		if login.ID == id {
			login.FailedAttempts = 0
			login.LockoutUntil = nil
		}
	}
	return nil
}

func (f *fakeLoginStore) SetResetToken(_ context.Context, id uuid.UUID, token string, expiry time.Time) error {
	f.resetID = id
	f.resetToken = token
	f.resetExpiry = expiry
	return nil
}

func (f *fakeLoginStore) GetByResetToken(_ context.Context, token string) (*models.Login, error) {
	if token != f.resetToken || f.resetToken == "" {
		return nil, apperrors.ErrInvalidPasswordResetToken
	}
	for _, login := range f.logins {
		if login.ID == f.resetID {
			return login, nil
		}
	}
	return nil, apperrors.ErrInvalidPasswordResetToken
}

func (f *fakeLoginStore) UpdatePassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	f.updatedHash = hashedPassword
	for _, login := range f.logins {
		if login.ID == id {
			login.Password = hashedPassword
		}
	}
	return nil
}

type fakeTokenStore struct {
	created map[string]uuid.UUID
	revoked map[string]bool

	revokedAllFor []uuid.UUID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{created: map[string]uuid.UUID{}, revoked: map[string]bool{}}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID uuid.UUID, _ time.Time) error {
	f.created[token] = userID
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (uuid.UUID, time.Time, bool, error) {
	userID, ok := f.created[token]
	if !ok {
		return uuid.Nil, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return userID, time.Now().Add(time.Hour), f.revoked[token], nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID uuid.UUID) error {
	f.revokedAllFor = append(f.revokedAllFor, userID)
	return nil
}

type fakeInternSecurityStore struct {
	interns map[string]*models.Intern

	savedQuestions [3]uuid.UUID
	savedHashes    [3]string
}

func (f *fakeInternSecurityStore) GetByID(_ context.Context, id uuid.UUID) (*models.Intern, error) {
	for _, intern := range f.interns {
		if intern.ID == id {
			return intern, nil
		}
	}
	return nil, apperrors.ErrInternNotFound
}

func (f *fakeInternSecurityStore) GetByEmail(_ context.Context, email string) (*models.Intern, error) {
	intern, ok := f.interns[email]
	if !ok {
		return nil, apperrors.ErrInternNotFound
	}
	return intern, nil
}

func (f *fakeInternSecurityStore) UpdateSecurityQuestions(_ context.Context, _ uuid.UUID, questions [3]uuid.UUID, hashedAnswers [3]string) error {
	f.savedQuestions = questions
	f.savedHashes = hashedAnswers
	return nil
}

type fakeQuestionStore struct {
	questions map[uuid.UUID]*models.SecurityQuestion
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id uuid.UUID) (*models.SecurityQuestion, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return q, nil
}

func (f *fakeQuestionStore) List(_ context.Context) ([]*models.SecurityQuestion, error) {
	out := make([]*models.SecurityQuestion, 0, len(f.questions))
	for _, q := range f.questions {
		out = append(out, q)
	}
	return out, nil
}

// plainDecrypter passes passwords through untouched, standing in for clients
// that skip client-side encryption.
type plainDecrypter struct{}

func (plainDecrypter) Decrypt(encoded string) (string, error) { return encoded, nil }
func (plainDecrypter) PublicKeyPEM() (string, error)          { return "PEM", nil }

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthFixture(t *testing.T, password string) (*AuthService, *fakeLoginStore, *fakeTokenStore, *fakeInternSecurityStore, *fakeQuestionStore) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	userID := uuid.New()
	logins := &fakeLoginStore{logins: map[string]*models.Login{
		"intern@example.com": {
			ID:       uuid.New(),
			Email:    "intern@example.com",
			Password: hash,
			Role:     models.RoleIntern,
			UserID:   userID,
		},
	}}
	tokens := newFakeTokenStore()
	interns := &fakeInternSecurityStore{interns: map[string]*models.Intern{}}
	questions := &fakeQuestionStore{questions: map[uuid.UUID]*models.SecurityQuestion{}}

	svc := NewAuthService(
		logins, tokens, interns, questions,
		newTestJWTService(), plainDecrypter{}, otp.NewCache(time.Minute),
		noopEmailSender{}, zerolog.Nop(),
		3, 15*time.Minute, time.Hour,
	)
	return svc, logins, tokens, interns, questions
}

func TestLoginSuccess(t *testing.T) {
	svc, _, tokens, _, _ := newAuthFixture(t, "Correct123!")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "intern@example.com",
		Password: "Correct123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, string(models.RoleIntern), resp.Role)
	assert.Contains(t, tokens.created, resp.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, logins, _, _, _ := newAuthFixture(t, "Correct123!")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "intern@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, 1, logins.failedAttempts)
	assert.Nil(t, logins.lockoutUntil)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	svc, logins, _, _, _ := newAuthFixture(t, "Correct123!")
	ctx := context.Background()
	req := &dto.LoginRequest{Email: "intern@example.com", Password: "wrong"}

	_, err := svc.Login(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Third failure hits the limit and locks the account.
	_, err = svc.Login(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
	require.NotNil(t, logins.lockoutUntil)

	// Even the right password is rejected while locked.
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "intern@example.com", Password: "Correct123!"})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestLoginSuccessClearsFailureCounter(t *testing.T) {
	svc, logins, _, _, _ := newAuthFixture(t, "Correct123!")
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "intern@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "intern@example.com", Password: "Correct123!"})
	require.NoError(t, err)
	assert.Equal(t, 0, logins.logins["intern@example.com"].FailedAttempts)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, tokens, _, _ := newAuthFixture(t, "Correct123!")
	ctx := context.Background()

	first, err := svc.Login(ctx, &dto.LoginRequest{Email: "intern@example.com", Password: "Correct123!"})
	require.NoError(t, err)

	second, err := svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.True(t, tokens.revoked[first.RefreshToken])

	// The rotated-out token cannot be used again.
	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestValidateOTPMintsResetToken(t *testing.T) {
	svc, logins, _, _, _ := newAuthFixture(t, "Correct123!")
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, "intern@example.com"))

	code, err := svc.otpCache.Generate("intern@example.com")
	require.NoError(t, err)

	token, err := svc.ValidateOTP(ctx, "intern@example.com", code)
	require.NoError(t, err)
	assert.Equal(t, token, logins.resetToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), logins.resetExpiry, time.Minute)

	// Codes are single use.
	_, err = svc.ValidateOTP(ctx, "intern@example.com", code)
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestOTPForUnregisteredEmail(t *testing.T) {
	svc, logins, _, _, _ := newAuthFixture(t, "Correct123!")
	ctx := context.Background()

	// Addresses without an account can still verify ownership.
	require.NoError(t, svc.RequestOTP(ctx, "newcomer@example.com"))

	code, err := svc.otpCache.Generate("newcomer@example.com")
	require.NoError(t, err)

	token, err := svc.ValidateOTP(ctx, "newcomer@example.com", code)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, logins.resetToken)

	// The code is consumed even when no account exists.
	_, err = svc.ValidateOTP(ctx, "newcomer@example.com", code)
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestSetSecurityQuestions(t *testing.T) {
	svc, _, _, interns, questions := newAuthFixture(t, "Correct123!")
	ctx := context.Background()

	qIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range qIDs {
		questions.questions[id] = &models.SecurityQuestion{ID: id, Question: "q"}
	}

	pairs := []dto.SecurityQAPair{
		{QuestionID: qIDs[0], Answer: "  Rex "},
		{QuestionID: qIDs[1], Answer: "Springfield"},
		{QuestionID: qIDs[2], Answer: "Blue"},
	}
	require.NoError(t, svc.SetSecurityQuestions(ctx, uuid.New(), pairs))

	assert.Equal(t, qIDs[0], interns.savedQuestions[0])
	// Answers are stored as bcrypt hashes of the normalized form.
	assert.True(t, auth.CheckPassword(interns.savedHashes[0], "rex"))
	assert.False(t, auth.CheckPassword(interns.savedHashes[0], "Rex Doe"))
}

func TestSetSecurityQuestionsRejectsDuplicates(t *testing.T) {
	svc, _, _, _, questions := newAuthFixture(t, "Correct123!")

	id := uuid.New()
	questions.questions[id] = &models.SecurityQuestion{ID: id, Question: "q"}

	pairs := []dto.SecurityQAPair{
		{QuestionID: id, Answer: "a"},
		{QuestionID: id, Answer: "b"},
		{QuestionID: id, Answer: "c"},
	}
	err := svc.SetSecurityQuestions(context.Background(), uuid.New(), pairs)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func securityFixture(t *testing.T, svc *AuthService, interns *fakeInternSecurityStore) []uuid.UUID {
	t.Helper()
	qIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	answers := []string{"rex", "springfield", "blue"}

	var hashes [3]*string
	for i, answer := range answers {
		hash, err := auth.HashPassword(answer)
		require.NoError(t, err)
		h := hash
		hashes[i] = &h
	}

	interns.interns["intern@example.com"] = &models.Intern{
		ID:                uuid.New(),
		Email:             "intern@example.com",
		SecurityQuestion1: &qIDs[0],
		SecurityAnswer1:   hashes[0],
		SecurityQuestion2: &qIDs[1],
		SecurityAnswer2:   hashes[1],
		SecurityQuestion3: &qIDs[2],
		SecurityAnswer3:   hashes[2],
	}
	return qIDs
}

func TestVerifySecurityQuestionsOrderIndependent(t *testing.T) {
	svc, logins, _, interns, _ := newAuthFixture(t, "Correct123!")
	qIDs := securityFixture(t, svc, interns)

	// Pairs submitted in a different order than stored still match.
	token, err := svc.VerifySecurityQuestions(context.Background(), &dto.VerifySecurityQuestionsRequest{
		Email: "intern@example.com",
		Pairs: []dto.SecurityQAPair{
			{QuestionID: qIDs[2], Answer: "Blue"},
			{QuestionID: qIDs[0], Answer: " REX "},
			{QuestionID: qIDs[1], Answer: "Springfield"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, token, logins.resetToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), logins.resetExpiry, time.Minute)
}

func TestVerifySecurityQuestionsWrongAnswer(t *testing.T) {
	svc, logins, _, interns, _ := newAuthFixture(t, "Correct123!")
	qIDs := securityFixture(t, svc, interns)

	_, err := svc.VerifySecurityQuestions(context.Background(), &dto.VerifySecurityQuestionsRequest{
		Email: "intern@example.com",
		Pairs: []dto.SecurityQAPair{
			{QuestionID: qIDs[0], Answer: "rex"},
			{QuestionID: qIDs[1], Answer: "springfield"},
			{QuestionID: qIDs[2], Answer: "green"},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrSecurityAnswersMismatch)
	assert.Empty(t, logins.resetToken)
}

func TestVerifySecurityQuestionsUnknownEmail(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture(t, "Correct123!")

	// Unknown emails get the same mismatch error, not a not-found.
	_, err := svc.VerifySecurityQuestions(context.Background(), &dto.VerifySecurityQuestionsRequest{
		Email: "nobody@example.com",
		Pairs: []dto.SecurityQAPair{
			{QuestionID: uuid.New(), Answer: "a"},
			{QuestionID: uuid.New(), Answer: "b"},
			{QuestionID: uuid.New(), Answer: "c"},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrSecurityAnswersMismatch)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	svc, logins, tokens, _, _ := newAuthFixture(t, "Correct123!")
	ctx := context.Background()

	login := logins.logins["intern@example.com"]
	token, err := svc.mintResetToken(ctx, login)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, token, "NewPassw0rd!"))
	assert.True(t, auth.CheckPassword(logins.updatedHash, "NewPassw0rd!"))
	assert.Contains(t, tokens.revokedAllFor, login.UserID)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture(t, "Correct123!")
	err := svc.ResetPassword(context.Background(), "bogus", "NewPassw0rd!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
}

func TestChangePassword(t *testing.T) {
	svc, logins, _, _, _ := newAuthFixture(t, "Correct123!")
	ctx := context.Background()
	userID := logins.logins["intern@example.com"].UserID

	err := svc.ChangePassword(ctx, userID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "NewPassw0rd!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, userID, &dto.ChangePasswordRequest{
		CurrentPassword: "Correct123!",
		NewPassword:     "NewPassw0rd!",
	})
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(logins.updatedHash, "NewPassw0rd!"))
}
