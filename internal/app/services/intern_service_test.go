package services

import (
	"context"
	"strings"
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
)

type fakeInternRepo struct {
	interns map[uuid.UUID]*models.Intern
}

func newFakeInternRepo() *fakeInternRepo {
	return &fakeInternRepo{interns: make(map[uuid.UUID]*models.Intern)}
}

func (f *fakeInternRepo) Create(ctx context.Context, intern *models.Intern) error {
	if intern.ID == uuid.Nil {
		intern.ID = uuid.New()
	}
	f.interns[intern.ID] = intern
	return nil
}

func (f *fakeInternRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Intern, error) {
	intern, ok := f.interns[id]
	if !ok {
		return nil, apperrors.ErrInternNotFound
	}
	return intern, nil
}

func (f *fakeInternRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, intern := range f.interns {
		if strings.EqualFold(intern.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInternRepo) EnrollmentExists(ctx context.Context, enrollmentNumber string) (bool, error) {
	for _, intern := range f.interns {
		if intern.EnrollmentNumber == enrollmentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInternRepo) Update(ctx context.Context, intern *models.Intern) error {
	if _, ok := f.interns[intern.ID]; !ok {
		return apperrors.ErrInternNotFound
	}
	f.interns[intern.ID] = intern
	return nil
}

func (f *fakeInternRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.interns, id)
	return nil
}

func (f *fakeInternRepo) List(ctx context.Context, filter *dto.InternListFilter, page, pageSize int) ([]*models.Intern, int64, error) {
	out := make([]*models.Intern, 0, len(f.interns))
	for _, intern := range f.interns {
		out = append(out, intern)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInternRepo) GetAll(ctx context.Context) ([]*models.Intern, error) {
	out := make([]*models.Intern, 0, len(f.interns))
	for _, intern := range f.interns {
		out = append(out, intern)
	}
	return out, nil
}

type fakeLoginLifecycle struct {
	created []*models.Login
	deleted []uuid.UUID
}

func (f *fakeLoginLifecycle) Create(ctx context.Context, login *models.Login) error {
	if login.ID == uuid.Nil {
		login.ID = uuid.New()
	}
	f.created = append(f.created, login)
	return nil
}

func (f *fakeLoginLifecycle) Delete(ctx context.Context, userID uuid.UUID) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

func newInternFixture() (*InternService, *fakeInternRepo, *fakeLoginLifecycle) {
	repo := newFakeInternRepo()
	logins := &fakeLoginLifecycle{}
	svc := NewInternService(repo, logins, stubFileStorage{}, zerolog.Nop())
	return svc, repo, logins
}

func createInternRequest(email string) *dto.CreateInternRequest {
	return &dto.CreateInternRequest{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            email,
		EnrollmentNumber: "ENR-2001",
		University:       "Analytical Engine University",
		Department:       "Engineering",
		Skills:           []string{"go", "sql"},
		Password:         "Sup3rSecret!",
	}
}

func TestCreateInternCreatesLogin(t *testing.T) {
	svc, _, logins := newInternFixture()

	intern, err := svc.Create(context.Background(), createInternRequest("ada@example.com"))
	require.NoError(t, err)

	assert.Equal(t, models.InternshipActive, intern.Status)
	require.NotNil(t, intern.StartDate)

	require.Len(t, logins.created, 1)
	login := logins.created[0]
	assert.Equal(t, models.RoleIntern, login.Role)
	assert.Equal(t, intern.ID, login.UserID)
	assert.True(t, auth.CheckPassword(login.Password, "Sup3rSecret!"))
	assert.Equal(t, login.Password, intern.Password)
}

func TestCreateInternDuplicateEmail(t *testing.T) {
	svc, _, _ := newInternFixture()
	_, err := svc.Create(context.Background(), createInternRequest("ada@example.com"))
	require.NoError(t, err)

	req := createInternRequest("ADA@example.com")
	req.EnrollmentNumber = "ENR-2002"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestCreateInternDuplicateEnrollment(t *testing.T) {
	svc, _, _ := newInternFixture()
	_, err := svc.Create(context.Background(), createInternRequest("ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createInternRequest("grace@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentExists)
}

func TestUpdateInternPartialFields(t *testing.T) {
	svc, _, _ := newInternFixture()
	intern, err := svc.Create(context.Background(), createInternRequest("ada@example.com"))
	require.NoError(t, err)

	status := "COMPLETED"
	endDate := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), intern.ID, &dto.UpdateInternRequest{
		Status:  &status,
		EndDate: &endDate,
	})
	require.NoError(t, err)

	assert.Equal(t, models.InternshipCompleted, updated.Status)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Engineering", updated.Department)
}

func TestDeleteInternRemovesLogin(t *testing.T) {
	svc, repo, logins := newInternFixture()
	intern, err := svc.Create(context.Background(), createInternRequest("ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), intern.ID))

	assert.Equal(t, []uuid.UUID{intern.ID}, logins.deleted)
	assert.Empty(t, repo.interns)
}

func TestDeleteUnknownIntern(t *testing.T) {
	svc, _, logins := newInternFixture()

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrInternNotFound)
	assert.Empty(t, logins.deleted)
}

func TestExportInternsCSV(t *testing.T) {
	svc, _, _ := newInternFixture()
	_, err := svc.Create(context.Background(), createInternRequest("ada@example.com"))
	require.NoError(t, err)

	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID,First Name,Last Name,Email"))
	assert.Contains(t, lines[1], "ada@example.com")
	assert.Contains(t, lines[1], "go; sql")
	assert.Contains(t, lines[1], "ACTIVE")
}
