package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/auth"
)

type fakeAdminStore struct {
	admins map[uuid.UUID]*models.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: make(map[uuid.UUID]*models.Admin)}
}

func (f *fakeAdminStore) Create(_ context.Context, admin *models.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	f.admins[admin.ID] = admin
	return nil
}

func (f *fakeAdminStore) GetByID(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	admin, ok := f.admins[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return admin, nil
}

func (f *fakeAdminStore) List(_ context.Context) ([]*models.Admin, error) {
	out := make([]*models.Admin, 0, len(f.admins))
	for _, admin := range f.admins {
		out = append(out, admin)
	}
	return out, nil
}

func (f *fakeAdminStore) Update(_ context.Context, admin *models.Admin) error {
	if _, ok := f.admins[admin.ID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	f.admins[admin.ID] = admin
	return nil
}

func (f *fakeAdminStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.admins[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.admins, id)
	return nil
}

func (f *fakeAdminStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, admin := range f.admins {
		if strings.EqualFold(admin.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func newAdminFixture() (*AdminService, *fakeAdminStore, *fakeLoginLifecycle) {
	store := newFakeAdminStore()
	logins := &fakeLoginLifecycle{}
	return NewAdminService(store, logins, zerolog.Nop()), store, logins
}

func TestCreateAdminCreatesLogin(t *testing.T) {
	svc, _, logins := newAdminFixture()

	admin, err := svc.Create(context.Background(), &dto.CreateAdminRequest{
		Username: "grace",
		Email:    "grace@example.com",
		Password: "Adm1nSecret!",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, admin.Role)
	require.Len(t, logins.created, 1)
	login := logins.created[0]
	assert.Equal(t, models.RoleAdmin, login.Role)
	assert.Equal(t, admin.ID, login.UserID)
	assert.Equal(t, admin.Password, login.Password)
	assert.True(t, auth.CheckPassword(login.Password, "Adm1nSecret!"))
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	svc, _, _ := newAdminFixture()
	_, err := svc.Create(context.Background(), &dto.CreateAdminRequest{
		Username: "grace", Email: "grace@example.com", Password: "Adm1nSecret!",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &dto.CreateAdminRequest{
		Username: "grace2", Email: "GRACE@example.com", Password: "Adm1nSecret!",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUpdateAdminPartialFields(t *testing.T) {
	svc, _, _ := newAdminFixture()
	admin, err := svc.Create(context.Background(), &dto.CreateAdminRequest{
		Username: "grace", Email: "grace@example.com", Password: "Adm1nSecret!",
	})
	require.NoError(t, err)

	username := "grace.h"
	updated, err := svc.Update(context.Background(), admin.ID, &dto.UpdateAdminRequest{
		Username: &username,
	})
	require.NoError(t, err)
	assert.Equal(t, "grace.h", updated.Username)
	assert.Equal(t, "grace@example.com", updated.Email)
}

func TestUpdateAdminRejectsTakenEmail(t *testing.T) {
	svc, _, _ := newAdminFixture()
	_, err := svc.Create(context.Background(), &dto.CreateAdminRequest{
		Username: "grace", Email: "grace@example.com", Password: "Adm1nSecret!",
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &dto.CreateAdminRequest{
		Username: "alan", Email: "alan@example.com", Password: "Adm1nSecret!",
	})
	require.NoError(t, err)

	email := "grace@example.com"
	_, err = svc.Update(context.Background(), second.ID, &dto.UpdateAdminRequest{Email: &email})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestDeleteAdminRemovesLogin(t *testing.T) {
	svc, store, logins := newAdminFixture()
	admin, err := svc.Create(context.Background(), &dto.CreateAdminRequest{
		Username: "grace", Email: "grace@example.com", Password: "Adm1nSecret!",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), admin.ID))
	assert.Empty(t, store.admins)
	assert.Equal(t, []uuid.UUID{admin.ID}, logins.deleted)

	err = svc.Delete(context.Background(), admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
