package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/filestorage"
)

type fakeDocumentStore struct {
	docs      map[uuid.UUID]*models.Document
	createErr error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: make(map[uuid.UUID]*models.Document)}
}

func (f *fakeDocumentStore) Create(ctx context.Context, doc *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	return doc, nil
}

func (f *fakeDocumentStore) UpdateMetadata(ctx context.Context, id uuid.UUID, fileName string, tags, sharedWith models.StringList) error {
	doc, ok := f.docs[id]
	if !ok {
		return apperrors.ErrDocumentNotFound
	}
	doc.FileName = fileName
	doc.Tags = tags
	doc.SharedWith = sharedWith
	return nil
}

func (f *fakeDocumentStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentStore) List(ctx context.Context, filter *dto.DocumentListFilter, page, pageSize int) ([]*models.Document, int64, error) {
	out := make([]*models.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, int64(len(out)), nil
}

// trackingFileStorage records deletions on top of the stub behavior.
type trackingFileStorage struct {
	stubFileStorage
	deleted []string
}

func (t *trackingFileStorage) DeleteFile(filePath string) error {
	t.deleted = append(t.deleted, filePath)
	return nil
}

func newDocumentFixture() (*DocumentService, *fakeDocumentStore, *trackingFileStorage) {
	store := newFakeDocumentStore()
	storage := &trackingFileStorage{}
	return NewDocumentService(store, storage, zerolog.Nop()), store, storage
}

func uploadHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 128}
}

func TestUploadDocument(t *testing.T) {
	svc, store, _ := newDocumentFixture()
	uploader := uuid.New()

	doc, err := svc.Upload(context.Background(), uploader, uploadHeader("handbook.pdf"), &dto.UploadDocumentRequest{
		Tags:       "onboarding, policy",
		SharedWith: "ada@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "handbook.pdf", doc.FileName)
	assert.Equal(t, uploader, doc.UploadedBy)
	assert.Equal(t, models.StringList{"onboarding", "policy"}, doc.Tags)
	assert.Len(t, store.docs, 1)
}

func TestUploadCleansUpFileWhenMetadataFails(t *testing.T) {
	svc, store, storage := newDocumentFixture()
	store.createErr = errors.New("insert failed")

	_, err := svc.Upload(context.Background(), uuid.New(), uploadHeader("handbook.pdf"), &dto.UploadDocumentRequest{})
	require.Error(t, err)
	assert.Len(t, storage.deleted, 1)
}

func TestDocumentFilePath(t *testing.T) {
	svc, _, _ := newDocumentFixture()

	doc, err := svc.Upload(context.Background(), uuid.New(), uploadHeader("handbook.pdf"), &dto.UploadDocumentRequest{})
	require.NoError(t, err)

	path, name, err := svc.FilePath(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "handbook.pdf", name)
	assert.Equal(t, doc.FileURL, path)
}

func TestUpdateDocumentMetadata(t *testing.T) {
	svc, _, _ := newDocumentFixture()

	doc, err := svc.Upload(context.Background(), uuid.New(), uploadHeader("handbook.pdf"), &dto.UploadDocumentRequest{})
	require.NoError(t, err)

	name := "employee-handbook.pdf"
	tags := []string{"hr"}
	updated, err := svc.Update(context.Background(), doc.ID, &dto.UpdateDocumentRequest{
		FileName: &name,
		Tags:     &tags,
	})
	require.NoError(t, err)

	assert.Equal(t, "employee-handbook.pdf", updated.FileName)
	assert.Equal(t, models.StringList{"hr"}, updated.Tags)
}

func TestDeleteDocumentRemovesFile(t *testing.T) {
	svc, store, storage := newDocumentFixture()

	doc, err := svc.Upload(context.Background(), uuid.New(), uploadHeader("handbook.pdf"), &dto.UploadDocumentRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	assert.Empty(t, store.docs)
	assert.Len(t, storage.deleted, 1)
}

var _ filestorage.FileStorage = (*trackingFileStorage)(nil)
