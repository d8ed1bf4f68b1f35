package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/filestorage"
)

type documentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, fileName string, tags, sharedWith models.StringList) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *dto.DocumentListFilter, page, pageSize int) ([]*models.Document, int64, error)
}

// DocumentService implements document upload, sharing and retrieval.
type DocumentService struct {
	documents documentStore
	storage   filestorage.FileStorage
	logger    zerolog.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documents documentStore, storage filestorage.FileStorage, logger zerolog.Logger) *DocumentService {
	return &DocumentService{documents: documents, storage: storage, logger: logger}
}

// Upload stores the file bytes then records metadata.
func (s *DocumentService) Upload(ctx context.Context, uploadedBy uuid.UUID, file *multipart.FileHeader, req *dto.UploadDocumentRequest) (*models.Document, error) {
	saved, err := s.storage.SaveFileWithPath(file, "documents")
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &models.Document{
		FileName:   file.Filename,
		StoredName: saved.StoredName,
		FileURL:    saved.URL,
		MimeType:   saved.MimeType,
		FileSize:   saved.Size,
		UploadedBy: uploadedBy,
		Tags:       splitCommaList(req.Tags),
		SharedWith: splitCommaList(req.SharedWith),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		// Metadata write failed; do not leave the orphan file behind.
		if delErr := s.storage.DeleteFile(s.storage.GetFullPath(saved.URL)); delErr != nil {
			s.logger.Warn().Err(delErr).Str("file", saved.StoredName).Msg("Failed to remove orphan file")
		}
		return nil, err
	}
	return doc, nil
}

// GetByID returns one document's metadata.
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// FilePath resolves the on-disk path for a download.
func (s *DocumentService) FilePath(ctx context.Context, id uuid.UUID) (string, string, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	return s.storage.GetFullPath(doc.FileURL), doc.FileName, nil
}

// List returns documents matching the filter.
func (s *DocumentService) List(ctx context.Context, filter *dto.DocumentListFilter, page, pageSize int) ([]*models.Document, int64, error) {
	return s.documents.List(ctx, filter, page, pageSize)
}

// Update applies a partial metadata update; the stored file is untouched.
func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.FileName != nil && *req.FileName != doc.FileName {
		doc.FileName = *req.FileName
		changed = true
	}
	if req.Tags != nil && !doc.Tags.Equal(*req.Tags) {
		doc.Tags = *req.Tags
		changed = true
	}
	if req.SharedWith != nil && !doc.SharedWith.Equal(*req.SharedWith) {
		doc.SharedWith = *req.SharedWith
		changed = true
	}
	if !changed {
		return doc, nil
	}

	if err := s.documents.UpdateMetadata(ctx, id, doc.FileName, doc.Tags, doc.SharedWith); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes metadata and the stored file.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteFile(s.storage.GetFullPath(doc.FileURL)); err != nil {
		s.logger.Warn().Err(err).Str("file", doc.StoredName).Msg("Failed to delete stored file")
	}
	return nil
}
