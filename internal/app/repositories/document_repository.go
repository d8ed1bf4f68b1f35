package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// DocumentRepository handles database operations for document metadata.
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, file_name, stored_name, file_url, mime_type, file_size,
		uploaded_by, tags, shared_with, created_at, updated_at`

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID, &doc.FileName, &doc.StoredName, &doc.FileURL, &doc.MimeType,
		&doc.FileSize, &doc.UploadedBy, &doc.Tags, &doc.SharedWith,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create inserts document metadata after the file bytes are stored.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, file_name, stored_name, file_url, mime_type, file_size,
			uploaded_by, tags, shared_with)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query,
		doc.ID, doc.FileName, doc.StoredName, doc.FileURL, doc.MimeType,
		doc.FileSize, doc.UploadedBy, doc.Tags, doc.SharedWith,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document by id.
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// UpdateMetadata replaces the logical name, tag and share lists on a
// document. The stored file is untouched.
func (r *DocumentRepository) UpdateMetadata(ctx context.Context, id uuid.UUID, fileName string, tags, sharedWith models.StringList) error {
	query := `UPDATE documents SET file_name = $2, tags = $3, shared_with = $4, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, fileName, tags, sharedWith)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Delete removes document metadata. The caller deletes the file bytes.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

func mapDocumentSortField(field string) string {
	switch strings.ToLower(field) {
	case "filename", "file_name":
		return "file_name"
	case "filesize", "file_size":
		return "file_size"
	case "mimetype", "mime_type":
		return "mime_type"
	default:
		return "created_at"
	}
}

// List returns documents matching the filter with a total count.
// Tag matching goes through the JSON text of the tags column.
func (r *DocumentRepository) List(ctx context.Context, filter *dto.DocumentListFilter, page, pageSize int) ([]*models.Document, int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			b = b.Where(sq.ILike{"file_name": "%" + filter.Search + "%"})
		}
		if filter.Tag != "" {
			b = b.Where(sq.ILike{"tags": "%\"" + filter.Tag + "\"%"})
		}
		if filter.UploadedBy != "" {
			if uploaderID, err := uuid.Parse(filter.UploadedBy); err == nil {
				b = b.Where(sq.Eq{"uploaded_by": uploaderID})
			}
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("documents")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build document count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query, args, err := applyFilter(psql.Select(documentColumns).From("documents")).
		OrderBy(mapDocumentSortField(filter.SortBy) + " " + direction).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build document list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read documents: %w", err)
	}
	return docs, total, nil
}
