package filestorage

import "mime/multipart"

// SavedFile describes a stored upload. The stored name is a generated UUID,
// decoupled from the logical filename the uploader chose.
type SavedFile struct {
	StoredName string // Generated filename on disk
	URL        string // Accessible URL/path for download
	Size       int64  // Size in bytes
	MimeType   string // MIME type as reported by the upload
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves an upload into the storage root
	SaveFile(fileHeader *multipart.FileHeader) (*SavedFile, error)

	// SaveFileWithPath saves an upload into a subdirectory of the storage root
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*SavedFile, error)

	// DeleteFile removes a stored file given its URL/path; idempotent
	DeleteFile(filePath string) error

	// GetFullPath returns the filesystem path for a stored file URL
	GetFullPath(fileURL string) string
}
