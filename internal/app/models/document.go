package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is uploaded file metadata. Physical bytes live on disk under
// StoredName, decoupled from the logical FileName.
type Document struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	FileName   string     `json:"fileName" db:"file_name"`
	StoredName string     `json:"-" db:"stored_name"`
	FileURL    string     `json:"fileUrl" db:"file_url"`
	MimeType   string     `json:"mimeType" db:"mime_type"`
	FileSize   int64      `json:"fileSize" db:"file_size"`
	UploadedBy uuid.UUID  `json:"uploadedBy" db:"uploaded_by"`
	Tags       StringList `json:"tags" db:"tags"`
	SharedWith StringList `json:"sharedWith" db:"shared_with"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
