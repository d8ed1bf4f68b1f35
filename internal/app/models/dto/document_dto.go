package dto

// UploadDocumentRequest is the multipart form for a document upload; the
// file itself arrives as a file part.
type UploadDocumentRequest struct {
	Tags       string `form:"tags"`       // comma-separated
	SharedWith string `form:"sharedWith"` // comma-separated intern emails
}

// UpdateDocumentRequest updates document metadata
type UpdateDocumentRequest struct {
	FileName   *string   `json:"fileName,omitempty" validate:"omitempty,max=255"`
	Tags       *[]string `json:"tags,omitempty"`
	SharedWith *[]string `json:"sharedWith,omitempty"`
}

// DocumentListFilter carries list query parameters
type DocumentListFilter struct {
	Search     string
	Tag        string
	UploadedBy string
	SortBy     string
	SortOrder  string
}
