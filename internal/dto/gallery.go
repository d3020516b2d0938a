package dto

import "github.com/mechgenz/mechgenz-api/internal/models"

// GalleryListResponse returns slots keyed by slot ID, the shape the
// admin panel consumes.
type GalleryListResponse struct {
	Images     map[string]models.GalleryImage `json:"images"`
	TotalCount int                            `json:"total_count"`
}

// UpdateImageMetadataRequest edits a slot's display name and description.
type UpdateImageMetadataRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UploadImageResponse acknowledges a replaced slot image.
type UploadImageResponse struct {
	ImageID  string `json:"image_id"`
	NewURL   string `json:"new_url"`
	Filename string `json:"filename"`
}

// ResetImageResponse acknowledges a slot reverted to its default URL.
type ResetImageResponse struct {
	ImageID    string `json:"image_id"`
	DefaultURL string `json:"default_url"`
}

// MissingFileReport describes gallery slots whose current URL points at
// a file that is no longer on disk.
type MissingFileReport struct {
	ImageID    string `json:"image_id"`
	Filename   string `json:"filename"`
	CurrentURL string `json:"current_url,omitempty"`
	DefaultURL string `json:"default_url,omitempty"`
}

// FixMissingFilesResponse summarises a repair pass over the gallery.
type FixMissingFilesResponse struct {
	FixedCount   int                 `json:"fixed_count"`
	MissingFiles []MissingFileReport `json:"missing_files"`
	Message      string              `json:"message"`
}

// ExistingFileReport describes a gallery file confirmed on disk.
type ExistingFileReport struct {
	ImageID  string `json:"image_id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// CheckMissingFilesResponse is the read-only audit of local gallery files.
type CheckMissingFilesResponse struct {
	MissingFilesCount  int                  `json:"missing_files_count"`
	ExistingFilesCount int                  `json:"existing_files_count"`
	MissingFiles       []MissingFileReport  `json:"missing_files"`
	ExistingFiles      []ExistingFileReport `json:"existing_files"`
}

// CategoriesResponse lists the distinct gallery categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
