package models

import (
	"time"

	"github.com/lib/pq"
)

// GalleryImage is one named image slot rendered on the public site. The
// slot ID is stable and immutable; default_url survives every upload so
// a reset can always restore it.
type GalleryImage struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Description     string         `db:"description" json:"description"`
	CurrentURL      string         `db:"current_url" json:"current_url"`
	DefaultURL      string         `db:"default_url" json:"default_url"`
	Locations       pq.StringArray `db:"locations" json:"locations"`
	RecommendedSize string         `db:"recommended_size" json:"recommended_size"`
	Category        string         `db:"category" json:"category"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// GalleryDeleteType selects between reverting a slot to its default and
// removing the slot document entirely.
type GalleryDeleteType string

const (
	GalleryDeleteImageOnly GalleryDeleteType = "image_only"
	GalleryDeleteComplete  GalleryDeleteType = "complete"
)
