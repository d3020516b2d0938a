package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mechgenz/mechgenz-api/internal/models"
)

// GalleryRepository handles website image slot persistence.
type GalleryRepository struct {
	db *sqlx.DB
}

// NewGalleryRepository constructs the repository.
func NewGalleryRepository(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// Count returns the number of slot documents.
func (r *GalleryRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM website_images`); err != nil {
		return 0, fmt.Errorf("count gallery images: %w", err)
	}
	return count, nil
}

// SeedDefaults inserts the default slot catalog.
func (r *GalleryRepository) SeedDefaults(ctx context.Context, images []models.GalleryImage) error {
	const query = `INSERT INTO website_images
	(id, name, description, current_url, default_url, locations, recommended_size, category, created_at, updated_at)
	VALUES (:id, :name, :description, :current_url, :default_url, :locations, :recommended_size, :category, :created_at, :updated_at)
	ON CONFLICT (id) DO NOTHING`
	for i := range images {
		if _, err := r.db.NamedExecContext(ctx, query, &images[i]); err != nil {
			return fmt.Errorf("seed gallery image %s: %w", images[i].ID, err)
		}
	}
	return nil
}

// List returns every slot.
func (r *GalleryRepository) List(ctx context.Context) ([]models.GalleryImage, error) {
	const query = `SELECT id, name, description, current_url, default_url, locations, recommended_size, category, created_at, updated_at
	FROM website_images ORDER BY id`
	var images []models.GalleryImage
	if err := r.db.SelectContext(ctx, &images, query); err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

// GetByID retrieves one slot.
func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	const query = `SELECT id, name, description, current_url, default_url, locations, recommended_size, category, created_at, updated_at
	FROM website_images WHERE id = $1`
	var image models.GalleryImage
	if err := r.db.GetContext(ctx, &image, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	return &image, nil
}

// Categories returns the distinct category tags in sorted order.
func (r *GalleryRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.SelectContext(ctx, &categories,
		`SELECT DISTINCT category FROM website_images ORDER BY category`); err != nil {
		return nil, fmt.Errorf("list gallery categories: %w", err)
	}
	return categories, nil
}

// UpdateCurrentURL points a slot at a new image URL.
func (r *GalleryRepository) UpdateCurrentURL(ctx context.Context, id, url string, updatedAt time.Time) error {
	const query = `UPDATE website_images SET current_url = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, url, updatedAt)
	if err != nil {
		return fmt.Errorf("update gallery image url: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check gallery url update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateMetadata edits a slot's display name and description.
func (r *GalleryRepository) UpdateMetadata(ctx context.Context, id, name, description string, updatedAt time.Time) error {
	const query = `UPDATE website_images SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, name, description, updatedAt)
	if err != nil {
		return fmt.Errorf("update gallery metadata: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check gallery metadata rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a slot document entirely.
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM website_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check gallery delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteAll clears the collection ahead of a reinitialise.
func (r *GalleryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM website_images`); err != nil {
		return fmt.Errorf("clear gallery images: %w", err)
	}
	return nil
}
