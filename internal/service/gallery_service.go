package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

const imageURLPrefix = "/images/"

type galleryStore interface {
	Count(ctx context.Context) (int, error)
	SeedDefaults(ctx context.Context, images []models.GalleryImage) error
	List(ctx context.Context) ([]models.GalleryImage, error)
	GetByID(ctx context.Context, id string) (*models.GalleryImage, error)
	Categories(ctx context.Context) ([]string, error)
	UpdateCurrentURL(ctx context.Context, id, url string, updatedAt time.Time) error
	UpdateMetadata(ctx context.Context, id, name, description string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type galleryStager interface {
	StageGalleryImage(slotID string, file dto.UploadedFile) (string, error)
}

type galleryStorage interface {
	Delete(name string) error
	Exists(name string) bool
	Size(name string) (int64, error)
}

// staticCategories is served when the database is unreachable so the
// public site keeps rendering its category filters.
var staticCategories = []string{"hero", "about", "services", "portfolio", "contact", "team", "branding", "testimonials", "trading"}

// GalleryService manages the fixed catalog of website image slots.
type GalleryService struct {
	repo    galleryStore
	stager  galleryStager
	storage galleryStorage
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewGalleryService constructs the service.
func NewGalleryService(repo galleryStore, stager galleryStager, storage galleryStorage, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *GalleryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &GalleryService{repo: repo, stager: stager, storage: storage, cache: cache, metrics: metrics, logger: logger, ttl: cacheTTL}
}

// EnsureSeeded populates the slot catalog on first boot. An already
// populated collection is left untouched.
func (s *GalleryService) EnsureSeeded(ctx context.Context) error {
	if s.repo == nil {
		return appErrors.ErrServiceUnavailable
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count gallery images")
	}
	if count > 0 {
		return nil
	}
	if err := s.repo.SeedDefaults(ctx, DefaultGalleryImages()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed gallery images")
	}
	s.logger.Info("gallery initialized with default images", zap.Int("count", len(DefaultGalleryImages())))
	return nil
}

// List returns every slot keyed by slot ID. A missing database yields
// an empty gallery rather than an error so the admin panel still loads.
func (s *GalleryService) List(ctx context.Context) (*dto.GalleryListResponse, error) {
	empty := &dto.GalleryListResponse{Images: map[string]models.GalleryImage{}}
	if s.repo == nil {
		return empty, nil
	}

	cached := &dto.GalleryListResponse{}
	if hit, _ := s.cache.Get(ctx, "gallery:list", cached); hit {
		return cached, nil
	}

	start := time.Now()
	images, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list gallery images", zap.Error(err))
		return empty, nil
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("gallery_list", time.Since(start))
	}

	resp := &dto.GalleryListResponse{
		Images:     make(map[string]models.GalleryImage, len(images)),
		TotalCount: len(images),
	}
	for _, img := range images {
		resp.Images[img.ID] = img
	}
	_ = s.cache.Set(ctx, "gallery:list", resp, s.ttl)
	return resp, nil
}

// Get returns one slot.
func (s *GalleryService) Get(ctx context.Context, id string) (*models.GalleryImage, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("image with ID '%s' not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load gallery image")
	}
	return image, nil
}

// Categories returns the distinct slot categories, falling back to the
// static set when the database cannot answer.
func (s *GalleryService) Categories(ctx context.Context) []string {
	if s.repo == nil {
		return staticCategories
	}
	var cached []string
	if hit, _ := s.cache.Get(ctx, "gallery:categories", &cached); hit {
		return cached
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		s.logger.Error("failed to list gallery categories", zap.Error(err))
		return staticCategories
	}
	_ = s.cache.Set(ctx, "gallery:categories", categories, s.ttl)
	return categories
}

// Upload stores a replacement image for a slot and points current_url at
// it. The staged file is removed again if the database update fails. The
// previously uploaded file, if any, is left on disk; a later reset or
// repair pass reclaims it.
func (s *GalleryService) Upload(ctx context.Context, id string, file dto.UploadedFile) (*dto.UploadImageResponse, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	savedName, err := s.stager.StageGalleryImage(id, file)
	if err != nil {
		return nil, err
	}

	newURL := imageURLPrefix + savedName
	if err := s.repo.UpdateCurrentURL(ctx, id, newURL, time.Now().UTC()); err != nil {
		if derr := s.storage.Delete(savedName); derr != nil {
			s.logger.Warn("failed to remove staged gallery image", zap.String("filename", savedName), zap.Error(derr))
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("image with ID '%s' not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update image in database")
	}

	s.invalidate(ctx)
	s.logger.Info("gallery image uploaded", zap.String("image_id", id), zap.String("filename", savedName))
	return &dto.UploadImageResponse{ImageID: id, NewURL: newURL, Filename: savedName}, nil
}

// UpdateMetadata edits a slot's display name and description.
func (s *GalleryService) UpdateMetadata(ctx context.Context, id string, req dto.UpdateImageMetadataRequest) error {
	if s.repo == nil {
		return appErrors.ErrServiceUnavailable
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if err := s.repo.UpdateMetadata(ctx, id, name, strings.TrimSpace(req.Description), time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("image with ID '%s' not found", id))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update image metadata")
	}
	s.invalidate(ctx)
	return nil
}

// Reset reverts a slot to its default URL and removes the uploaded file.
func (s *GalleryService) Reset(ctx context.Context, id string) (*dto.ResetImageResponse, error) {
	image, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.removeLocalFile(image.CurrentURL)

	if err := s.repo.UpdateCurrentURL(ctx, id, image.DefaultURL, time.Now().UTC()); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset image")
	}

	s.invalidate(ctx)
	s.logger.Info("gallery image reset to default", zap.String("image_id", id))
	return &dto.ResetImageResponse{ImageID: id, DefaultURL: image.DefaultURL}, nil
}

// Delete removes a slot's uploaded file and either reverts the slot to
// its default or removes the configuration entirely.
func (s *GalleryService) Delete(ctx context.Context, id string, deleteType models.GalleryDeleteType) (*dto.ResetImageResponse, error) {
	if deleteType != models.GalleryDeleteImageOnly && deleteType != models.GalleryDeleteComplete {
		return nil, appErrors.Clone(appErrors.ErrValidation, "delete_type must be either 'image_only' or 'complete'")
	}
	image, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.removeLocalFile(image.CurrentURL)

	if deleteType == models.GalleryDeleteImageOnly {
		if err := s.repo.UpdateCurrentURL(ctx, id, image.DefaultURL, time.Now().UTC()); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset image")
		}
		s.invalidate(ctx)
		return &dto.ResetImageResponse{ImageID: id, DefaultURL: image.DefaultURL}, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("image with ID '%s' not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete image configuration")
	}
	s.invalidate(ctx)
	s.logger.Info("gallery image configuration deleted", zap.String("image_id", id))
	return &dto.ResetImageResponse{ImageID: id}, nil
}

// FixMissingFiles resets every slot whose local file has disappeared
// back to its default URL.
func (s *GalleryService) FixMissingFiles(ctx context.Context) (*dto.FixMissingFilesResponse, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	images, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list gallery images")
	}

	resp := &dto.FixMissingFilesResponse{MissingFiles: []dto.MissingFileReport{}}
	for _, image := range images {
		filename, local := localImageName(image.CurrentURL)
		if !local || s.storage.Exists(filename) {
			continue
		}
		if err := s.repo.UpdateCurrentURL(ctx, image.ID, image.DefaultURL, time.Now().UTC()); err != nil {
			s.logger.Warn("failed to reset image with missing file", zap.String("image_id", image.ID), zap.Error(err))
			continue
		}
		resp.FixedCount++
		resp.MissingFiles = append(resp.MissingFiles, dto.MissingFileReport{
			ImageID:    image.ID,
			Filename:   filename,
			DefaultURL: image.DefaultURL,
		})
	}
	resp.Message = fmt.Sprintf("Reset %d images with missing files to their default URLs", resp.FixedCount)
	if resp.FixedCount > 0 {
		s.invalidate(ctx)
	}
	return resp, nil
}

// CheckMissingFiles audits local gallery files without changing anything.
func (s *GalleryService) CheckMissingFiles(ctx context.Context) (*dto.CheckMissingFilesResponse, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	images, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list gallery images")
	}

	resp := &dto.CheckMissingFilesResponse{
		MissingFiles:  []dto.MissingFileReport{},
		ExistingFiles: []dto.ExistingFileReport{},
	}
	for _, image := range images {
		filename, local := localImageName(image.CurrentURL)
		if !local {
			continue
		}
		if s.storage.Exists(filename) {
			size, err := s.storage.Size(filename)
			if err != nil {
				s.logger.Warn("failed to stat gallery file", zap.String("filename", filename), zap.Error(err))
			}
			resp.ExistingFiles = append(resp.ExistingFiles, dto.ExistingFileReport{
				ImageID:  image.ID,
				Filename: filename,
				Size:     size,
			})
		} else {
			resp.MissingFiles = append(resp.MissingFiles, dto.MissingFileReport{
				ImageID:    image.ID,
				Filename:   filename,
				CurrentURL: image.CurrentURL,
				DefaultURL: image.DefaultURL,
			})
		}
	}
	resp.MissingFilesCount = len(resp.MissingFiles)
	resp.ExistingFilesCount = len(resp.ExistingFiles)
	return resp, nil
}

// Reinitialize drops the whole catalog and reseeds the defaults.
func (s *GalleryService) Reinitialize(ctx context.Context) error {
	if s.repo == nil {
		return appErrors.ErrServiceUnavailable
	}
	if err := s.repo.DeleteAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear gallery images")
	}
	if err := s.repo.SeedDefaults(ctx, DefaultGalleryImages()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed gallery images")
	}
	s.invalidate(ctx)
	s.logger.Info("gallery reinitialized")
	return nil
}

func (s *GalleryService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, "gallery:*")
}

// removeLocalFile deletes the uploaded file behind a /images/ URL.
// External default URLs are ignored.
func (s *GalleryService) removeLocalFile(currentURL string) {
	filename, local := localImageName(currentURL)
	if !local {
		return
	}
	if err := s.storage.Delete(filename); err != nil {
		s.logger.Warn("failed to delete gallery file", zap.String("filename", filename), zap.Error(err))
	}
}

func localImageName(url string) (string, bool) {
	if !strings.HasPrefix(url, imageURLPrefix) {
		return "", false
	}
	return strings.TrimPrefix(url, imageURLPrefix), true
}
