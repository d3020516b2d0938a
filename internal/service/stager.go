package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

type stagerStorage interface {
	Save(name string, data []byte) error
	Delete(name string) error
}

// StagerConfig carries the file acceptance policy.
type StagerConfig struct {
	MaxFileSize       int64
	AllowedExtensions []string
	ImageExtensions   []string
}

// Stager validates incoming files and writes them to local storage under
// generated names. Client filenames never become storage paths.
type Stager struct {
	storage  stagerStorage
	logger   *zap.Logger
	cfg      StagerConfig
	extSet   map[string]struct{}
	imageSet map[string]struct{}
}

// NewStager constructs a stager with defaults matching the public site's
// upload policy.
func NewStager(storage stagerStorage, logger *zap.Logger, cfg StagerConfig) *Stager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 * 1024 * 1024
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf", ".doc", ".docx", ".txt"}
	}
	if len(cfg.ImageExtensions) == 0 {
		cfg.ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	}
	extSet := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	imageSet := make(map[string]struct{}, len(cfg.ImageExtensions))
	for _, ext := range cfg.ImageExtensions {
		imageSet[strings.ToLower(ext)] = struct{}{}
	}
	return &Stager{storage: storage, logger: logger, cfg: cfg, extSet: extSet, imageSet: imageSet}
}

// StageAttachments persists the accepted subset of the uploaded files and
// returns their references. Zero-byte files are skipped without error;
// anything over the size cap or outside the extension allow-list rejects
// the whole request. On a write failure every file staged so far is
// removed before returning.
func (s *Stager) StageAttachments(files []dto.UploadedFile) (models.AttachmentList, error) {
	refs := make(models.AttachmentList, 0, len(files))
	for _, file := range files {
		if file.Filename == "" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if _, ok := s.extSet[ext]; !ok {
			s.CleanupAttachments(refs)
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("file type %s is not allowed. Allowed types: %s", ext, strings.Join(s.cfg.AllowedExtensions, ", ")))
		}
		if int64(len(file.Content)) > s.cfg.MaxFileSize {
			s.CleanupAttachments(refs)
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("file %s exceeds the %dMB size limit", file.Filename, s.cfg.MaxFileSize/(1024*1024)))
		}
		if len(file.Content) == 0 {
			s.logger.Warn("skipping empty upload", zap.String("filename", file.Filename))
			continue
		}
		savedName := fmt.Sprintf("%s_%s", randomToken(), filepath.Base(file.Filename))
		if err := s.storage.Save(savedName, file.Content); err != nil {
			s.CleanupAttachments(refs)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save uploaded file")
		}
		refs = append(refs, models.AttachmentRef{
			OriginalName: file.Filename,
			SavedName:    savedName,
			FileSize:     int64(len(file.Content)),
			ContentType:  file.ContentType,
		})
	}
	return refs, nil
}

// StageGalleryImage validates an image against the image-only allow-list
// and stores it as {slotID}_{token}{ext}.
func (s *Stager) StageGalleryImage(slotID string, file dto.UploadedFile) (string, error) {
	if file.Filename == "" || len(file.Content) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "image file is required")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := s.imageSet[ext]; !ok {
		return "", appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file type %s is not allowed. Allowed types: %s", ext, strings.Join(s.cfg.ImageExtensions, ", ")))
	}
	if int64(len(file.Content)) > s.cfg.MaxFileSize {
		return "", appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file %s exceeds the %dMB size limit", file.Filename, s.cfg.MaxFileSize/(1024*1024)))
	}
	savedName := fmt.Sprintf("%s_%s%s", slotID, randomToken(), ext)
	if err := s.storage.Save(savedName, file.Content); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save gallery image")
	}
	return savedName, nil
}

// CleanupAttachments best-effort removes staged files, logging failures.
func (s *Stager) CleanupAttachments(refs models.AttachmentList) {
	for _, ref := range refs {
		if err := s.storage.Delete(ref.SavedName); err != nil {
			s.logger.Warn("failed to remove staged file", zap.String("saved_name", ref.SavedName), zap.Error(err))
		}
	}
}

func randomToken() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(buf)
}
