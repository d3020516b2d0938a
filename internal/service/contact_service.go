package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
	"github.com/mechgenz/mechgenz-api/pkg/export"
)

type submissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, int, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.SubmissionStats, error)
}

type attachmentStager interface {
	StageAttachments(files []dto.UploadedFile) (models.AttachmentList, error)
	CleanupAttachments(refs models.AttachmentList)
}

type submissionNotifier interface {
	NotifySubmission(ctx context.Context, sub *models.Submission) *dto.NotificationOutcome
}

type attachmentStorage interface {
	Open(name string) (*os.File, error)
	Delete(name string) error
	Exists(name string) bool
}

// AttachmentDownload bundles an open file with its display metadata.
type AttachmentDownload struct {
	File         *os.File
	OriginalName string
	ContentType  string
	SizeBytes    int64
}

// ExportFormat selects the submissions export rendering.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult carries rendered export bytes with download metadata.
type ExportResult struct {
	Content     []byte
	Filename    string
	ContentType string
}

// ContactService owns the contact-form intake workflow and submission
// management.
type ContactService struct {
	repo     submissionStore
	stager   attachmentStager
	storage  attachmentStorage
	notifier submissionNotifier
	validate *validator.Validate
	metrics  *MetricsService
	logger   *zap.Logger
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewContactService constructs the service.
func NewContactService(repo submissionStore, stager attachmentStager, storage attachmentStorage, notifier submissionNotifier, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{
		repo:     repo,
		stager:   stager,
		storage:  storage,
		notifier: notifier,
		validate: validate,
		metrics:  metrics,
		logger:   logger,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

// Submit runs the full intake workflow: validate, stage files, persist
// the record atomically, then send the advisory notification. A staging
// or persistence failure fails the request; a notification failure is
// recorded in the receipt and nothing else.
func (s *ContactService) Submit(ctx context.Context, req dto.SubmitContactRequest) (*dto.SubmitContactReceipt, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, validationMessage(err))
	}

	refs, err := s.stager.StageAttachments(req.Files)
	if err != nil {
		return nil, err
	}

	sub := &models.Submission{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		Attachments: refs,
		Status:      models.StatusNew,
		SubmittedAt: time.Now().UTC(),
	}
	start := time.Now()
	if err := s.repo.Create(ctx, sub); err != nil {
		s.stager.CleanupAttachments(refs)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store submission")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("submissions_insert", time.Since(start))
	}

	s.logger.Info("contact submission stored",
		zap.String("submission_id", sub.ID),
		zap.String("email", sub.Email),
		zap.Int("files", len(refs)))

	outcome := s.notifier.NotifySubmission(ctx, sub)

	return &dto.SubmitContactReceipt{
		SubmissionID:  sub.ID,
		SubmittedAt:   sub.SubmittedAt,
		FilesUploaded: len(refs),
		Notification:  outcome,
	}, nil
}

// List returns a page of submissions, newest first.
func (s *ContactService) List(ctx context.Context, filter models.SubmissionFilter) (*dto.SubmissionListResponse, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	start := time.Now()
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("submissions_list", time.Since(start))
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	return &dto.SubmissionListResponse{
		Submissions:   records,
		TotalCount:    total,
		ReturnedCount: len(records),
		Skip:          skip,
		Limit:         limit,
	}, nil
}

// UpdateStatus changes the triage status of one submission.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) error {
	if s.repo == nil {
		return appErrors.ErrServiceUnavailable
	}
	if strings.TrimSpace(status) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "status is required")
	}
	if err := s.repo.UpdateStatus(ctx, id, status, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update submission status")
	}
	return nil
}

// Delete removes a submission and every file it references. File
// removal failures are logged, not surfaced; the record is gone either
// way.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return appErrors.ErrServiceUnavailable
	}
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete submission")
	}
	for _, ref := range sub.Attachments {
		if err := s.storage.Delete(ref.SavedName); err != nil {
			s.logger.Warn("failed to delete submission file",
				zap.String("submission_id", id), zap.String("saved_name", ref.SavedName), zap.Error(err))
		}
	}
	return nil
}

// DownloadAttachment opens one referenced file. The saved name must be
// listed in the submission record before the disk is touched.
func (s *ContactService) DownloadAttachment(ctx context.Context, id, savedName string) (*AttachmentDownload, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}

	var ref *models.AttachmentRef
	for i := range sub.Attachments {
		if sub.Attachments[i].SavedName == savedName {
			ref = &sub.Attachments[i]
			break
		}
	}
	if ref == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "file not found in this submission")
	}
	if !s.storage.Exists(savedName) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "physical file not found")
	}

	file, err := s.storage.Open(savedName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	info, err := file.Stat()
	if err != nil {
		file.Close() //nolint:errcheck
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read file metadata")
	}

	contentType := ref.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &AttachmentDownload{
		File:         file,
		OriginalName: ref.OriginalName,
		ContentType:  contentType,
		SizeBytes:    info.Size(),
	}, nil
}

// Stats aggregates submission counters.
func (s *ContactService) Stats(ctx context.Context) (*models.SubmissionStats, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	start := time.Now()
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute submission stats")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("submissions_stats", time.Since(start))
	}
	return stats, nil
}

// Export renders the filtered submissions as CSV or PDF.
func (s *ContactService) Export(ctx context.Context, filter models.SubmissionFilter, format ExportFormat) (*ExportResult, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	filter.Limit = 200
	records, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Phone", "Message", "Files", "Status", "Submitted At"},
	}
	for _, sub := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           sub.ID,
			"Name":         sub.Name,
			"Email":        sub.Email,
			"Phone":        sub.Phone,
			"Message":      sub.Message,
			"Files":        fmt.Sprintf("%d", len(sub.Attachments)),
			"Status":       sub.Status,
			"Submitted At": sub.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case ExportCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, Filename: fmt.Sprintf("submissions_%s.csv", stamp), ContentType: "text/csv"}, nil
	case ExportPDF:
		content, err := s.pdf.Render(dataset, "Contact Submissions")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, Filename: fmt.Sprintf("submissions_%s.pdf", stamp), ContentType: "application/pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
		case "email":
			return "invalid email address"
		}
		return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
	}
	return "validation failed"
}
