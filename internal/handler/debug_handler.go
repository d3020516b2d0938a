package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	"github.com/mechgenz/mechgenz-api/internal/service"
	"github.com/mechgenz/mechgenz-api/pkg/config"
	"github.com/mechgenz/mechgenz-api/pkg/response"
)

type debugGallery interface {
	List(ctx context.Context) (*dto.GalleryListResponse, error)
	FixMissingFiles(ctx context.Context) (*dto.FixMissingFilesResponse, error)
	CheckMissingFiles(ctx context.Context) (*dto.CheckMissingFilesResponse, error)
	Reinitialize(ctx context.Context) error
}

type debugSubmissions interface {
	Stats(ctx context.Context) (*models.SubmissionStats, error)
}

// DebugHandler serves operational status and gallery repair endpoints.
type DebugHandler struct {
	db          *sqlx.DB
	gallery     debugGallery
	submissions debugSubmissions
	metrics     *service.MetricsService
	cfg         *config.Config
}

// NewDebugHandler constructs the handler.
func NewDebugHandler(db *sqlx.DB, gallery debugGallery, submissions debugSubmissions, metrics *service.MetricsService, cfg *config.Config) *DebugHandler {
	return &DebugHandler{db: db, gallery: gallery, submissions: submissions, metrics: metrics, cfg: cfg}
}

// Status reports connectivity and collection counts.
func (h *DebugHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{
		"api_status":         "running",
		"timestamp":          time.Now().UTC(),
		"database_connected": h.db != nil,
	}

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			status["database_ping"] = "failed: " + err.Error()
		} else {
			status["database_ping"] = "success"
		}
	} else {
		status["database_ping"] = "not connected"
	}

	if h.gallery != nil {
		if gallery, err := h.gallery.List(ctx); err == nil {
			status["gallery_count"] = gallery.TotalCount
		}
	}
	if h.submissions != nil {
		if stats, err := h.submissions.Stats(ctx); err == nil {
			status["submissions_count"] = stats.TotalSubmissions
		}
	}
	if h.metrics != nil {
		status["metrics"] = h.metrics.Snapshot()
	}

	response.JSON(c, http.StatusOK, status)
}

// Gallery dumps the raw slot catalog for inspection.
func (h *DebugHandler) Gallery(c *gin.Context) {
	gallery, err := h.gallery.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"images_count":       gallery.TotalCount,
		"images":             gallery.Images,
		"database_connected": h.db != nil,
	})
}

// FixMissingFiles resets slots whose local file is gone.
func (h *DebugHandler) FixMissingFiles(c *gin.Context) {
	resp, err := h.gallery.FixMissingFiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// CheckMissingFiles audits local gallery files.
func (h *DebugHandler) CheckMissingFiles(c *gin.Context) {
	resp, err := h.gallery.CheckMissingFiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// ReinitializeGallery drops and reseeds the slot catalog.
func (h *DebugHandler) ReinitializeGallery(c *gin.Context) {
	if err := h.gallery.Reinitialize(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Gallery reinitialized"})
}

// EmailConfig exposes the notification routing without the API key.
func (h *DebugHandler) EmailConfig(c *gin.Context) {
	email := h.cfg.Email
	response.JSON(c, http.StatusOK, gin.H{
		"admin_email":             email.AdminEmail,
		"company_email":           email.CompanyEmail,
		"notification_recipients": email.NotificationRecipients(),
		"dual_delivery_enabled":   true,
		"verified_domain":         email.VerifiedDomain,
		"resend_configured":       email.ResendAPIKey != "",
	})
}
