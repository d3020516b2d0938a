package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	"github.com/mechgenz/mechgenz-api/internal/service"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
	"github.com/mechgenz/mechgenz-api/pkg/response"
)

type submissionService interface {
	List(ctx context.Context, filter models.SubmissionFilter) (*dto.SubmissionListResponse, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	DownloadAttachment(ctx context.Context, id, savedName string) (*service.AttachmentDownload, error)
	Stats(ctx context.Context) (*models.SubmissionStats, error)
	Export(ctx context.Context, filter models.SubmissionFilter, format service.ExportFormat) (*service.ExportResult, error)
}

// SubmissionHandler serves the admin-panel submission endpoints.
type SubmissionHandler struct {
	service submissionService
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service submissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// List returns a page of submissions, newest first. The total count is
// mirrored into X-Total-Count for the admin panel's pagination.
func (h *SubmissionHandler) List(c *gin.Context) {
	filter := models.SubmissionFilter{
		Status: c.Query("status"),
		Limit:  queryInt(c, "limit", 50),
		Skip:   queryInt(c, "skip", 0),
	}
	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(resp.TotalCount))
	c.Header("Content-Range", fmt.Sprintf("submissions %d-%d/%d", resp.Skip, resp.Skip+resp.ReturnedCount, resp.TotalCount))
	response.JSON(c, http.StatusOK, resp)
}

// UpdateStatus changes one submission's triage status.
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status is required"))
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// Delete removes a submission and its uploaded files.
func (h *SubmissionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Submission deleted successfully"})
}

// DownloadFile streams one attachment referenced by the submission.
func (h *SubmissionHandler) DownloadFile(c *gin.Context) {
	download, err := h.service.DownloadAttachment(c.Request.Context(), c.Param("id"), c.Param("filename"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.OriginalName))
	c.DataFromReader(http.StatusOK, download.SizeBytes, download.ContentType, download.File, nil)
}

// Stats returns submission counters for the admin dashboard.
func (h *SubmissionHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Export renders the filtered submissions as a CSV or PDF download.
func (h *SubmissionHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	filter := models.SubmissionFilter{Status: c.Query("status")}

	result, err := h.service.Export(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
