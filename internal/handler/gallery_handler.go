package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
	"github.com/mechgenz/mechgenz-api/pkg/response"
)

type galleryService interface {
	List(ctx context.Context) (*dto.GalleryListResponse, error)
	Categories(ctx context.Context) []string
	Upload(ctx context.Context, id string, file dto.UploadedFile) (*dto.UploadImageResponse, error)
	UpdateMetadata(ctx context.Context, id string, req dto.UpdateImageMetadataRequest) error
	Reset(ctx context.Context, id string) (*dto.ResetImageResponse, error)
	Delete(ctx context.Context, id string, deleteType models.GalleryDeleteType) (*dto.ResetImageResponse, error)
}

// GalleryHandler serves the website image slot endpoints.
type GalleryHandler struct {
	service galleryService
}

// NewGalleryHandler constructs the handler.
func NewGalleryHandler(service galleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// List returns every slot keyed by slot ID.
func (h *GalleryHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Categories returns the distinct slot categories.
func (h *GalleryHandler) Categories(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.CategoriesResponse{Categories: h.service.Categories(c.Request.Context())})
}

// Upload replaces the image behind one slot.
func (h *GalleryHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no file provided"))
		return
	}
	src, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded file"))
		return
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded file"))
		return
	}

	resp, err := h.service.Upload(c.Request.Context(), c.Param("id"), dto.UploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// UpdateMetadata edits a slot's display name and description.
func (h *GalleryHandler) UpdateMetadata(c *gin.Context) {
	var req dto.UpdateImageMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name is required"))
		return
	}
	if err := h.service.UpdateMetadata(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Image metadata updated successfully", "image_id": c.Param("id")})
}

// Reset reverts a slot to its default URL.
func (h *GalleryHandler) Reset(c *gin.Context) {
	resp, err := h.service.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Delete removes a slot's uploaded file and optionally the whole slot.
func (h *GalleryHandler) Delete(c *gin.Context) {
	deleteType := models.GalleryDeleteType(c.DefaultQuery("delete_type", string(models.GalleryDeleteImageOnly)))
	resp, err := h.service.Delete(c.Request.Context(), c.Param("id"), deleteType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
