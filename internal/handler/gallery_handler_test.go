package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

type galleryServiceMock struct {
	listResp       *dto.GalleryListResponse
	listErr        error
	categories     []string
	uploadResp     *dto.UploadImageResponse
	uploadErr      error
	metadataErr    error
	resetResp      *dto.ResetImageResponse
	resetErr       error
	deleteResp     *dto.ResetImageResponse
	deleteErr      error
	lastID         string
	lastFile       dto.UploadedFile
	lastMetadata   dto.UpdateImageMetadataRequest
	lastDeleteType models.GalleryDeleteType
}

func (m *galleryServiceMock) List(ctx context.Context) (*dto.GalleryListResponse, error) {
	return m.listResp, m.listErr
}

func (m *galleryServiceMock) Categories(ctx context.Context) []string {
	return m.categories
}

func (m *galleryServiceMock) Upload(ctx context.Context, id string, file dto.UploadedFile) (*dto.UploadImageResponse, error) {
	m.lastID = id
	m.lastFile = file
	return m.uploadResp, m.uploadErr
}

func (m *galleryServiceMock) UpdateMetadata(ctx context.Context, id string, req dto.UpdateImageMetadataRequest) error {
	m.lastID = id
	m.lastMetadata = req
	return m.metadataErr
}

func (m *galleryServiceMock) Reset(ctx context.Context, id string) (*dto.ResetImageResponse, error) {
	m.lastID = id
	return m.resetResp, m.resetErr
}

func (m *galleryServiceMock) Delete(ctx context.Context, id string, deleteType models.GalleryDeleteType) (*dto.ResetImageResponse, error) {
	m.lastID = id
	m.lastDeleteType = deleteType
	return m.deleteResp, m.deleteErr
}

func TestGalleryHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGalleryHandler(&galleryServiceMock{
		listResp: &dto.GalleryListResponse{
			Images:     map[string]models.GalleryImage{"hero_main_banner": {ID: "hero_main_banner"}},
			TotalCount: 1,
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/website-images", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hero_main_banner")
}

func TestGalleryHandlerCategories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGalleryHandler(&galleryServiceMock{categories: []string{"hero", "about"}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/website-images/categories", nil)
	c.Request = req

	handler.Categories(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"categories":["hero","about"]`)
}

func TestGalleryHandlerUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &galleryServiceMock{
		uploadResp: &dto.UploadImageResponse{ImageID: "hero_main_banner", NewURL: "/images/hero_main_banner_abcd1234.png"},
	}
	handler := NewGalleryHandler(mockSvc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "banner.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/website-images/hero_main_banner/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "hero_main_banner"}}

	handler.Upload(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hero_main_banner", mockSvc.lastID)
	assert.Equal(t, "banner.png", mockSvc.lastFile.Filename)
	assert.Equal(t, []byte("png-bytes"), mockSvc.lastFile.Content)
}

func TestGalleryHandlerUploadWithoutFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGalleryHandler(&galleryServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/website-images/hero_main_banner/upload", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "hero_main_banner"}}

	handler.Upload(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryHandlerUpdateMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &galleryServiceMock{}
	handler := NewGalleryHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/api/website-images/logo_main", bytes.NewBufferString(`{"name":"Company Logo","description":"Updated"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "logo_main"}}

	handler.UpdateMetadata(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "logo_main", mockSvc.lastID)
	assert.Equal(t, "Company Logo", mockSvc.lastMetadata.Name)
}

func TestGalleryHandlerDeleteDefaultsToImageOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &galleryServiceMock{
		deleteResp: &dto.ResetImageResponse{ImageID: "hero_main_banner"},
	}
	handler := NewGalleryHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/api/website-images/hero_main_banner", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "hero_main_banner"}}

	handler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.GalleryDeleteImageOnly, mockSvc.lastDeleteType)
}

func TestGalleryHandlerResetUnknownSlot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGalleryHandler(&galleryServiceMock{
		resetErr: appErrors.Clone(appErrors.ErrNotFound, "image with ID 'nope' not found"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/api/website-images/nope/reset", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Reset(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
