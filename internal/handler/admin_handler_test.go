package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

type adminServiceMock struct {
	profile    *dto.AdminProfile
	profileErr error
	updated    *dto.AdminProfile
	updateErr  error
	loginResp  *dto.AdminLoginResponse
	loginErr   error
	lastUpdate dto.UpdateAdminProfileRequest
	lastLogin  dto.AdminLoginRequest
}

func (m *adminServiceMock) Profile(ctx context.Context) (*dto.AdminProfile, error) {
	return m.profile, m.profileErr
}

func (m *adminServiceMock) UpdateProfile(ctx context.Context, req dto.UpdateAdminProfileRequest) (*dto.AdminProfile, error) {
	m.lastUpdate = req
	return m.updated, m.updateErr
}

func (m *adminServiceMock) Login(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	m.lastLogin = req
	return m.loginResp, m.loginErr
}

func TestAdminHandlerProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdminHandler(&adminServiceMock{
		profile: &dto.AdminProfile{Name: "Mechgenz", Email: "mechgenz4@gmail.com"},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/admin/profile", nil)
	c.Request = req

	handler.Profile(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mechgenz4@gmail.com")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAdminHandlerUpdateProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &adminServiceMock{
		updated: &dto.AdminProfile{Name: "Operations", Email: "ops@mechgenz.com"},
	}
	handler := NewAdminHandler(mockSvc)

	payload := `{"name":"Operations","email":"ops@mechgenz.com","currentPassword":"mechgenz4","password":"stronger"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/api/admin/profile", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.UpdateProfile(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stronger", mockSvc.lastUpdate.NewPassword)
	assert.Equal(t, "mechgenz4", mockSvc.lastUpdate.CurrentPassword)
}

func TestAdminHandlerUpdateProfileMissingEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdminHandler(&adminServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/api/admin/profile", bytes.NewBufferString(`{"name":"Operations"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.UpdateProfile(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandlerLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &adminServiceMock{
		loginResp: &dto.AdminLoginResponse{
			Message: "Login successful",
			Admin:   dto.AdminSummary{Name: "Mechgenz", Email: "mechgenz4@gmail.com"},
		},
	}
	handler := NewAdminHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"email":"mechgenz4@gmail.com","password":"mechgenz4"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mechgenz4@gmail.com", mockSvc.lastLogin.Email)
}

func TestAdminHandlerLoginRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdminHandler(&adminServiceMock{loginErr: appErrors.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"email":"mechgenz4@gmail.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
