package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
	"github.com/mechgenz/mechgenz-api/pkg/response"
)

type adminService interface {
	Profile(ctx context.Context) (*dto.AdminProfile, error)
	UpdateProfile(ctx context.Context, req dto.UpdateAdminProfileRequest) (*dto.AdminProfile, error)
	Login(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
}

// AdminHandler serves the admin account endpoints.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service adminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Profile returns the credential-free admin profile.
func (h *AdminHandler) Profile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// UpdateProfile edits the admin profile and optionally the password.
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateAdminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name and email are required"))
		return
	}
	profile, err := h.service.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// Login verifies the admin credentials.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "email and password are required"))
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
