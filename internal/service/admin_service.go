package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

const (
	defaultAdminName     = "Mechgenz"
	defaultAdminEmail    = "mechgenz4@gmail.com"
	defaultAdminPassword = "mechgenz4"
)

type adminStore interface {
	Get(ctx context.Context) (*models.AdminAccount, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminAccount, error)
	Create(ctx context.Context, admin *models.AdminAccount) error
	UpdateProfile(ctx context.Context, id, name, email string, updatedAt time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	Count(ctx context.Context) (int, error)
}

// AdminService manages the single administrative account.
type AdminService struct {
	repo   adminStore
	logger *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(repo adminStore, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, logger: logger}
}

// EnsureDefault creates the default admin account on first boot. An
// existing account is never overwritten, whatever its credentials.
func (s *AdminService) EnsureDefault(ctx context.Context) error {
	if s.repo == nil {
		return appErrors.ErrServiceUnavailable
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count admin accounts")
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash default password")
	}
	admin := &models.AdminAccount{
		Name:         defaultAdminName,
		Email:        defaultAdminEmail,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create default admin")
	}
	s.logger.Info("default admin account created", zap.String("email", defaultAdminEmail))
	return nil
}

// Profile returns the credential-free admin profile.
func (s *AdminService) Profile(ctx context.Context) (*dto.AdminProfile, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	admin, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin profile")
	}
	return &dto.AdminProfile{
		Name:      admin.Name,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: admin.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// UpdateProfile edits name and email and optionally rotates the
// password. A password change requires the current password to verify.
func (s *AdminService) UpdateProfile(ctx context.Context, req dto.UpdateAdminProfileRequest) (*dto.AdminProfile, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}

	admin, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin profile")
	}

	now := time.Now().UTC()
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "current password is required to change password")
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "current password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash new password")
		}
		if err := s.repo.UpdatePassword(ctx, admin.ID, string(hash), now); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
		}
	}

	if err := s.repo.UpdateProfile(ctx, admin.ID, name, email, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update admin profile")
	}

	s.logger.Info("admin profile updated", zap.String("email", email))
	return &dto.AdminProfile{
		Name:      name,
		Email:     email,
		UpdatedAt: now.Format(time.RFC3339),
	}, nil
}

// Login verifies the admin credentials. Unknown email and wrong
// password produce the same error.
func (s *AdminService) Login(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if s.repo == nil {
		return nil, appErrors.ErrServiceUnavailable
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin account")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	return &dto.AdminLoginResponse{
		Message: "Login successful",
		Admin:   dto.AdminSummary{Name: admin.Name, Email: admin.Email},
	}, nil
}
