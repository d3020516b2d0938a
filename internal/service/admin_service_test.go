package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

type adminRepoStub struct {
	admin *models.AdminAccount
}

func (r *adminRepoStub) Get(ctx context.Context) (*models.AdminAccount, error) {
	if r.admin == nil {
		return nil, sql.ErrNoRows
	}
	copy := *r.admin
	return &copy, nil
}

func (r *adminRepoStub) GetByEmail(ctx context.Context, email string) (*models.AdminAccount, error) {
	if r.admin == nil || r.admin.Email != email {
		return nil, sql.ErrNoRows
	}
	copy := *r.admin
	return &copy, nil
}

func (r *adminRepoStub) Create(ctx context.Context, admin *models.AdminAccount) error {
	if admin.ID == "" {
		admin.ID = "admin-1"
	}
	copy := *admin
	r.admin = &copy
	return nil
}

func (r *adminRepoStub) UpdateProfile(ctx context.Context, id, name, email string, updatedAt time.Time) error {
	r.admin.Name = name
	r.admin.Email = email
	r.admin.UpdatedAt = updatedAt
	return nil
}

func (r *adminRepoStub) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	r.admin.PasswordHash = passwordHash
	r.admin.UpdatedAt = updatedAt
	return nil
}

func (r *adminRepoStub) Count(ctx context.Context) (int, error) {
	if r.admin == nil {
		return 0, nil
	}
	return 1, nil
}

func TestAdminEnsureDefaultSeedsOnce(t *testing.T) {
	repo := &adminRepoStub{}
	svc := NewAdminService(repo, zap.NewNop())

	require.NoError(t, svc.EnsureDefault(context.Background()))
	require.NotNil(t, repo.admin)
	require.Equal(t, "mechgenz4@gmail.com", repo.admin.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.admin.PasswordHash), []byte("mechgenz4")))

	// a customised account is never reset on restart
	repo.admin.Email = "owner@mechgenz.com"
	require.NoError(t, svc.EnsureDefault(context.Background()))
	require.Equal(t, "owner@mechgenz.com", repo.admin.Email)
}

func TestAdminLogin(t *testing.T) {
	repo := &adminRepoStub{}
	svc := NewAdminService(repo, zap.NewNop())
	require.NoError(t, svc.EnsureDefault(context.Background()))

	resp, err := svc.Login(context.Background(), dto.AdminLoginRequest{
		Email:    "mechgenz4@gmail.com",
		Password: "mechgenz4",
	})
	require.NoError(t, err)
	require.Equal(t, "Mechgenz", resp.Admin.Name)

	// wrong password and unknown email produce the same error
	_, badPass := svc.Login(context.Background(), dto.AdminLoginRequest{
		Email:    "mechgenz4@gmail.com",
		Password: "wrong",
	})
	_, badEmail := svc.Login(context.Background(), dto.AdminLoginRequest{
		Email:    "nobody@example.com",
		Password: "mechgenz4",
	})
	require.Equal(t, appErrors.FromError(badPass).Message, appErrors.FromError(badEmail).Message)
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(badPass).Code)

	_, err = svc.Login(context.Background(), dto.AdminLoginRequest{Email: "", Password: ""})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAdminUpdateProfile(t *testing.T) {
	repo := &adminRepoStub{}
	svc := NewAdminService(repo, zap.NewNop())
	require.NoError(t, svc.EnsureDefault(context.Background()))

	profile, err := svc.UpdateProfile(context.Background(), dto.UpdateAdminProfileRequest{
		Name:  "Owner",
		Email: "owner@mechgenz.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Owner", profile.Name)
	require.Equal(t, "owner@mechgenz.com", repo.admin.Email)

	// password change without the current password is rejected
	_, err = svc.UpdateProfile(context.Background(), dto.UpdateAdminProfileRequest{
		Name:        "Owner",
		Email:       "owner@mechgenz.com",
		NewPassword: "new-secret",
	})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// wrong current password is rejected
	_, err = svc.UpdateProfile(context.Background(), dto.UpdateAdminProfileRequest{
		Name:            "Owner",
		Email:           "owner@mechgenz.com",
		CurrentPassword: "wrong",
		NewPassword:     "new-secret",
	})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateProfile(context.Background(), dto.UpdateAdminProfileRequest{
		Name:            "Owner",
		Email:           "owner@mechgenz.com",
		CurrentPassword: "mechgenz4",
		NewPassword:     "new-secret",
	})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.admin.PasswordHash), []byte("new-secret")))

	_, err = svc.Login(context.Background(), dto.AdminLoginRequest{
		Email:    "owner@mechgenz.com",
		Password: "new-secret",
	})
	require.NoError(t, err)
}

func TestAdminProfileNotFound(t *testing.T) {
	svc := NewAdminService(&adminRepoStub{}, zap.NewNop())
	_, err := svc.Profile(context.Background())
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
