package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/mechgenz/mechgenz-api/internal/models"
)

func TestAdminRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAdminRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admin_users")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	admin := &models.AdminAccount{
		Name:         "Mechgenz",
		Email:        "mechgenz4@gmail.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
	require.NoError(t, repo.Create(context.Background(), admin))
	require.NotEmpty(t, admin.ID)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(admin.ID, admin.Name, admin.Email, admin.PasswordHash, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users ORDER BY created_at LIMIT 1")).
		WillReturnRows(rows)

	found, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, admin.Email, found.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryGetByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAdminRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryUpdatePassword(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAdminRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE admin_users SET password_hash = $2")).
		WithArgs("admin-1", "$2a$10$newhash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "admin-1", "$2a$10$newhash", time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}
