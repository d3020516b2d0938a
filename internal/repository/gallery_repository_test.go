package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/mechgenz/mechgenz-api/internal/models"
)

func TestGalleryRepositorySeedDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewGalleryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO website_images")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO website_images")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	now := time.Now()
	images := []models.GalleryImage{
		{ID: "hero_main_banner", Name: "Hero", Category: "hero", Locations: pq.StringArray{"Homepage"}, CreatedAt: now, UpdatedAt: now},
		{ID: "logo_main", Name: "Logo", Category: "branding", Locations: pq.StringArray{"Header"}, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repo.SeedDefaults(context.Background(), images))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewGalleryRepository(db)
	rows := sqlmock.NewRows([]string{"id", "name", "description", "current_url", "default_url", "locations", "recommended_size", "category", "created_at", "updated_at"}).
		AddRow("hero_main_banner", "Hero", "Main banner", "/images/x.jpg", "https://example.com/a.jpeg", "{Homepage}", "1920x1080px", "hero", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM website_images WHERE id = $1")).
		WithArgs("hero_main_banner").
		WillReturnRows(rows)

	image, err := repo.GetByID(context.Background(), "hero_main_banner")
	require.NoError(t, err)
	require.Equal(t, "hero_main_banner", image.ID)
	require.Equal(t, pq.StringArray{"Homepage"}, image.Locations)

	mock.ExpectQuery(regexp.QuoteMeta("FROM website_images WHERE id = $1")).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositoryCategories(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewGalleryRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT category FROM website_images ORDER BY category")).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).
			AddRow("about").
			AddRow("hero"))

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"about", "hero"}, categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositoryUpdateCurrentURL(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewGalleryRepository(db)
	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE website_images SET current_url = $2")).
		WithArgs("hero_main_banner", "/images/hero_main_banner_a1b2c3d4.jpg", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateCurrentURL(context.Background(), "hero_main_banner", "/images/hero_main_banner_a1b2c3d4.jpg", now))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE website_images SET current_url = $2")).
		WithArgs("nope", "/images/x.jpg", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.UpdateCurrentURL(context.Background(), "nope", "/images/x.jpg", now), sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewGalleryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM website_images WHERE id = $1")).
		WithArgs("logo_main").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "logo_main"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM website_images WHERE id = $1")).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), "nope"), sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
