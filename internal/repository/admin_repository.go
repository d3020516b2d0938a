package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mechgenz/mechgenz-api/internal/models"
)

// AdminRepository provides database access for the admin account.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Get returns the authoritative admin account. At most one is expected;
// the oldest row wins if more exist.
func (r *AdminRepository) Get(ctx context.Context) (*models.AdminAccount, error) {
	const query = `SELECT id, name, email, password_hash, created_at, updated_at
	FROM admin_users ORDER BY created_at LIMIT 1`
	var admin models.AdminAccount
	if err := r.db.GetContext(ctx, &admin, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get admin account: %w", err)
	}
	return &admin, nil
}

// GetByEmail returns the admin account matching the given email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminAccount, error) {
	const query = `SELECT id, name, email, password_hash, created_at, updated_at
	FROM admin_users WHERE email = $1 LIMIT 1`
	var admin models.AdminAccount
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &admin, nil
}

// Create inserts a new admin account.
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminAccount) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	if admin.UpdatedAt.IsZero() {
		admin.UpdatedAt = now
	}
	const query = `INSERT INTO admin_users (id, name, email, password_hash, created_at, updated_at)
	VALUES (:id, :name, :email, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	return nil
}

// UpdateProfile updates name and email.
func (r *AdminRepository) UpdateProfile(ctx context.Context, id, name, email string, updatedAt time.Time) error {
	const query = `UPDATE admin_users SET name = $2, email = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, name, email, updatedAt); err != nil {
		return fmt.Errorf("update admin profile: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	const query = `UPDATE admin_users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, updatedAt); err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	return nil
}

// Count returns the number of admin rows.
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_users`); err != nil {
		return 0, fmt.Errorf("count admin accounts: %w", err)
	}
	return count, nil
}
