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

// SubmissionRepository handles contact submission persistence.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create stores a new submission as a single insert.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	if sub.Status == "" {
		sub.Status = models.StatusNew
	}
	const query = `INSERT INTO contact_submissions
	(id, name, email, phone, message, uploaded_files, status, submitted_at, updated_at)
	VALUES (:id, :name, :email, :phone, :message, :uploaded_files, :status, :submitted_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// GetByID retrieves one submission.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	const query = `SELECT id, name, email, phone, message, uploaded_files, status, submitted_at, updated_at
	FROM contact_submissions WHERE id = $1`
	var sub models.Submission
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &sub, nil
}

// List returns submissions newest first with the total matching count.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, int, error) {
	where := ""
	args := make([]interface{}, 0, 3)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = " WHERE status = $1"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM contact_submissions"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	query := `SELECT id, name, email, phone, message, uploaded_files, status, submitted_at, updated_at
	FROM contact_submissions` + where +
		fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT %d OFFSET %d", limit, skip)

	var records []models.Submission
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	return records, total, nil
}

// UpdateStatus mutates only the status and updated_at columns.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	const query = `UPDATE contact_submissions SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check status update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one submission row.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check submission delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats aggregates counters for the stats endpoint.
func (r *SubmissionRepository) Stats(ctx context.Context) (*models.SubmissionStats, error) {
	stats := &models.SubmissionStats{}

	if err := r.db.GetContext(ctx, &stats.TotalSubmissions, `SELECT COUNT(*) FROM contact_submissions`); err != nil {
		return nil, fmt.Errorf("count total submissions: %w", err)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	if err := r.db.GetContext(ctx, &stats.RecentSubmissions,
		`SELECT COUNT(*) FROM contact_submissions WHERE submitted_at >= $1`, cutoff); err != nil {
		return nil, fmt.Errorf("count recent submissions: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.StatusBreakdown,
		`SELECT status, COUNT(*) AS count FROM contact_submissions GROUP BY status ORDER BY count DESC`); err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}

	return stats, nil
}
