package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AttachmentRef describes one staged file belonging to a submission. The
// original client filename is kept for display and download only; the
// generated saved name is the sole key into the upload directory.
type AttachmentRef struct {
	OriginalName string `json:"original_name"`
	SavedName    string `json:"saved_name"`
	FileSize     int64  `json:"file_size"`
	ContentType  string `json:"content_type"`
}

// AttachmentList stores attachment metadata as a jsonb column.
type AttachmentList []AttachmentRef

// Value implements driver.Valuer.
func (a AttachmentList) Value() (driver.Value, error) {
	if a == nil {
		a = AttachmentList{}
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal attachments: %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner.
func (a *AttachmentList) Scan(src interface{}) error {
	if src == nil {
		*a = AttachmentList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported attachments column type %T", src)
	}
	if err := json.Unmarshal(raw, a); err != nil {
		return fmt.Errorf("unmarshal attachments: %w", err)
	}
	return nil
}

// Submission is one contact-form inquiry.
type Submission struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Email       string         `db:"email" json:"email"`
	Phone       string         `db:"phone" json:"phone"`
	Message     string         `db:"message" json:"message"`
	Attachments AttachmentList `db:"uploaded_files" json:"uploaded_files"`
	Status      string         `db:"status" json:"status"`
	SubmittedAt time.Time      `db:"submitted_at" json:"submitted_at"`
	UpdatedAt   *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}

// StatusNew is the status every submission is created with.
const StatusNew = "new"

// SubmissionFilter narrows listing queries.
type SubmissionFilter struct {
	Status string
	Limit  int
	Skip   int
}

// StatusCount is one row of the status breakdown aggregate.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// SubmissionStats aggregates submission counters for the stats endpoint.
type SubmissionStats struct {
	TotalSubmissions  int           `json:"total_submissions"`
	RecentSubmissions int           `json:"recent_submissions_30_days"`
	StatusBreakdown   []StatusCount `json:"status_breakdown"`
}
