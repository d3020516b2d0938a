package dto

import "time"

// UploadedFile carries one multipart file through the intake workflow.
type UploadedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SubmitContactRequest is the validated contact-form payload.
type SubmitContactRequest struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string
	Message string `validate:"required"`
	Files   []UploadedFile
}

// NotificationOutcome reports the advisory result of the email dispatch.
type NotificationOutcome struct {
	Sent                bool     `json:"sent"`
	SentTo              []string `json:"sent_to"`
	EmailID             string   `json:"email_id,omitempty"`
	AttachmentsIncluded int      `json:"attachments_included"`
	Error               string   `json:"error,omitempty"`
	AttemptedRecipients []string `json:"attempted_recipients,omitempty"`
}

// SubmitContactReceipt acknowledges a stored submission.
type SubmitContactReceipt struct {
	SubmissionID  string               `json:"submission_id"`
	SubmittedAt   time.Time            `json:"timestamp"`
	FilesUploaded int                  `json:"files_uploaded"`
	Notification  *NotificationOutcome `json:"notification,omitempty"`
}

// SubmissionListResponse wraps a page of submissions with counts.
type SubmissionListResponse struct {
	Submissions   interface{} `json:"submissions"`
	TotalCount    int         `json:"total_count"`
	ReturnedCount int         `json:"returned_count"`
	Skip          int         `json:"skip"`
	Limit         int         `json:"limit"`
}

// UpdateStatusRequest changes the status of one submission.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SendReplyRequest is the admin-to-customer reply payload.
type SendReplyRequest struct {
	ToEmail         string `json:"to_email" binding:"required,email"`
	ToName          string `json:"to_name" binding:"required"`
	ReplyMessage    string `json:"reply_message" binding:"required"`
	OriginalMessage string `json:"original_message"`
}

// SendReplyResponse acknowledges a dispatched reply.
type SendReplyResponse struct {
	Message       string    `json:"message"`
	EmailID       string    `json:"email_id"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
	Timestamp     time.Time `json:"timestamp"`
}
