package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
	"github.com/mechgenz/mechgenz-api/pkg/response"
)

type contactIntake interface {
	Submit(ctx context.Context, req dto.SubmitContactRequest) (*dto.SubmitContactReceipt, error)
}

type replySender interface {
	SendReply(ctx context.Context, req dto.SendReplyRequest) (*dto.SendReplyResponse, error)
}

// ContactHandler serves the public contact form and the admin reply
// endpoint.
type ContactHandler struct {
	contacts contactIntake
	replies  replySender
}

// NewContactHandler constructs the handler.
func NewContactHandler(contacts contactIntake, replies replySender) *ContactHandler {
	return &ContactHandler{contacts: contacts, replies: replies}
}

// Submit accepts a multipart contact-form post with optional file
// attachments.
func (h *ContactHandler) Submit(c *gin.Context) {
	req := dto.SubmitContactRequest{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Message: c.PostForm("message"),
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		files, readErr := readUploadedFiles(form.File["files"])
		if readErr != nil {
			response.Error(c, readErr)
			return
		}
		req.Files = files
	}

	receipt, err := h.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, receipt)
}

// SendReply dispatches an admin reply email to a customer.
func (h *ContactHandler) SendReply(c *gin.Context) {
	var req dto.SendReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to_email, to_name and reply_message are required"))
		return
	}
	resp, err := h.replies.SendReply(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func readUploadedFiles(headers []*multipart.FileHeader) ([]dto.UploadedFile, error) {
	files := make([]dto.UploadedFile, 0, len(headers))
	for _, header := range headers {
		if header == nil || header.Filename == "" {
			continue
		}
		src, err := header.Open()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded file")
		}
		content, err := io.ReadAll(src)
		src.Close() //nolint:errcheck
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded file")
		}
		files = append(files, dto.UploadedFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return files, nil
}
