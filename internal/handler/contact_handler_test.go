package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

type contactIntakeMock struct {
	receipt      *dto.SubmitContactReceipt
	submitErr    error
	lastReq      dto.SubmitContactRequest
	submitCalled bool
}

func (m *contactIntakeMock) Submit(ctx context.Context, req dto.SubmitContactRequest) (*dto.SubmitContactReceipt, error) {
	m.submitCalled = true
	m.lastReq = req
	return m.receipt, m.submitErr
}

type replySenderMock struct {
	resp       *dto.SendReplyResponse
	sendErr    error
	lastReq    dto.SendReplyRequest
	sendCalled bool
}

func (m *replySenderMock) SendReply(ctx context.Context, req dto.SendReplyRequest) (*dto.SendReplyResponse, error) {
	m.sendCalled = true
	m.lastReq = req
	return m.resp, m.sendErr
}

func multipartContactBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestContactHandlerSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &contactIntakeMock{
		receipt: &dto.SubmitContactReceipt{SubmissionID: "sub-1", SubmittedAt: time.Now().UTC(), FilesUploaded: 1},
	}
	handler := NewContactHandler(mockSvc, &replySenderMock{})

	body, contentType := multipartContactBody(t, map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "+97430000000",
		"message": "Requesting a quote",
	}, map[string][]byte{"drawing.pdf": []byte("pdf-bytes")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.submitCalled)
	assert.Equal(t, "Jane Doe", mockSvc.lastReq.Name)
	require.Len(t, mockSvc.lastReq.Files, 1)
	assert.Equal(t, "drawing.pdf", mockSvc.lastReq.Files[0].Filename)
	assert.Equal(t, []byte("pdf-bytes"), mockSvc.lastReq.Files[0].Content)
}

func TestContactHandlerSubmitValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &contactIntakeMock{
		submitErr: appErrors.Clone(appErrors.ErrValidation, "email must be a valid email address"),
	}
	handler := NewContactHandler(mockSvc, &replySenderMock{})

	body, contentType := multipartContactBody(t, map[string]string{"name": "Jane"}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, string(envelope["error"]), "valid email")
}

func TestContactHandlerSendReply(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockReply := &replySenderMock{
		resp: &dto.SendReplyResponse{Message: "Reply sent successfully", EmailID: "email-1", CustomerEmail: "jane@example.com"},
	}
	handler := NewContactHandler(&contactIntakeMock{}, mockReply)

	payload := `{"to_email":"jane@example.com","to_name":"Jane","reply_message":"Thanks for reaching out"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/send-reply", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SendReply(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockReply.sendCalled)
	assert.Equal(t, "jane@example.com", mockReply.lastReq.ToEmail)
}

func TestContactHandlerSendReplyInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewContactHandler(&contactIntakeMock{}, &replySenderMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/send-reply", bytes.NewBufferString(`{"to_email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SendReply(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
