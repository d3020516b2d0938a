package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/mechgenz/mechgenz-api/internal/dto"
	"github.com/mechgenz/mechgenz-api/internal/models"
	"github.com/mechgenz/mechgenz-api/pkg/config"
	appErrors "github.com/mechgenz/mechgenz-api/pkg/errors"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type attachmentReader interface {
	Read(name string) ([]byte, error)
	Exists(name string) bool
}

// Notifier sends transactional email through Resend. Submission
// notifications are advisory and never fail the caller; admin replies
// surface provider failures as hard errors.
type Notifier struct {
	sender  emailSender
	files   attachmentReader
	metrics *MetricsService
	logger  *zap.Logger
	cfg     config.EmailConfig
	embed   int64
}

// NewNotifier constructs the notifier. A nil sender disables dispatch;
// notifications then report a configuration error in their outcome.
func NewNotifier(sender emailSender, files attachmentReader, metrics *MetricsService, logger *zap.Logger, cfg config.EmailConfig, embedLimit int64) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if embedLimit <= 0 {
		embedLimit = 5 * 1024 * 1024
	}
	return &Notifier{sender: sender, files: files, metrics: metrics, logger: logger, cfg: cfg, embed: embedLimit}
}

// NewResendSender builds the Resend email client from an API key.
// Returns nil when no key is configured.
func NewResendSender(apiKey string) emailSender {
	if apiKey == "" {
		return nil
	}
	return resend.NewClient(apiKey).Emails
}

// NotifySubmission announces a stored submission to both configured
// recipients. The returned outcome is always non-nil and carries the
// failure detail when dispatch did not happen.
func (n *Notifier) NotifySubmission(ctx context.Context, sub *models.Submission) *dto.NotificationOutcome {
	recipients := n.cfg.NotificationRecipients()
	if n.sender == nil {
		n.logger.Warn("email notification skipped, no API key configured")
		return &dto.NotificationOutcome{
			Sent:                false,
			Error:               "email service not configured",
			AttemptedRecipients: recipients,
		}
	}

	attachments, attachmentHTML := n.collectAttachments(sub.Attachments)

	replyTo := sub.Email
	if replyTo == "" {
		replyTo = n.cfg.CompanyEmail
	}

	params := &resend.SendEmailRequest{
		From:        n.cfg.FromAddress,
		To:          recipients,
		Subject:     fmt.Sprintf("New Contact Form Submission from %s", sub.Name),
		Html:        n.notificationHTML(sub, attachmentHTML),
		ReplyTo:     replyTo,
		Attachments: attachments,
	}

	sent, err := n.sender.SendWithContext(ctx, params)
	if n.metrics != nil {
		n.metrics.RecordEmail("notification", err == nil)
	}
	if err != nil {
		n.logger.Error("failed to send notification email",
			zap.Strings("recipients", recipients), zap.Error(err))
		return &dto.NotificationOutcome{
			Sent:                false,
			Error:               err.Error(),
			AttemptedRecipients: recipients,
		}
	}

	n.logger.Info("notification email sent",
		zap.Strings("recipients", recipients),
		zap.String("email_id", sent.Id),
		zap.Int("attachments", len(attachments)))
	return &dto.NotificationOutcome{
		Sent:                true,
		SentTo:              recipients,
		EmailID:             sent.Id,
		AttachmentsIncluded: len(attachments),
	}
}

// SendReply dispatches an admin reply straight to the customer. Unlike
// notifications this is the whole point of the request, so any provider
// failure is returned.
func (n *Notifier) SendReply(ctx context.Context, req dto.SendReplyRequest) (*dto.SendReplyResponse, error) {
	if n.sender == nil {
		return nil, appErrors.Clone(appErrors.ErrServiceUnavailable, "email service not configured")
	}

	params := &resend.SendEmailRequest{
		From:    n.cfg.FromAddress,
		To:      []string{req.ToEmail},
		Subject: "Reply from MECHGENZ - Your Inquiry",
		Html:    n.replyHTML(req),
		Text:    n.replyText(req),
		ReplyTo: n.cfg.CompanyEmail,
	}

	sent, err := n.sender.SendWithContext(ctx, params)
	if n.metrics != nil {
		n.metrics.RecordEmail("reply", err == nil)
	}
	if err != nil {
		n.logger.Error("failed to send reply email", zap.String("to", req.ToEmail), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send reply email")
	}

	n.logger.Info("reply email sent", zap.String("to", req.ToEmail), zap.String("email_id", sent.Id))
	return &dto.SendReplyResponse{
		Message:       fmt.Sprintf("Reply sent successfully to %s (%s)", req.ToName, req.ToEmail),
		EmailID:       sent.Id,
		CustomerEmail: req.ToEmail,
		CustomerName:  req.ToName,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// collectAttachments embeds files under the size limit and renders the
// attachment section. Oversized or unreadable files stay referenced in
// the body only.
func (n *Notifier) collectAttachments(refs models.AttachmentList) ([]*resend.Attachment, string) {
	if len(refs) == 0 {
		return nil, ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div style="background-color:#e8f5e8;padding:20px;border-left:4px solid #4caf50;margin:20px 0;border-radius:5px;">`)
	fmt.Fprintf(&b, `<h3 style="color:#2e7d32;margin-top:0;">Attachments (%d)</h3>`, len(refs))
	b.WriteString(`<p style="color:#2e7d32;">The following files have been attached to this inquiry:</p>`)

	attachments := make([]*resend.Attachment, 0, len(refs))
	for _, ref := range refs {
		name := html.EscapeString(ref.OriginalName)
		size := formatFileSize(ref.FileSize)

		note := "Available in admin panel"
		if ref.FileSize < n.embed && n.files != nil && n.files.Exists(ref.SavedName) {
			content, err := n.files.Read(ref.SavedName)
			if err != nil {
				n.logger.Warn("failed to read attachment for email",
					zap.String("saved_name", ref.SavedName), zap.Error(err))
			} else {
				attachments = append(attachments, &resend.Attachment{
					Filename: ref.OriginalName,
					Content:  content,
				})
				note = "Attached"
			}
		} else if ref.FileSize >= n.embed {
			note = "Too large for email, available in admin panel"
		}

		fmt.Fprintf(&b, `<div style="margin-bottom:10px;padding:8px;background-color:#f8f9fa;border-radius:4px;"><strong>%s</strong><br><small style="color:#666;">(%s) - %s</small></div>`,
			name, size, note)
	}
	b.WriteString(`</div>`)
	return attachments, b.String()
}

func (n *Notifier) notificationHTML(sub *models.Submission, attachmentHTML string) string {
	row := func(label, value string) string {
		if value == "" {
			value = "Not provided"
		}
		return fmt.Sprintf(`<tr><td style="padding:6px 12px;font-weight:bold;color:#37474f;">%s</td><td style="padding:6px 12px;">%s</td></tr>`,
			label, html.EscapeString(value))
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;background-color:#f4f4f4;margin:0;padding:20px;">`)
	b.WriteString(`<div style="max-width:600px;margin:0 auto;background-color:white;border-radius:8px;overflow:hidden;">`)
	b.WriteString(`<div style="background-color:#ff5722;color:white;padding:24px;text-align:center;"><div style="font-size:24px;font-weight:bold;">MECHGENZ</div><div style="font-size:12px;">TRADING CONTRACTING AND SERVICES</div></div>`)
	b.WriteString(`<div style="background-color:#fff3e0;padding:12px;text-align:center;font-weight:bold;color:#e65100;">New Contact Form Submission</div>`)
	b.WriteString(`<div style="padding:24px;">`)
	b.WriteString(`<p>You have received a new inquiry through the website contact form.</p>`)
	b.WriteString(`<table style="width:100%;border-collapse:collapse;background-color:#f8f9fa;border-radius:5px;">`)
	b.WriteString(row("Name:", sub.Name))
	b.WriteString(row("Email:", sub.Email))
	b.WriteString(row("Phone:", sub.Phone))
	b.WriteString(row("Submitted:", sub.SubmittedAt.UTC().Format("January 2, 2006 at 3:04 PM")+" UTC"))
	b.WriteString(`</table>`)
	fmt.Fprintf(&b, `<div style="margin:20px 0;padding:16px;background-color:#f8f9fa;border-left:4px solid #ff5722;border-radius:5px;"><h3 style="margin-top:0;color:#ff5722;">Message</h3><p style="white-space:pre-line;margin-bottom:0;">%s</p></div>`,
		html.EscapeString(sub.Message))
	b.WriteString(attachmentHTML)
	b.WriteString(`</div>`)
	b.WriteString(`<div style="background-color:#37474f;color:white;padding:16px;text-align:center;font-size:12px;"><p>This is an automated notification from your MECHGENZ website contact form.</p><p>&copy; 2024 MECHGENZ W.L.L. All Rights Reserved.</p></div>`)
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func (n *Notifier) replyHTML(req dto.SendReplyRequest) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;background-color:#f4f4f4;margin:0;padding:20px;">`)
	b.WriteString(`<div style="max-width:600px;margin:0 auto;background-color:white;border-radius:8px;overflow:hidden;padding:24px;">`)
	b.WriteString(`<div style="background-color:#ff5722;color:white;padding:24px;text-align:center;border-radius:5px;"><div style="font-size:24px;font-weight:bold;">MECHGENZ</div><div style="font-size:12px;">TRADING CONTRACTING AND SERVICES</div></div>`)
	fmt.Fprintf(&b, `<p style="font-size:18px;margin-top:24px;">Dear %s,</p>`, html.EscapeString(req.ToName))
	b.WriteString(`<p>Thank you for contacting MECHGENZ Trading Contracting &amp; Services. We appreciate your inquiry and are pleased to respond to your message.</p>`)
	fmt.Fprintf(&b, `<div style="margin:20px 0;padding:16px;background-color:#f8f9fa;border-left:4px solid #ff5722;border-radius:5px;"><h3 style="color:#ff5722;margin-top:0;">Our Response:</h3><p style="white-space:pre-line;margin-bottom:0;">%s</p></div>`,
		html.EscapeString(req.ReplyMessage))
	if req.OriginalMessage != "" {
		fmt.Fprintf(&b, `<div style="margin:20px 0;padding:15px;background-color:#f0f0f0;border-left:3px solid #ccc;border-radius:5px;"><h4 style="color:#666;margin-top:0;font-size:14px;">Your Original Message:</h4><p style="font-style:italic;white-space:pre-line;margin-bottom:0;">%s</p></div>`,
			html.EscapeString(req.OriginalMessage))
	}
	b.WriteString(`<p>If you have any further questions or need additional information, please don't hesitate to contact us. We look forward to the opportunity to work with you.</p>`)
	b.WriteString(`<div style="margin:20px 0;padding:15px;background-color:#f8f8f8;border-radius:5px;"><h4 style="color:#ff5722;margin-top:0;">Contact Information</h4>`)
	b.WriteString(`<p><strong>Office:</strong> Buzwair Complex, 4th Floor, Rawdat Al Khail St, Doha Qatar<br><strong>P.O. Box:</strong> 22911</p>`)
	b.WriteString(`<p><strong>Phone:</strong> +974 30401080</p>`)
	b.WriteString(`<p><strong>Email:</strong> info@mechgenz.com | mishal.basheer@mechgenz.com</p>`)
	b.WriteString(`<p><strong>Website:</strong> www.mechgenz.com</p>`)
	b.WriteString(`<p><strong>Managing Director:</strong> Mishal Basheer</p></div>`)
	b.WriteString(`<div style="margin-top:30px;padding:20px;background-color:#ff5722;color:white;border-radius:5px;text-align:center;"><p style="margin:0;"><strong>Best Regards,<br>MECHGENZ Team<br>Trading Contracting and Services</strong></p></div>`)
	b.WriteString(`<div style="margin-top:30px;padding-top:20px;border-top:1px solid #eee;text-align:center;color:#666;font-size:14px;"><p>&copy; 2024 MECHGENZ W.L.L. All Rights Reserved.</p></div>`)
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func (n *Notifier) replyText(req dto.SendReplyRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", req.ToName)
	b.WriteString("Thank you for contacting MECHGENZ Trading Contracting & Services. We appreciate your inquiry and are pleased to respond to your message.\n\n")
	fmt.Fprintf(&b, "Our Response:\n%s\n\n", req.ReplyMessage)
	if req.OriginalMessage != "" {
		fmt.Fprintf(&b, "Your Original Message:\n%s\n\n", req.OriginalMessage)
	}
	b.WriteString("If you have any further questions or need additional information, please don't hesitate to contact us. We look forward to the opportunity to work with you.\n\n")
	b.WriteString("Contact Information:\n")
	b.WriteString("Office: Buzwair Complex, 4th Floor, Rawdat Al Khail St, Doha Qatar\n")
	b.WriteString("P.O. Box: 22911\n")
	b.WriteString("Phone: +974 30401080\n")
	b.WriteString("Email: info@mechgenz.com | mishal.basheer@mechgenz.com\n")
	b.WriteString("Website: www.mechgenz.com\n")
	b.WriteString("Managing Director: Mishal Basheer\n\n")
	b.WriteString("Best Regards,\nMECHGENZ Team\nTrading Contracting and Services\n")
	return b.String()
}

func formatFileSize(size int64) string {
	switch {
	case size >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	case size >= 1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
