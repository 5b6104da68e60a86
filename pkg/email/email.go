package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/resend/resend-go/v2"
)

// Service sends transactional email through the Resend API.
type Service struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
	timeout   time.Duration
}

// ContactEmailData holds the data for project inquiry emails. The Safe*
// fields must already be HTML-escaped by the caller; the body template
// interpolates them verbatim.
type ContactEmailData struct {
	SafeName         string
	SafeEmail        string
	SafeMessage      string
	ProjectTypeLabel string
	BudgetLabel      string
	ReplyTo          string
	// Raw client identifier, visible only to the recipient, for abuse triage.
	ClientIP string
}

// NewService creates the Resend-backed email service. The API key is required:
// a missing key is a configuration fault surfaced at startup, never a
// per-request error.
func NewService(apiKey, fromEmail, toEmail string) (*Service, error) {
	if apiKey == "" {
		return nil, errors.New("email: RESEND_API_KEY is not set")
	}
	return &Service{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
		timeout:   10 * time.Second,
	}, nil
}

// contactEmailTemplate renders the inquiry notification body. text/template,
// not html/template: every user-controlled field arrives pre-escaped and
// auto-escaping would mangle the entities a second time.
const contactEmailTemplate = `<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #e11d48; font-size: 24px; margin-bottom: 24px;">New Project Inquiry</h1>

  <div style="background: #fafafa; border-radius: 8px; padding: 20px; margin-bottom: 24px;">
    <h2 style="font-size: 16px; color: #52525b; margin: 0 0 16px 0; text-transform: uppercase;">Contact Details</h2>
    <p style="margin: 0 0 8px 0;"><strong>Name:</strong> {{.SafeName}}</p>
    <p style="margin: 0 0 8px 0;"><strong>Email:</strong> <a href="mailto:{{.SafeEmail}}" style="color: #e11d48;">{{.SafeEmail}}</a></p>
    <p style="margin: 0; font-size: 12px; color: #a1a1aa;">IP: {{.ClientIP}}</p>
  </div>

  <div style="background: #fafafa; border-radius: 8px; padding: 20px; margin-bottom: 24px;">
    <h2 style="font-size: 16px; color: #52525b; margin: 0 0 16px 0; text-transform: uppercase;">Project Details</h2>
    <p style="margin: 0 0 8px 0;"><strong>Project Type:</strong> {{.ProjectTypeLabel}}</p>
    <p style="margin: 0;"><strong>Budget Range:</strong> {{.BudgetLabel}}</p>
  </div>

  <div style="background: #fafafa; border-radius: 8px; padding: 20px;">
    <h2 style="font-size: 16px; color: #52525b; margin: 0 0 16px 0; text-transform: uppercase;">Message</h2>
    <p style="margin: 0; white-space: pre-wrap; line-height: 1.6;">{{.SafeMessage}}</p>
  </div>

  <hr style="border: none; border-top: 1px solid #e4e4e7; margin: 32px 0;" />

  <p style="color: #a1a1aa; font-size: 14px; margin: 0;">
    This message was sent from the studio contact form.
  </p>
</div>`

var contactTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))

// buildMessage renders the subject line and HTML body for an inquiry.
func buildMessage(data ContactEmailData) (subject, html string, err error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}
	subject = fmt.Sprintf("New Project Inquiry: %s from %s", data.ProjectTypeLabel, data.SafeName)
	return subject, body.String(), nil
}

// SendContactEmail builds and dispatches the inquiry notification. The
// provider call is bounded by the service timeout; any failure is returned
// as-is for the caller to log and translate.
func (s *Service) SendContactEmail(ctx context.Context, data ContactEmailData) error {
	subject, html, err := buildMessage(data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		ReplyTo: data.ReplyTo,
		Subject: subject,
		Html:    html,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}
