package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"net/smtp"
	"strings"

	"recap/backend/internal/config"
	"recap/backend/internal/logger"
)

const defaultEmailSubject = "Shared Summary"

// Summary content passes through html/template, so user text is escaped
// before it lands in the HTML body.
var emailBodyTemplate = template.Must(template.New("share").Parse(`<div style="font-family: system-ui, -apple-system, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #0284c7; margin-bottom: 20px;">Summary Shared With You</h2>
  <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; border-left: 4px solid #0284c7;">
    <pre style="white-space: pre-wrap; font-family: inherit; margin: 0;">{{.Summary}}</pre>
  </div>
  <p style="color: #64748b; margin-top: 20px; font-size: 14px;">
    This summary was generated and shared via {{.AppName}}
  </p>
</div>`))

// EmailService shares a summary with recipients over SMTP.
type EmailService interface {
	Send(ctx context.Context, recipients []string, summary, subject string) error
}

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type emailService struct {
	cfg  config.SMTPConfig
	send sendFunc
}

// NewEmailService creates a new email service.
func NewEmailService(cfg config.SMTPConfig) EmailService {
	return &emailService{cfg: cfg, send: smtp.SendMail}
}

// NewEmailServiceWithSender injects the SMTP send function. Test use only.
func NewEmailServiceWithSender(cfg config.SMTPConfig, send sendFunc) EmailService {
	return &emailService{cfg: cfg, send: send}
}

func (s *emailService) Send(ctx context.Context, recipients []string, summary, subject string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required: %w", ErrInvalid)
	}
	for _, r := range recipients {
		if _, err := mail.ParseAddress(r); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", r, ErrInvalid)
		}
	}

	if s.cfg.Host == "" {
		logger.Error("smtp host missing", "module", "service", "action", "send", "resource", "email", "result", "failed")
		return fmt.Errorf("outbound mail is not configured: %w", ErrMisconfigured)
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}
	if subject == "" {
		subject = defaultEmailSubject
	}

	var body bytes.Buffer
	err := emailBodyTemplate.Execute(&body, map[string]string{
		"Summary": summary,
		"AppName": config.AppName,
	})
	if err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	msg := buildMessage(from, recipients, subject, body.String())

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, from, recipients, msg); err != nil {
		logger.Error("email send failed", "module", "service", "action", "send", "resource", "email", "result", "failed", "recipients", len(recipients), "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("email sent", "module", "service", "action", "send", "resource", "email", "result", "ok", "recipients", len(recipients))
	return nil
}

func buildMessage(from string, to []string, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
