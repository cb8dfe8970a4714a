package email

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	maxRetries    = 3
	subjectPrefix = "Leave management - "
)

// ErrNotConfigured is returned when no SMTP host is configured and the message was skipped.
var ErrNotConfigured = errors.New("smtp is not configured")

// EmailService sends the absence notifications.
type EmailService interface {
	SendNewRequest(ctx context.Context, to []string, data AbsenceNotification) error
	SendStatusChange(ctx context.Context, to string, data AbsenceNotification) error
	SendRequestModified(ctx context.Context, to []string, data AbsenceNotification) error
	SendRequestDeleted(ctx context.Context, to []string, data AbsenceNotification) error
	SendAdminCreated(ctx context.Context, to string, data AbsenceNotification) error
	SendSicknessDeclaration(ctx context.Context, to []string, data SicknessNotification, document Attachment) error
	SendDeclarationViewed(ctx context.Context, to string, data SicknessNotification) error
}

// AbsenceNotification is the template data of every absence request email.
type AbsenceNotification struct {
	EmployeeName string
	Type         string
	StartDate    string
	EndDate      string
	BusinessDays int
	Reason       string
	Status       string
	AdminName    string
	AdminComment string
}

type SicknessNotification struct {
	EmployeeName  string
	EmployeeEmail string
	StartDate     string
	EndDate       string
	BusinessDays  int
	Description   string
	DocumentName  string
	AdminName     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg        config.SMTPConfig
	templates  *template.Template
	send       sendFunc
	retryDelay time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:        cfg,
		templates:  tmpl,
		send:       smtp.SendMail,
		retryDelay: time.Second,
	}, nil
}

func (s *emailServiceImpl) SendNewRequest(ctx context.Context, to []string, data AbsenceNotification) error {
	return s.render(ctx, to, "New absence request - "+data.EmployeeName, "absence_request.html", data, nil)
}

func (s *emailServiceImpl) SendStatusChange(ctx context.Context, to string, data AbsenceNotification) error {
	return s.render(ctx, []string{to}, "Absence request "+data.Status, "absence_status.html", data, nil)
}

func (s *emailServiceImpl) SendRequestModified(ctx context.Context, to []string, data AbsenceNotification) error {
	return s.render(ctx, to, "Absence request modified - "+data.EmployeeName, "absence_modified.html", data, nil)
}

func (s *emailServiceImpl) SendRequestDeleted(ctx context.Context, to []string, data AbsenceNotification) error {
	return s.render(ctx, to, "Absence request deleted - "+data.EmployeeName, "absence_deleted.html", data, nil)
}

func (s *emailServiceImpl) SendAdminCreated(ctx context.Context, to string, data AbsenceNotification) error {
	return s.render(ctx, []string{to}, "Absence scheduled - "+data.Type, "absence_admin_created.html", data, nil)
}

func (s *emailServiceImpl) SendSicknessDeclaration(ctx context.Context, to []string, data SicknessNotification, document Attachment) error {
	return s.render(ctx, to, "Sickness declaration - "+data.EmployeeName, "sickness_declaration.html", data, []Attachment{document})
}

func (s *emailServiceImpl) SendDeclarationViewed(ctx context.Context, to string, data SicknessNotification) error {
	return s.render(ctx, []string{to}, "Sickness declaration received", "sickness_viewed.html", data, nil)
}

func (s *emailServiceImpl) render(ctx context.Context, to []string, subject, templateName string, data any, attachments []Attachment) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return s.deliver(ctx, Message{
		To:          to,
		Subject:     formatSubject(subject),
		HTML:        body.String(),
		Attachments: attachments,
	})
}

func formatSubject(subject string) string {
	if strings.HasPrefix(subject, subjectPrefix) {
		return subject
	}
	return subjectPrefix + subject
}

func (s *emailServiceImpl) deliver(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", msg.To, "subject", msg.Subject)
		return ErrNotConfigured
	}
	if len(msg.To) == 0 {
		slog.Warn("Email has no recipients, skipping", "subject", msg.Subject)
		return nil
	}

	raw, err := msg.Build(s.cfg.FromName, s.cfg.From)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, s.cfg.From, msg.To, raw)
		if err == nil {
			slog.Info("Email sent successfully", "to", msg.To, "subject", msg.Subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", msg.To,
			"subject", msg.Subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1x, 2x, 4x the base delay
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(1<<(attempt-1))):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
