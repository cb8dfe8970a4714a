package fakes

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
)

// SentEmail is one call recorded by Mailer.
type SentEmail struct {
	Kind       string
	To         []string
	Absence    email.AbsenceNotification
	Sickness   email.SicknessNotification
	Attachment *email.Attachment
}

// Mailer records notifications instead of sending them. Err is returned from every call.
type Mailer struct {
	mu   sync.Mutex
	sent []SentEmail
	Err  error
}

func (m *Mailer) record(e SentEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *Mailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *Mailer) SendNewRequest(ctx context.Context, to []string, data email.AbsenceNotification) error {
	return m.record(SentEmail{Kind: "new_request", To: to, Absence: data})
}

func (m *Mailer) SendStatusChange(ctx context.Context, to string, data email.AbsenceNotification) error {
	return m.record(SentEmail{Kind: "status_change", To: []string{to}, Absence: data})
}

func (m *Mailer) SendRequestModified(ctx context.Context, to []string, data email.AbsenceNotification) error {
	return m.record(SentEmail{Kind: "modified", To: to, Absence: data})
}

func (m *Mailer) SendRequestDeleted(ctx context.Context, to []string, data email.AbsenceNotification) error {
	return m.record(SentEmail{Kind: "deleted", To: to, Absence: data})
}

func (m *Mailer) SendAdminCreated(ctx context.Context, to string, data email.AbsenceNotification) error {
	return m.record(SentEmail{Kind: "admin_created", To: []string{to}, Absence: data})
}

func (m *Mailer) SendSicknessDeclaration(ctx context.Context, to []string, data email.SicknessNotification, document email.Attachment) error {
	return m.record(SentEmail{Kind: "sickness_declaration", To: to, Sickness: data, Attachment: &document})
}

func (m *Mailer) SendDeclarationViewed(ctx context.Context, to string, data email.SicknessNotification) error {
	return m.record(SentEmail{Kind: "declaration_viewed", To: []string{to}, Sickness: data})
}
