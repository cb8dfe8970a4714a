package notification

import "context"

// Job delivers one notification. It runs on a background worker with its own deadline.
type Job func(ctx context.Context) error

// Service defines the notification dispatch interface
type Service interface {
	// Queue hands a job to the background workers
	Queue(ctx context.Context, name string, job Job) error

	// AdminRecipients lists the mailboxes that receive admin notifications
	AdminRecipients(ctx context.Context) ([]string, error)

	// Lifecycle
	Stop()
}
