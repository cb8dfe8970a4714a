package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 100
	JobTimeout    time.Duration // default: 2 minutes
	FallbackEmail string
}

type queuedJob struct {
	name string
	job  notification.Job
}

type service struct {
	userRepo user.UserRepository
	config   Config

	queue   chan queuedJob
	wg      sync.WaitGroup
	stopCh  chan struct{}
	stopped sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(userRepo user.UserRepository, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 100
	}
	if cfg.JobTimeout == 0 {
		cfg.JobTimeout = 2 * time.Minute
	}

	s := &service{
		userRepo: userRepo,
		config:   cfg,
		queue:    make(chan queuedJob, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// worker runs queued jobs until Stop, then drains what is left
func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case q := <-s.queue:
			s.run(id, q)
		case <-s.stopCh:
			for {
				select {
				case q := <-s.queue:
					s.run(id, q)
				default:
					return
				}
			}
		}
	}
}

func (s *service) run(workerID int, q queuedJob) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	err := q.job(ctx)
	switch {
	case err == nil:
		slog.Debug("Notification delivered", "worker", workerID, "job", q.name)
	case errors.Is(err, email.ErrNotConfigured):
		slog.Debug("Notification skipped, email not configured", "job", q.name)
	default:
		slog.Error("Notification failed", "worker", workerID, "job", q.name, "error", err)
	}
}

// Queue queues a job for async processing
func (s *service) Queue(ctx context.Context, name string, job notification.Job) error {
	select {
	case <-s.stopCh:
		return fmt.Errorf("notification service stopped, dropping %s", name)
	default:
	}

	select {
	case s.queue <- queuedJob{name: name, job: job}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, run inline
		s.run(-1, queuedJob{name: name, job: job})
		return nil
	}
}

// AdminRecipients returns every active admin plus the fallback mailbox, without duplicates
func (s *service) AdminRecipients(ctx context.Context) ([]string, error) {
	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	seen := make(map[string]struct{}, len(admins)+1)
	recipients := make([]string, 0, len(admins)+1)
	add := func(addr string) {
		key := strings.ToLower(strings.TrimSpace(addr))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		recipients = append(recipients, addr)
	}

	for _, a := range admins {
		add(a.Email)
	}
	add(s.config.FallbackEmail)

	return recipients, nil
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	s.stopped.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
