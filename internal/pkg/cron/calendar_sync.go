package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/calendarsync"
)

const CalendarSyncJobName = "google_calendar_backfill"

// RegisterCalendarSync schedules a periodic push of absence requests that have no calendar event yet.
func RegisterCalendarSync(s *Scheduler, svc calendarsync.CalendarSyncService, interval time.Duration) {
	s.AddJob(CalendarSyncJobName, interval, func(ctx context.Context) error {
		result, err := svc.SyncAll(ctx)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			return fmt.Errorf("%d of %d requests failed to sync", result.Failed, result.Failed+result.Synced)
		}
		return nil
	})
}
