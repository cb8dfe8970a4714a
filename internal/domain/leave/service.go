package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	UsedVacationDays(ctx context.Context, userID string, year int) (int, error)
	UsedSickDays(ctx context.Context, userID string, year int) (int, error)
	Dashboard(ctx context.Context, userID string) (Dashboard, error)
	AdminCalendar(ctx context.Context, year int, month time.Month) ([]CalendarEvent, error)
	UserCalendar(ctx context.Context, userID string, year int) ([]CalendarEvent, error)
	AbsenceSummary(ctx context.Context, userID string) (AbsenceSummary, error)
	CalendarSummary(ctx context.Context, userID string, year int) (CalendarSummary, error)
}
