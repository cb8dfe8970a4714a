package calendarsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/calendarsync"
)

type CalendarSyncServiceImpl struct {
	absenceRepo absence.AbsenceRequestRepository
	publisher   calendarsync.EventPublisher
	calendarID  string
}

// NewCalendarSyncService wires the sync service. A nil publisher means sync is disabled.
func NewCalendarSyncService(absenceRepo absence.AbsenceRequestRepository, publisher calendarsync.EventPublisher, calendarID string) calendarsync.CalendarSyncService {
	return &CalendarSyncServiceImpl{
		absenceRepo: absenceRepo,
		publisher:   publisher,
		calendarID:  calendarID,
	}
}

func (s *CalendarSyncServiceImpl) enabled() bool {
	return s.publisher != nil
}

// Status implements calendarsync.CalendarSyncService.
func (s *CalendarSyncServiceImpl) Status(ctx context.Context) (calendarsync.StatusResponse, error) {
	unsynced, err := s.absenceRepo.Count(ctx, absence.Filter{WithoutCalendarEvent: true})
	if err != nil {
		return calendarsync.StatusResponse{}, fmt.Errorf("failed to count unsynced requests: %w", err)
	}

	resp := calendarsync.StatusResponse{
		Enabled:  s.enabled(),
		Unsynced: unsynced,
	}
	if s.enabled() {
		resp.CalendarID = s.calendarID
	}
	return resp, nil
}

// SyncAll implements calendarsync.CalendarSyncService. It pushes every request that has no event yet.
func (s *CalendarSyncServiceImpl) SyncAll(ctx context.Context) (calendarsync.SyncResult, error) {
	if !s.enabled() {
		return calendarsync.SyncResult{}, calendarsync.ErrSyncDisabled
	}

	requests, err := s.absenceRepo.List(ctx, absence.Filter{
		WithoutCalendarEvent: true,
		OldestFirst:          true,
	})
	if err != nil {
		return calendarsync.SyncResult{}, fmt.Errorf("failed to list unsynced requests: %w", err)
	}

	var result calendarsync.SyncResult
	for _, a := range requests {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		eventID, err := s.publisher.CreateEvent(ctx, a)
		if err == nil {
			err = s.absenceRepo.SetCalendarEventID(ctx, a.ID, &eventID)
		}
		if err != nil {
			slog.Error("Failed to sync absence request", "absence_request_id", a.ID, "error", err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", a.ID, err))
			continue
		}
		result.Synced++
	}

	slog.Info("Calendar sync finished", "synced", result.Synced, "failed", result.Failed)
	return result, nil
}
