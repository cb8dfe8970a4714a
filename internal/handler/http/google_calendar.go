package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/calendarsync"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

type GoogleCalendarHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
}

type GoogleCalendarHandlerImpl struct {
	syncService calendarsync.CalendarSyncService
}

// Status implements GoogleCalendarHandler.
func (h *GoogleCalendarHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.syncService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Sync implements GoogleCalendarHandler.
func (h *GoogleCalendarHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.SyncAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Calendar sync finished", "synced", result.Synced, "failed", result.Failed)
	response.SuccessWithMessage(w, "Calendar sync finished", result)
}

func NewGoogleCalendarHandler(syncService calendarsync.CalendarSyncService) GoogleCalendarHandler {
	return &GoogleCalendarHandlerImpl{syncService: syncService}
}
