package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	Admin(w http.ResponseWriter, r *http.Request)
	User(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	UserSummary(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	leaveService leave.LeaveService
	now          func() time.Time
}

// Admin implements CalendarHandler. Year and month default to the current month.
func (h *CalendarHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	var errs validator.ValidationErrors
	year := parseYear(r, now, &errs)
	month := parseMonth(r, now, &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	events, err := h.leaveService.AdminCalendar(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// User implements CalendarHandler.
func (h *CalendarHandlerImpl) User(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var errs validator.ValidationErrors
	year := parseYear(r, h.now(), &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	events, err := h.leaveService.UserCalendar(r.Context(), actor.UserID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// Summary implements CalendarHandler.
func (h *CalendarHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.summary(w, r, actor.UserID)
}

// UserSummary implements CalendarHandler.
func (h *CalendarHandlerImpl) UserSummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, chi.URLParam(r, "id"))
}

func (h *CalendarHandlerImpl) summary(w http.ResponseWriter, r *http.Request, userID string) {
	var errs validator.ValidationErrors
	year := parseYear(r, h.now(), &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.leaveService.CalendarSummary(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// NewCalendarHandler builds the calendar handler. A nil clock defaults to time.Now.
func NewCalendarHandler(leaveService leave.LeaveService, now func() time.Time) CalendarHandler {
	if now == nil {
		now = time.Now
	}
	return &CalendarHandlerImpl{
		leaveService: leaveService,
		now:          now,
	}
}
