package http

import (
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	leaveService leave.LeaveService
}

// Get implements DashboardHandler.
func (h *DashboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	dashboard, err := h.leaveService.Dashboard(r.Context(), actor.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

func NewDashboardHandler(leaveService leave.LeaveService) DashboardHandler {
	return &DashboardHandlerImpl{leaveService: leaveService}
}
