package absence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/calendarsync"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/leave-backend-go/internal/service/leave"
)

type AbsenceServiceImpl struct {
	absenceRepo  absence.AbsenceRequestRepository
	userRepo     user.UserRepository
	sicknessRepo sickness.SicknessDeclarationRepository
	email        email.EmailService
	notification notification.Service
	// calendar is nil when Google Calendar sync is not configured
	calendar calendarsync.EventPublisher
}

func NewAbsenceService(
	absenceRepo absence.AbsenceRequestRepository,
	userRepo user.UserRepository,
	sicknessRepo sickness.SicknessDeclarationRepository,
	emailService email.EmailService,
	notificationService notification.Service,
	calendar calendarsync.EventPublisher,
) absence.AbsenceService {
	return &AbsenceServiceImpl{
		absenceRepo:  absenceRepo,
		userRepo:     userRepo,
		sicknessRepo: sicknessRepo,
		email:        emailService,
		notification: notificationService,
		calendar:     calendar,
	}
}

func toResponse(a absence.AbsenceRequest) absence.AbsenceRequestResponse {
	return absence.NewAbsenceRequestResponse(a, leave.BusinessDays(a.StartDate, a.EndDate))
}

// List implements absence.AbsenceService. Users only see their own requests.
func (s *AbsenceServiceImpl) List(ctx context.Context, actor user.Actor, query absence.ListQuery) ([]absence.AbsenceRequestResponse, error) {
	filter := absence.Filter{
		Type:   absence.Type(query.Type),
		Status: absence.Status(query.Status),
		Limit:  query.Limit,
		Offset: query.Skip,
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}

	requests, err := s.absenceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}

	responses := make([]absence.AbsenceRequestResponse, 0, len(requests))
	for _, a := range requests {
		responses = append(responses, toResponse(a))
	}
	return responses, nil
}

// GetByID implements absence.AbsenceService.
func (s *AbsenceServiceImpl) GetByID(ctx context.Context, actor user.Actor, id string) (absence.AbsenceRequestResponse, error) {
	a, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return absence.AbsenceRequestResponse{}, err
	}
	if !actor.IsAdmin() && a.UserID != actor.UserID {
		return absence.AbsenceRequestResponse{}, absence.ErrNotOwner
	}
	return toResponse(a), nil
}

// Create implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Create(ctx context.Context, actor user.Actor, req absence.CreateAbsenceRequest) (absence.AbsenceRequestResponse, error) {
	if actor.IsAdmin() {
		return absence.AbsenceRequestResponse{}, absence.ErrAdminCannotRequest
	}
	if req.End.Before(req.Start) {
		return absence.AbsenceRequestResponse{}, absence.ErrInvalidDateRange
	}

	created, err := s.absenceRepo.Create(ctx, absence.AbsenceRequest{
		UserID:    actor.UserID,
		Type:      absence.Type(req.Type),
		StartDate: req.Start,
		EndDate:   req.End,
		Reason:    req.Reason,
		Status:    absence.StatusPending,
	})
	if err != nil {
		return absence.AbsenceRequestResponse{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	created = s.publishEvent(ctx, created)
	s.notifyAdmins(ctx, "absence.created", created, s.email.SendNewRequest)

	return toResponse(created), nil
}

// Update implements absence.AbsenceService. Owners may only edit pending requests.
func (s *AbsenceServiceImpl) Update(ctx context.Context, actor user.Actor, req absence.UpdateAbsenceRequest) (absence.AbsenceRequestResponse, error) {
	if actor.IsAdmin() {
		return absence.AbsenceRequestResponse{}, absence.ErrAdminCannotRequest
	}

	existing, err := s.ownedPending(ctx, actor, req.ID)
	if err != nil {
		return absence.AbsenceRequestResponse{}, err
	}
	if err := applyUpdate(&existing, req); err != nil {
		return absence.AbsenceRequestResponse{}, err
	}

	updated, err := s.absenceRepo.Update(ctx, existing)
	if err != nil {
		return absence.AbsenceRequestResponse{}, fmt.Errorf("failed to update absence request: %w", err)
	}

	updated = s.publishEvent(ctx, updated)
	s.notifyAdmins(ctx, "absence.modified", updated, s.email.SendRequestModified)

	return toResponse(updated), nil
}

// Delete implements absence.AbsenceService. Owners may only delete pending requests.
func (s *AbsenceServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if actor.IsAdmin() {
		return absence.ErrAdminCannotRequest
	}

	existing, err := s.ownedPending(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.absenceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeEvent(ctx, existing)
	s.notifyAdmins(ctx, "absence.deleted", existing, s.email.SendRequestDeleted)
	return nil
}

func (s *AbsenceServiceImpl) ownedPending(ctx context.Context, actor user.Actor, id string) (absence.AbsenceRequest, error) {
	existing, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return absence.AbsenceRequest{}, err
	}
	if existing.UserID != actor.UserID {
		return absence.AbsenceRequest{}, absence.ErrNotOwner
	}
	if !existing.IsPending() {
		return absence.AbsenceRequest{}, absence.ErrNotPending
	}
	return existing, nil
}

// UpdateStatus implements absence.AbsenceService.
func (s *AbsenceServiceImpl) UpdateStatus(ctx context.Context, actor user.Actor, req absence.UpdateStatusRequest) (absence.AbsenceRequestResponse, error) {
	if !actor.IsAdmin() {
		return absence.AbsenceRequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	existing, err := s.absenceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return absence.AbsenceRequestResponse{}, err
	}

	existing.Status = absence.Status(req.Status)
	existing.AdminComment = req.AdminComment
	existing.ApprovedByID = &actor.UserID

	updated, err := s.absenceRepo.Update(ctx, existing)
	if err != nil {
		return absence.AbsenceRequestResponse{}, fmt.Errorf("failed to update absence request status: %w", err)
	}

	updated = s.publishEvent(ctx, updated)
	s.notifyOwner(ctx, "absence.status", actor, updated, s.email.SendStatusChange)

	return toResponse(updated), nil
}

// AdminCreate implements absence.AbsenceService.
func (s *AbsenceServiceImpl) AdminCreate(ctx context.Context, actor user.Actor, req absence.AdminCreateAbsenceRequest) (absence.AbsenceRequestResponse, error) {
	if !actor.IsAdmin() {
		return absence.AbsenceRequestResponse{}, user.ErrAdminPrivilegeRequired
	}
	if req.End.Before(req.Start) {
		return absence.AbsenceRequestResponse{}, absence.ErrInvalidDateRange
	}
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return absence.AbsenceRequestResponse{}, err
	}

	status := absence.Status(req.Status)
	if status == "" {
		status = absence.StatusApproved
	}

	created, err := s.absenceRepo.Create(ctx, absence.AbsenceRequest{
		UserID:       req.UserID,
		Type:         absence.Type(req.Type),
		StartDate:    req.Start,
		EndDate:      req.End,
		Reason:       req.Reason,
		Status:       status,
		AdminComment: req.AdminComment,
		ApprovedByID: &actor.UserID,
	})
	if err != nil {
		return absence.AbsenceRequestResponse{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	created = s.publishEvent(ctx, created)
	s.notifyOwner(ctx, "absence.admin_created", actor, created, s.email.SendAdminCreated)

	return toResponse(created), nil
}

// AdminUpdate implements absence.AbsenceService. Any status can be edited.
func (s *AbsenceServiceImpl) AdminUpdate(ctx context.Context, actor user.Actor, req absence.AdminUpdateAbsenceRequest) (absence.AbsenceRequestResponse, error) {
	if !actor.IsAdmin() {
		return absence.AbsenceRequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	existing, err := s.absenceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return absence.AbsenceRequestResponse{}, err
	}
	previousStatus := existing.Status

	if err := applyUpdate(&existing, req.UpdateAbsenceRequest); err != nil {
		return absence.AbsenceRequestResponse{}, err
	}
	if req.AdminComment != nil {
		existing.AdminComment = req.AdminComment
	}
	if req.Status != nil {
		existing.Status = absence.Status(*req.Status)
		existing.ApprovedByID = &actor.UserID
	}

	updated, err := s.absenceRepo.Update(ctx, existing)
	if err != nil {
		return absence.AbsenceRequestResponse{}, fmt.Errorf("failed to update absence request: %w", err)
	}

	updated = s.publishEvent(ctx, updated)
	if updated.Status != previousStatus {
		s.notifyOwner(ctx, "absence.status", actor, updated, s.email.SendStatusChange)
	}

	return toResponse(updated), nil
}

// AdminDelete implements absence.AbsenceService.
func (s *AbsenceServiceImpl) AdminDelete(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	existing, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.absenceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeEvent(ctx, existing)
	return nil
}

// PendingCount implements absence.AbsenceService.
func (s *AbsenceServiceImpl) PendingCount(ctx context.Context) (absence.PendingCountResponse, error) {
	requests, err := s.absenceRepo.Count(ctx, absence.Filter{Status: absence.StatusPending})
	if err != nil {
		return absence.PendingCountResponse{}, fmt.Errorf("failed to count pending requests: %w", err)
	}
	declarations, err := s.sicknessRepo.Count(ctx, sickness.Filter{Unviewed: true})
	if err != nil {
		return absence.PendingCountResponse{}, fmt.Errorf("failed to count unviewed declarations: %w", err)
	}

	return absence.PendingCountResponse{
		AbsenceRequests:      requests,
		SicknessDeclarations: declarations,
		Total:                requests + declarations,
	}, nil
}

// applyUpdate merges the non-nil fields of req into a and re-checks the date order.
func applyUpdate(a *absence.AbsenceRequest, req absence.UpdateAbsenceRequest) error {
	if req.Type != nil {
		a.Type = absence.Type(*req.Type)
	}
	if req.StartDate != nil {
		start, ok := validator.IsValidDate(*req.StartDate)
		if !ok {
			return absence.ErrInvalidDateRange
		}
		a.StartDate = start
	}
	if req.EndDate != nil {
		end, ok := validator.IsValidDate(*req.EndDate)
		if !ok {
			return absence.ErrInvalidDateRange
		}
		a.EndDate = end
	}
	if req.Reason != nil {
		a.Reason = req.Reason
	}
	if a.EndDate.Before(a.StartDate) {
		return absence.ErrInvalidDateRange
	}
	return nil
}

// publishEvent creates or refreshes the calendar event of a. Failures are logged only.
func (s *AbsenceServiceImpl) publishEvent(ctx context.Context, a absence.AbsenceRequest) absence.AbsenceRequest {
	if s.calendar == nil {
		return a
	}

	if a.GoogleCalendarEventID != nil {
		if err := s.calendar.UpdateEvent(ctx, *a.GoogleCalendarEventID, a); err != nil {
			slog.Error("Failed to update calendar event", "absence_request_id", a.ID, "event_id", *a.GoogleCalendarEventID, "error", err)
		}
		return a
	}

	eventID, err := s.calendar.CreateEvent(ctx, a)
	if err != nil {
		slog.Error("Failed to create calendar event", "absence_request_id", a.ID, "error", err)
		return a
	}
	if err := s.absenceRepo.SetCalendarEventID(ctx, a.ID, &eventID); err != nil {
		slog.Error("Failed to store calendar event id", "absence_request_id", a.ID, "event_id", eventID, "error", err)
		return a
	}
	a.GoogleCalendarEventID = &eventID
	return a
}

func (s *AbsenceServiceImpl) removeEvent(ctx context.Context, a absence.AbsenceRequest) {
	if s.calendar == nil || a.GoogleCalendarEventID == nil {
		return
	}
	if err := s.calendar.DeleteEvent(ctx, *a.GoogleCalendarEventID); err != nil {
		slog.Error("Failed to delete calendar event", "absence_request_id", a.ID, "event_id", *a.GoogleCalendarEventID, "error", err)
	}
}

func notificationData(a absence.AbsenceRequest) email.AbsenceNotification {
	data := email.AbsenceNotification{
		EmployeeName: a.OwnerName(),
		Type:         a.Type.Label(),
		StartDate:    a.StartDate.Format(validator.DateLayout),
		EndDate:      a.EndDate.Format(validator.DateLayout),
		BusinessDays: leave.BusinessDays(a.StartDate, a.EndDate),
		Status:       string(a.Status),
	}
	if a.Reason != nil {
		data.Reason = *a.Reason
	}
	if a.AdminComment != nil {
		data.AdminComment = *a.AdminComment
	}
	return data
}

type adminSender func(ctx context.Context, to []string, data email.AbsenceNotification) error

type ownerSender func(ctx context.Context, to string, data email.AbsenceNotification) error

func (s *AbsenceServiceImpl) notifyAdmins(ctx context.Context, name string, a absence.AbsenceRequest, send adminSender) {
	data := notificationData(a)
	s.queue(ctx, name, func(ctx context.Context) error {
		to, err := s.notification.AdminRecipients(ctx)
		if err != nil {
			return err
		}
		return send(ctx, to, data)
	})
}

func (s *AbsenceServiceImpl) notifyOwner(ctx context.Context, name string, actor user.Actor, a absence.AbsenceRequest, send ownerSender) {
	data := notificationData(a)
	to := a.OwnerEmail
	s.queue(ctx, name, func(ctx context.Context) error {
		if admin, err := s.userRepo.GetByID(ctx, actor.UserID); err == nil {
			data.AdminName = admin.FullName()
		}
		return send(ctx, to, data)
	})
}

func (s *AbsenceServiceImpl) queue(ctx context.Context, name string, job notification.Job) {
	// Jobs outlive the request
	if err := s.notification.Queue(context.WithoutCancel(ctx), name, job); err != nil {
		slog.Warn("Failed to queue notification", "job", name, "error", err)
	}
}
