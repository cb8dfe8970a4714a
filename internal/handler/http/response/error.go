package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/calendarsync"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type errorMapping struct {
	err     error
	status  int
	message string // empty uses err.Error()
}

// First match wins.
var errorMappings = []errorMapping{
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect email or password"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "Could not validate credentials"},
	{auth.ErrAccountInactive, http.StatusForbidden, "Inactive user"},

	{user.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{user.ErrUserEmailExists, http.StatusConflict, "Email already registered"},
	{user.ErrUserHasAbsences, http.StatusConflict, "User still has absence records"},
	{user.ErrUserInactive, http.StatusForbidden, "Inactive user"},
	{user.ErrAdminPrivilegeRequired, http.StatusForbidden, "Admin privileges required"},
	{user.ErrCannotModifySelf, http.StatusForbidden, "Admins cannot modify their own account"},
	{user.ErrCannotDeleteSelf, http.StatusForbidden, "Admins cannot delete their own account"},

	{absence.ErrAbsenceRequestNotFound, http.StatusNotFound, "Absence request not found"},
	{absence.ErrNotOwner, http.StatusForbidden, "Not enough permissions"},
	{absence.ErrAdminCannotRequest, http.StatusForbidden, "Admins cannot manage their own absence requests"},
	{absence.ErrNotPending, http.StatusBadRequest, "Only pending absence requests can be changed"},
	{absence.ErrInvalidDateRange, http.StatusBadRequest, "End date must be on or after start date"},

	{sickness.ErrDeclarationNotFound, http.StatusNotFound, "Sickness declaration not found"},
	{sickness.ErrNotOwner, http.StatusForbidden, "Not enough permissions"},
	{sickness.ErrAdminCannotDeclare, http.StatusForbidden, "Admins cannot submit sickness declarations"},
	{sickness.ErrInvalidDateRange, http.StatusBadRequest, "End date must be on or after start date"},
	{sickness.ErrDocumentRequired, http.StatusBadRequest, ""},
	{sickness.ErrDocumentNotPDF, http.StatusBadRequest, ""},
	{sickness.ErrDocumentTooLarge, http.StatusRequestEntityTooLarge, "Document exceeds the maximum upload size"},
	{sickness.ErrDocumentMissing, http.StatusNotFound, "No document stored for this declaration"},
	{sickness.ErrEmailNotSent, http.StatusInternalServerError, "Notification email could not be sent"},

	{calendarsync.ErrSyncDisabled, http.StatusServiceUnavailable, "Google Calendar sync is not configured"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		Fail(w, http.StatusUnprocessableEntity, "Validation failed", validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		message := m.message
		if message == "" {
			message = m.err.Error()
		}
		Fail(w, m.status, message, nil)
		return
	}

	slog.Error("Unhandled error", "error", err)
	Fail(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
}
