package absence

import "errors"

var (
	ErrAbsenceRequestNotFound = errors.New("absence request not found")
	ErrNotPending             = errors.New("only pending absence requests can be changed")
	ErrNotOwner               = errors.New("absence request belongs to another user")
	ErrAdminCannotRequest     = errors.New("admins cannot submit absence requests for themselves")
	ErrInvalidDateRange       = errors.New("end date must be on or after start date")
)
