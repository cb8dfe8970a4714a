package absence

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type AbsenceRequestResponse struct {
	ID                    string  `json:"id"`
	UserID                string  `json:"user_id"`
	OwnerName             string  `json:"owner_name,omitempty"`
	OwnerEmail            string  `json:"owner_email,omitempty"`
	Type                  string  `json:"type"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	BusinessDays          int     `json:"business_days"`
	Reason                *string `json:"reason"`
	Status                string  `json:"status"`
	AdminComment          *string `json:"admin_comment"`
	ApprovedByID          *string `json:"approved_by_id"`
	GoogleCalendarEventID *string `json:"google_calendar_event_id,omitempty"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

func NewAbsenceRequestResponse(a AbsenceRequest, businessDays int) AbsenceRequestResponse {
	resp := AbsenceRequestResponse{
		ID:                    a.ID,
		UserID:                a.UserID,
		OwnerEmail:            a.OwnerEmail,
		Type:                  string(a.Type),
		StartDate:             a.StartDate.Format(validator.DateLayout),
		EndDate:               a.EndDate.Format(validator.DateLayout),
		BusinessDays:          businessDays,
		Reason:                a.Reason,
		Status:                string(a.Status),
		AdminComment:          a.AdminComment,
		ApprovedByID:          a.ApprovedByID,
		GoogleCalendarEventID: a.GoogleCalendarEventID,
		CreatedAt:             a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             a.UpdatedAt.Format(time.RFC3339),
	}
	if a.OwnerFirstName != "" || a.OwnerLastName != "" {
		resp.OwnerName = a.OwnerName()
	}
	return resp
}

type ListQuery struct {
	Status string
	Type   string
	Skip   uint64
	Limit  uint64
}

func (q *ListQuery) Validate() error {
	var errs validator.ValidationErrors
	if q.Status != "" && !validator.IsInSlice(q.Status, validStatuses) {
		errs.Add("status", "status must be one of: pending, approved, rejected")
	}
	if q.Type != "" && !validator.IsInSlice(q.Type, validTypes) {
		errs.Add("type", "type must be one of: vacation, sickness")
	}
	if q.Limit == 0 || q.Limit > 500 {
		q.Limit = 100
	}
	return errs.Err()
}

var (
	validTypes    = []string{string(TypeVacation), string(TypeSickness)}
	validStatuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
)

type CreateAbsenceRequest struct {
	Type      string  `json:"type" validate:"required,oneof=vacation sickness"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=1000"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateAbsenceRequest) Validate() error {
	errs := validator.Struct(r)
	r.Start, r.End = validator.ValidateDateRange(&errs, "start_date", r.StartDate, "end_date", r.EndDate)
	return errs.Err()
}

// AdminCreateAbsenceRequest records an absence on behalf of a user. Status defaults to approved.
type AdminCreateAbsenceRequest struct {
	UserID       string  `json:"user_id" validate:"required"`
	Type         string  `json:"type" validate:"required,oneof=vacation sickness"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	AdminComment *string `json:"admin_comment,omitempty" validate:"omitempty,max=1000"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *AdminCreateAbsenceRequest) Validate() error {
	errs := validator.Struct(r)
	r.Start, r.End = validator.ValidateDateRange(&errs, "start_date", r.StartDate, "end_date", r.EndDate)
	if r.Status == "" {
		r.Status = string(StatusApproved)
	}
	return errs.Err()
}

// UpdateAbsenceRequest is an owner edit of a pending request. Nil fields are left unchanged.
type UpdateAbsenceRequest struct {
	ID        string  `json:"-"`
	Type      *string `json:"type,omitempty" validate:"omitempty,oneof=vacation sickness"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateAbsenceRequest) Validate() error {
	errs := validator.Struct(r)
	validateOptionalDate(&errs, "start_date", r.StartDate)
	validateOptionalDate(&errs, "end_date", r.EndDate)
	return errs.Err()
}

// AdminUpdateAbsenceRequest edits any request regardless of status.
type AdminUpdateAbsenceRequest struct {
	UpdateAbsenceRequest
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	AdminComment *string `json:"admin_comment,omitempty" validate:"omitempty,max=1000"`
}

func (r *AdminUpdateAbsenceRequest) Validate() error {
	errs := validator.Struct(r)
	validateOptionalDate(&errs, "start_date", r.StartDate)
	validateOptionalDate(&errs, "end_date", r.EndDate)
	return errs.Err()
}

type UpdateStatusRequest struct {
	ID           string  `json:"-"`
	Status       string  `json:"status" validate:"required,oneof=pending approved rejected"`
	AdminComment *string `json:"admin_comment,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r).Err()
}

type PendingCountResponse struct {
	AbsenceRequests      int `json:"absence_requests"`
	SicknessDeclarations int `json:"sickness_declarations"`
	Total                int `json:"total"`
}

func validateOptionalDate(errs *validator.ValidationErrors, field string, value *string) {
	if value == nil {
		return
	}
	if _, ok := validator.IsValidDate(*value); !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
	}
}
