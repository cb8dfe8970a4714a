package sickness

import (
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type DeclarationResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	OwnerName        string  `json:"owner_name,omitempty"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	BusinessDays     int     `json:"business_days"`
	Description      *string `json:"description"`
	DocumentFilename *string `json:"document_filename"`
	EmailSent        bool    `json:"email_sent"`
	ViewedByAdmin    bool    `json:"viewed_by_admin"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func NewDeclarationResponse(d SicknessDeclaration, businessDays int) DeclarationResponse {
	resp := DeclarationResponse{
		ID:               d.ID,
		UserID:           d.UserID,
		StartDate:        d.StartDate.Format(validator.DateLayout),
		EndDate:          d.EndDate.Format(validator.DateLayout),
		BusinessDays:     businessDays,
		Description:      d.Description,
		DocumentFilename: d.DocumentFilename,
		EmailSent:        d.EmailSent,
		ViewedByAdmin:    d.ViewedByAdmin,
		CreatedAt:        d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        d.UpdatedAt.Format(time.RFC3339),
	}
	if d.OwnerFirstName != "" || d.OwnerLastName != "" {
		resp.OwnerName = d.OwnerName()
	}
	return resp
}

type ListQuery struct {
	Skip  uint64
	Limit uint64
}

// CreateDeclarationRequest is built from a multipart form.
type CreateDeclarationRequest struct {
	StartDate    string
	EndDate      string
	Description  *string
	Document     io.Reader
	DocumentName string
	DocumentSize int64

	Start time.Time
	End   time.Time
}

func (r *CreateDeclarationRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Start, r.End = validator.ValidateDateRange(&errs, "start_date", r.StartDate, "end_date", r.EndDate)
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		if trimmed == "" {
			r.Description = nil
		} else if len(trimmed) > 2000 {
			errs.Add("description", "description must be at most 2000 characters")
		} else {
			r.Description = &trimmed
		}
	}
	if r.Document == nil || validator.IsEmpty(r.DocumentName) {
		errs.Add("document", ErrDocumentRequired.Error())
	}
	return errs.Err()
}
