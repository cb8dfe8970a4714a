package absence

import "time"

type Type string

const (
	TypeVacation Type = "vacation"
	TypeSickness Type = "sickness"
)

// Label is the human readable type name used in titles.
func (t Type) Label() string {
	switch t {
	case TypeVacation:
		return "Vacation"
	case TypeSickness:
		return "Sickness"
	default:
		return string(t)
	}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type AbsenceRequest struct {
	ID                    string
	UserID                string
	Type                  Type
	StartDate             time.Time
	EndDate               time.Time
	Reason                *string
	Status                Status
	AdminComment          *string
	ApprovedByID          *string
	GoogleCalendarEventID *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Join
	OwnerFirstName string
	OwnerLastName  string
	OwnerEmail     string
}

func (a *AbsenceRequest) OwnerName() string {
	return a.OwnerFirstName + " " + a.OwnerLastName
}

func (a *AbsenceRequest) IsPending() bool {
	return a.Status == StatusPending
}
