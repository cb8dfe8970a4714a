package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultAnnualLeaveDays is the allotment given to new accounts, in business days.
const DefaultAnnualLeaveDays = 25

type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	Role            Role
	IsActive        bool
	AnnualLeaveDays int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user administers absences
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
