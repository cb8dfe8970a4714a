package sickness

import "time"

// SicknessDeclaration reports an illness period backed by a document.
// It has no status and always counts as approved.
type SicknessDeclaration struct {
	ID               string
	UserID           string
	StartDate        time.Time
	EndDate          time.Time
	Description      *string
	DocumentFilename *string
	DocumentPath     *string
	EmailSent        bool
	ViewedByAdmin    bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	OwnerFirstName string
	OwnerLastName  string
	OwnerEmail     string
}

func (s *SicknessDeclaration) OwnerName() string {
	return s.OwnerFirstName + " " + s.OwnerLastName
}
