package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
)

func request(id string, typ absence.Type, status absence.Status, start, end string) absence.AbsenceRequest {
	return absence.AbsenceRequest{
		ID:             id,
		UserID:         "user-1",
		Type:           typ,
		StartDate:      day(start),
		EndDate:        day(end),
		Status:         status,
		CreatedAt:      day(start).Add(-24 * time.Hour),
		OwnerFirstName: "Alice",
		OwnerLastName:  "Martin",
	}
}

func declaration(id, start, end string, emailSent bool) sickness.SicknessDeclaration {
	return sickness.SicknessDeclaration{
		ID:             id,
		UserID:         "user-1",
		StartDate:      day(start),
		EndDate:        day(end),
		EmailSent:      emailSent,
		CreatedAt:      day(start),
		OwnerFirstName: "Alice",
		OwnerLastName:  "Martin",
	}
}

func strPtr(s string) *string {
	return &s
}
