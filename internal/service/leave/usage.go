package leave

import (
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
)

// UsedVacationDays sums business days of approved vacation requests lying entirely
// inside the leave year starting June 1 of year.
func UsedVacationDays(requests []absence.AbsenceRequest, year int) int {
	window := domainLeave.LeaveYear(year)

	used := 0
	for _, r := range requests {
		if r.Type != absence.TypeVacation || r.Status != absence.StatusApproved {
			continue
		}
		if !window.Contains(r.StartDate, r.EndDate) {
			continue
		}
		used += BusinessDays(r.StartDate, r.EndDate)
	}
	return used
}

// UsedSickDays sums business days of approved sickness requests and of every
// declaration, each lying entirely inside the calendar year.
func UsedSickDays(requests []absence.AbsenceRequest, declarations []sickness.SicknessDeclaration, year int) int {
	window := domainLeave.CalendarYear(year)

	days := 0
	for _, r := range requests {
		if r.Type != absence.TypeSickness || r.Status != absence.StatusApproved {
			continue
		}
		if window.Contains(r.StartDate, r.EndDate) {
			days += BusinessDays(r.StartDate, r.EndDate)
		}
	}
	for _, d := range declarations {
		if window.Contains(d.StartDate, d.EndDate) {
			days += BusinessDays(d.StartDate, d.EndDate)
		}
	}
	return days
}
