package leave

import (
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

// BuildDashboard combines the allotment with usage figures. Admins have no personal balance.
func BuildDashboard(u user.User, usedVacation, sickDays int, counts map[absence.Status]int, year int) domainLeave.Dashboard {
	if u.IsAdmin() {
		return domainLeave.Dashboard{}
	}

	return domainLeave.Dashboard{
		RemainingDays: max(0, u.AnnualLeaveDays-usedVacation),
		UsedDays:      usedVacation,
		TotalDays:     u.AnnualLeaveDays,
		PendingCount:  counts[absence.StatusPending],
		ApprovedCount: counts[absence.StatusApproved],
		SickDays:      sickDays,
		Year:          year,
	}
}
