package leave

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

const recentRequestsLimit = 10

// BuildAbsenceSummary rolls up every request and declaration of a user, with no date filter.
func BuildAbsenceSummary(u user.User, requests []absence.AbsenceRequest, declarations []sickness.SicknessDeclaration) domainLeave.AbsenceSummary {
	summary := domainLeave.AbsenceSummary{
		User: domainLeave.SummaryUser{
			ID:              u.ID,
			Email:           u.Email,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			AnnualLeaveDays: u.AnnualLeaveDays,
		},
		RecentRequests: []domainLeave.RecentRequest{},
	}

	for _, r := range requests {
		switch r.Status {
		case absence.StatusApproved:
			days := BusinessDays(r.StartDate, r.EndDate)
			summary.TotalAbsenceDays += days
			switch r.Type {
			case absence.TypeVacation:
				summary.VacationDays += days
			case absence.TypeSickness:
				summary.SickDays += days
			}
			summary.ApprovedRequests++
		case absence.StatusPending:
			summary.PendingRequests++
		}
	}

	// Declarations have no status and always count
	for _, d := range declarations {
		days := BusinessDays(d.StartDate, d.EndDate)
		summary.SickDays += days
		summary.TotalAbsenceDays += days
	}

	recent := make([]absence.AbsenceRequest, len(requests))
	copy(recent, requests)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentRequestsLimit {
		recent = recent[:recentRequestsLimit]
	}
	for _, r := range recent {
		summary.RecentRequests = append(summary.RecentRequests, domainLeave.RecentRequest{
			ID:           r.ID,
			Type:         string(r.Type),
			StartDate:    r.StartDate.Format(validator.DateLayout),
			EndDate:      r.EndDate.Format(validator.DateLayout),
			Status:       string(r.Status),
			Reason:       r.Reason,
			AdminComment: r.AdminComment,
			BusinessDays: BusinessDays(r.StartDate, r.EndDate),
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		})
	}

	return summary
}

// UsedCalendarDays counts calendar days of approved vacation requests overlapping the
// calendar year, clipped to it.
func UsedCalendarDays(requests []absence.AbsenceRequest, year int) int {
	window := domainLeave.CalendarYear(year)

	used := 0
	for _, r := range requests {
		if r.Type != absence.TypeVacation || r.Status != absence.StatusApproved {
			continue
		}
		if !window.Overlaps(r.StartDate, r.EndDate) {
			continue
		}
		start, end := window.Clip(r.StartDate, r.EndDate)
		used += CalendarDays(start, end)
	}
	return used
}
