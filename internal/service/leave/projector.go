package leave

import (
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

const (
	sickLeaveLabel   = "Sick leave"
	glyphEmailSent   = " ✉️"
	glyphEmailFailed = " ❌"
)

// ProjectionMode selects how titles and declaration reasons are rendered.
type ProjectionMode int

const (
	// ProjectAllUsers is the admin view: titles carry the owner's name.
	ProjectAllUsers ProjectionMode = iota
	// ProjectSingleUser is the personal view: the owner is implicit.
	ProjectSingleUser
)

// ProjectCalendar keeps the records overlapping window, clips them to it and maps
// them to calendar events. Requests come first, then declarations, each in input order.
func ProjectCalendar(window domainLeave.Period, mode ProjectionMode, requests []absence.AbsenceRequest, declarations []sickness.SicknessDeclaration) []domainLeave.CalendarEvent {
	events := make([]domainLeave.CalendarEvent, 0, len(requests)+len(declarations))

	for _, r := range requests {
		if !window.Overlaps(r.StartDate, r.EndDate) {
			continue
		}
		start, end := window.Clip(r.StartDate, r.EndDate)

		title := r.Type.Label() + statusSuffix(r.Status)
		if mode == ProjectAllUsers {
			title = r.OwnerName() + " - " + title
		}

		events = append(events, domainLeave.CalendarEvent{
			ID:        r.ID,
			Title:     title,
			Start:     start.Format(validator.DateLayout),
			End:       end.Format(validator.DateLayout),
			Type:      string(r.Type),
			Status:    string(r.Status),
			OwnerName: r.OwnerName(),
			Reason:    r.Reason,
			Source:    domainLeave.SourceAbsenceRequest,
		})
	}

	for _, d := range declarations {
		if !window.Overlaps(d.StartDate, d.EndDate) {
			continue
		}
		start, end := window.Clip(d.StartDate, d.EndDate)

		title := sickLeaveLabel + emailGlyph(d.EmailSent)
		reason := d.Description
		if mode == ProjectAllUsers {
			title = d.OwnerName() + " - " + title
			if d.DocumentFilename != nil && *d.DocumentFilename != "" {
				reason = d.DocumentFilename
			}
		}

		events = append(events, domainLeave.CalendarEvent{
			ID:        d.ID,
			Title:     title,
			Start:     start.Format(validator.DateLayout),
			End:       end.Format(validator.DateLayout),
			Type:      string(absence.TypeSickness),
			Status:    string(absence.StatusApproved),
			OwnerName: d.OwnerName(),
			Reason:    reason,
			Source:    domainLeave.SourceSicknessDeclaration,
		})
	}

	return events
}

func statusSuffix(status absence.Status) string {
	switch status {
	case absence.StatusPending:
		return " (pending)"
	case absence.StatusRejected:
		return " (rejected)"
	default:
		return ""
	}
}

func emailGlyph(sent bool) string {
	if sent {
		return glyphEmailSent
	}
	return glyphEmailFailed
}
