package gcalendar

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

var statusEmoji = map[absence.Status]string{
	absence.StatusPending:  "⏳",
	absence.StatusApproved: "✅",
	absence.StatusRejected: "❌",
}

// Google Calendar palette ids: banana, basil, flamingo.
var statusColor = map[absence.Status]string{
	absence.StatusPending:  "5",
	absence.StatusApproved: "10",
	absence.StatusRejected: "4",
}

// EventTitle is the summary shown on the shared calendar.
func EventTitle(a absence.AbsenceRequest) string {
	emoji, ok := statusEmoji[a.Status]
	if !ok {
		emoji = "📅"
	}
	return fmt.Sprintf("%s %s - %s", emoji, a.OwnerName(), a.Type.Label())
}

func (c *Client) buildEvent(a absence.AbsenceRequest) *calendar.Event {
	var desc strings.Builder
	fmt.Fprintf(&desc, "Type: %s\n", a.Type.Label())
	fmt.Fprintf(&desc, "From %s to %s\n", a.StartDate.Format(dateLayout), a.EndDate.Format(dateLayout))
	fmt.Fprintf(&desc, "Status: %s\n", a.Status)
	if a.Reason != nil && *a.Reason != "" {
		fmt.Fprintf(&desc, "Reason: %s\n", *a.Reason)
	}
	if a.AdminComment != nil && *a.AdminComment != "" {
		fmt.Fprintf(&desc, "Admin comment: %s\n", *a.AdminComment)
	}
	if a.OwnerEmail != "" {
		fmt.Fprintf(&desc, "Employee: %s\n", a.OwnerEmail)
	}

	transparency := "opaque"
	if a.Status == absence.StatusRejected {
		transparency = "transparent"
	}

	return &calendar.Event{
		Summary:     EventTitle(a),
		Description: desc.String(),
		// All-day events use an exclusive end date
		Start:        &calendar.EventDateTime{Date: a.StartDate.Format(dateLayout), TimeZone: c.timeZone},
		End:          &calendar.EventDateTime{Date: a.EndDate.AddDate(0, 0, 1).Format(dateLayout), TimeZone: c.timeZone},
		ColorId:      statusColor[a.Status],
		Transparency: transparency,
	}
}
