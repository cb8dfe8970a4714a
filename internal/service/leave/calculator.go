package leave

import (
	"time"

	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
)

// BusinessDays counts Monday to Friday dates in [start, end], both inclusive.
// A reversed range yields 0. Public holidays are not considered.
func BusinessDays(start, end time.Time) int {
	start, end = domainLeave.Date(start), domainLeave.Date(end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// CalendarDays counts every date in [start, end], both inclusive.
func CalendarDays(start, end time.Time) int {
	start, end = domainLeave.Date(start), domainLeave.Date(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
