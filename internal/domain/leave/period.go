package leave

import "time"

// Period is an inclusive range of calendar dates.
type Period struct {
	Start time.Time
	End   time.Time
}

// Match selects how a record's own date range is compared to a Period.
type Match int

const (
	// MatchContained requires both record dates to fall inside the period.
	MatchContained Match = iota
	// MatchOverlapping accepts any record that intersects the period.
	MatchOverlapping
)

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LeaveYear is the vacation accounting window: June 1 of year to May 31 of year+1.
func LeaveYear(year int) Period {
	return Period{
		Start: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, time.May, 31, 0, 0, 0, 0, time.UTC),
	}
}

// CalendarYear is January 1 to December 31 of year.
func CalendarYear(year int) Period {
	return Period{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Month spans the first to the last day of the given month.
func Month(year int, month time.Month) Period {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start: first,
		End:   first.AddDate(0, 1, -1),
	}
}

// Contains reports whether [start, end] lies entirely inside the period.
func (p Period) Contains(start, end time.Time) bool {
	start, end = Date(start), Date(end)
	return !start.Before(p.Start) && !end.After(p.End)
}

// Overlaps reports whether [start, end] starts inside, ends inside, or spans the period.
func (p Period) Overlaps(start, end time.Time) bool {
	start, end = Date(start), Date(end)
	startsIn := !start.Before(p.Start) && !start.After(p.End)
	endsIn := !end.Before(p.Start) && !end.After(p.End)
	spans := !start.After(p.Start) && !end.Before(p.End)
	return startsIn || endsIn || spans
}

// Clip clamps [start, end] to the period bounds.
func (p Period) Clip(start, end time.Time) (time.Time, time.Time) {
	start, end = Date(start), Date(end)
	if start.Before(p.Start) {
		start = p.Start
	}
	if end.After(p.End) {
		end = p.End
	}
	return start, end
}
