package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindows(t *testing.T) {
	ly := LeaveYear(2024)
	assert.Equal(t, date(2024, time.June, 1), ly.Start)
	assert.Equal(t, date(2025, time.May, 31), ly.End)

	cy := CalendarYear(2024)
	assert.Equal(t, date(2024, time.January, 1), cy.Start)
	assert.Equal(t, date(2024, time.December, 31), cy.End)

	feb := Month(2024, time.February)
	assert.Equal(t, date(2024, time.February, 29), feb.End)
	dec := Month(2024, time.December)
	assert.Equal(t, date(2024, time.December, 31), dec.End)
}

func TestContains(t *testing.T) {
	p := Month(2024, time.June)
	assert.True(t, p.Contains(date(2024, 6, 1), date(2024, 6, 30)))
	assert.True(t, p.Contains(date(2024, 6, 10), date(2024, 6, 10)))
	assert.False(t, p.Contains(date(2024, 5, 31), date(2024, 6, 2)))
	assert.False(t, p.Contains(date(2024, 6, 29), date(2024, 7, 1)))
}

func TestOverlaps(t *testing.T) {
	p := Month(2024, time.June)
	assert.True(t, p.Overlaps(date(2024, 6, 30), date(2024, 7, 2)), "starts inside")
	assert.True(t, p.Overlaps(date(2024, 5, 20), date(2024, 6, 1)), "ends inside")
	assert.True(t, p.Overlaps(date(2024, 5, 1), date(2024, 7, 31)), "spans")
	assert.False(t, p.Overlaps(date(2024, 5, 1), date(2024, 5, 31)))
	assert.False(t, p.Overlaps(date(2024, 7, 1), date(2024, 7, 1)))
}

func TestClip(t *testing.T) {
	p := Month(2024, time.June)
	start, end := p.Clip(date(2024, 5, 30), date(2024, 6, 2))
	assert.Equal(t, date(2024, 6, 1), start)
	assert.Equal(t, date(2024, 6, 2), end)

	start, end = p.Clip(date(2024, 5, 1), date(2024, 8, 1))
	assert.Equal(t, p.Start, start)
	assert.Equal(t, p.End, end)
}

func TestDateTruncates(t *testing.T) {
	in := time.Date(2024, 3, 10, 22, 45, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, date(2024, 3, 10), Date(in))
}
