package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBusinessDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"monday to friday", "2024-01-01", "2024-01-05", 5},
		{"weekend only", "2024-01-06", "2024-01-07", 0},
		{"single weekday", "2024-01-03", "2024-01-03", 1},
		{"single saturday", "2024-01-06", "2024-01-06", 0},
		{"single sunday", "2024-01-07", "2024-01-07", 0},
		{"two full weeks", "2024-01-01", "2024-01-14", 10},
		{"starts on weekend", "2024-01-06", "2024-01-09", 2},
		{"across month end", "2024-05-30", "2024-06-02", 2},
		{"leap day", "2024-02-28", "2024-03-01", 3},
		{"reversed", "2024-01-05", "2024-01-01", 0},
		{"reversed by one day", "2024-01-02", "2024-01-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BusinessDays(day(tt.start), day(tt.end)))
		})
	}
}

func TestBusinessDaysReversedAlwaysZero(t *testing.T) {
	base := day("2024-01-01")
	for offset := 1; offset <= 60; offset++ {
		start := base.AddDate(0, 0, offset)
		for back := 1; back <= 10; back++ {
			assert.Zero(t, BusinessDays(start, start.AddDate(0, 0, -back)))
		}
	}
}

func TestBusinessDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 5, BusinessDays(start, end))
}

func TestCalendarDays(t *testing.T) {
	assert.Equal(t, 1, CalendarDays(day("2024-06-01"), day("2024-06-01")))
	assert.Equal(t, 7, CalendarDays(day("2024-06-01"), day("2024-06-07")))
	assert.Equal(t, 366, CalendarDays(day("2024-01-01"), day("2024-12-31")))
	assert.Zero(t, CalendarDays(day("2024-06-02"), day("2024-06-01")))
}
