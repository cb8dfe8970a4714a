package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// parsePaging reads the skip and limit query parameters.
func parsePaging(r *http.Request, errs *validator.ValidationErrors) (skip, limit uint64) {
	q := r.URL.Query()
	limit = defaultLimit

	if v := q.Get("skip"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs.Add("skip", "skip must be a non-negative integer")
		}
		skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 || n > maxLimit {
			errs.Add("limit", "limit must be between 1 and 500")
		} else {
			limit = n
		}
	}
	return skip, limit
}

// parseYear reads the year query parameter, defaulting to the current year.
func parseYear(r *http.Request, now time.Time, errs *validator.ValidationErrors) int {
	v := r.URL.Query().Get("year")
	if v == "" {
		return now.Year()
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1900 || year > 2200 {
		errs.Add("year", "year must be between 1900 and 2200")
		return now.Year()
	}
	return year
}

// parseMonth reads the month query parameter, defaulting to the current month.
func parseMonth(r *http.Request, now time.Time, errs *validator.ValidationErrors) time.Month {
	v := r.URL.Query().Get("month")
	if v == "" {
		return now.Month()
	}
	month, err := strconv.Atoi(v)
	if err != nil || month < 1 || month > 12 {
		errs.Add("month", "month must be between 1 and 12")
		return now.Month()
	}
	return time.Month(month)
}
