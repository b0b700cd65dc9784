package calendar

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrAlreadyClaimed  = errors.New("already claimed")
	ErrNotYetAvailable = errors.New("not yet available")
	ErrInvalidDay      = errors.New("invalid day")
)

// Day truncates t to its calendar day in loc. The result is midnight UTC so
// day arithmetic never crosses a DST edge.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads an ISO date, tolerating a trailing time part.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
