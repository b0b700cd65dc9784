package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Advent cell states.
const (
	Locked  = 'w'
	Open    = '0'
	Claimed = '1'
)

// Window is the inclusive date range of the advent campaign.
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow is Dec 22 -> Jan 10 around today. In January the campaign
// that started last December is still current.
func DefaultWindow(today time.Time) Window {
	year := today.Year()
	if today.Month() == time.January {
		year--
	}
	return Window{
		Start: time.Date(year, time.December, 22, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
}

// ResolveWindow applies optional ISO overrides on top of the default window.
func ResolveWindow(start, end string, today time.Time) (Window, error) {
	w := DefaultWindow(today)
	if start = strings.TrimSpace(start); start != "" {
		d, err := ParseDate(start)
		if err != nil {
			return Window{}, fmt.Errorf("invalid advent start %q: %w", start, err)
		}
		w.Start = d
		if d.Month() == time.December {
			w.End = time.Date(d.Year()+1, time.January, 10, 0, 0, 0, 0, time.UTC)
		} else {
			w.End = time.Date(d.Year(), time.January, 10, 0, 0, 0, 0, time.UTC)
		}
	}
	if end = strings.TrimSpace(end); end != "" {
		d, err := ParseDate(end)
		if err != nil {
			return Window{}, fmt.Errorf("invalid advent end %q: %w", end, err)
		}
		w.End = d
	}
	return w, nil
}

// DayIndex is the number of opened days: 0 before the window, days after it.
func (w Window) DayIndex(today time.Time, days int) int {
	switch {
	case today.Before(w.Start):
		return 0
	case today.After(w.End):
		return days
	}
	return clamp(daysBetween(w.Start, today)+1, 0, days)
}

// Reconcile fits state to days and re-derives which cells are open. Cells at
// or past dayIndex are forced back to locked even if an earlier window had
// opened or claimed them.
func Reconcile(state string, dayIndex, days int) string {
	days = max(days, 0)
	cells := []rune(strings.TrimSpace(state))
	for len(cells) < days {
		cells = append(cells, Locked)
	}
	cells = cells[:days]

	for i := range cells {
		if i >= dayIndex {
			cells[i] = Locked
			continue
		}
		if cells[i] != Open && cells[i] != Claimed {
			cells[i] = Open
		}
	}
	return string(cells)
}

// ClaimAdvent marks the 1-based day as claimed in a reconciled state.
func ClaimAdvent(state string, day int) (string, error) {
	cells := []rune(state)
	if day < 1 || day > len(cells) {
		return state, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	switch cells[day-1] {
	case Claimed:
		return state, ErrAlreadyClaimed
	case Open:
		cells[day-1] = Claimed
		return string(cells), nil
	}
	return state, ErrNotYetAvailable
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
