package calendar

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultWindow(t *testing.T) {
	tests := []struct {
		today     string
		wantStart string
		wantEnd   string
	}{
		{"2025-12-05", "2025-12-22", "2026-01-10"},
		{"2026-01-04", "2025-12-22", "2026-01-10"},
		{"2026-06-15", "2026-12-22", "2027-01-10"},
	}
	for _, tt := range tests {
		w := DefaultWindow(date(tt.today))
		if w.Start.Format(DateLayout) != tt.wantStart || w.End.Format(DateLayout) != tt.wantEnd {
			t.Errorf("DefaultWindow(%s) got = %s..%s, want %s..%s", tt.today,
				w.Start.Format(DateLayout), w.End.Format(DateLayout), tt.wantStart, tt.wantEnd)
		}
	}
}

func TestResolveWindow(t *testing.T) {
	w, err := ResolveWindow("2025-12-01", "", date("2025-06-01"))
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if w.End.Format(DateLayout) != "2026-01-10" {
		t.Errorf("ResolveWindow() end = %s", w.End.Format(DateLayout))
	}

	w, err = ResolveWindow("", "2026-01-20", date("2025-12-30"))
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if w.Start.Format(DateLayout) != "2025-12-22" || w.End.Format(DateLayout) != "2026-01-20" {
		t.Errorf("ResolveWindow() got = %s..%s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
	}

	if _, err := ResolveWindow("22.12.2025", "", date("2025-06-01")); err == nil {
		t.Errorf("ResolveWindow() accepted a malformed date")
	}
}

func TestWindow_DayIndex(t *testing.T) {
	w := Window{Start: date("2025-12-22"), End: date("2026-01-10")}
	tests := []struct {
		today string
		want  int
	}{
		{"2025-12-21", 0},
		{"2025-12-22", 1},
		{"2025-12-24", 3},
		{"2026-01-10", 20},
		{"2026-01-11", 20},
	}
	for _, tt := range tests {
		if got := w.DayIndex(date(tt.today), 20); got != tt.want {
			t.Errorf("DayIndex(%s) got = %d, want %d", tt.today, got, tt.want)
		}
	}

	if got := w.DayIndex(date("2026-01-05"), 10); got != 10 {
		t.Errorf("DayIndex() with short table got = %d, want 10", got)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		state    string
		dayIndex int
		days     int
		want     string
	}{
		{"empty state", "", 2, 5, "00www"},
		{"keeps claims", "1w0ww", 3, 5, "100ww"},
		{"short state is padded", "1", 0, 4, "wwww"},
		{"long state is truncated", "1111111", 7, 3, "111"},
		{"garbage cells open", "x?1ww", 2, 5, "00www"},
		// A rewound window locks days that were already open or claimed.
		{"rewind retracts open days", "110", 1, 3, "1ww"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.state, tt.dayIndex, tt.days)
			if got != tt.want {
				t.Errorf("Reconcile() got = %q, want %q", got, tt.want)
			}
			if len(got) != tt.days {
				t.Errorf("Reconcile() len = %d, want %d", len(got), tt.days)
			}
		})
	}
}

// The start day opens day 1, so two days after the start three cells are
// open, not two. The bot has always counted the start day this way.
func TestAdventScenario_TwoDaysAfterStart(t *testing.T) {
	w := Window{Start: date("2025-12-22"), End: date("2026-01-10")}
	idx := w.DayIndex(date("2025-12-24"), 20)
	if idx != 3 {
		t.Fatalf("DayIndex() = %d, want 3", idx)
	}

	state := Reconcile(strings.Repeat("w", 20), idx, 20)
	if state != "000"+strings.Repeat("w", 17) {
		t.Fatalf("state got = %q", state)
	}

	next, err := ClaimAdvent(state, 1)
	if err != nil {
		t.Fatalf("ClaimAdvent(1) error = %v", err)
	}
	if _, err := ClaimAdvent(next, 1); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("repeat claim error = %v", err)
	}
	if _, err := ClaimAdvent(next, 4); !errors.Is(err, ErrNotYetAvailable) {
		t.Errorf("day 4 claim error = %v", err)
	}
}

func TestAdventScenario(t *testing.T) {
	w := Window{Start: date("2025-12-22"), End: date("2026-01-10")}
	// The start day itself opens day 1, so the second day of the window has two open cells.
	idx := w.DayIndex(date("2025-12-23"), 20)
	state := Reconcile(strings.Repeat("w", 20), idx, 20)
	if state != "00"+strings.Repeat("w", 18) {
		t.Fatalf("state got = %q", state)
	}

	next, err := ClaimAdvent(state, 1)
	if err != nil {
		t.Fatalf("ClaimAdvent() error = %v", err)
	}
	if next != "10"+strings.Repeat("w", 18) {
		t.Errorf("ClaimAdvent() state = %q", next)
	}

	if again, err := ClaimAdvent(next, 1); !errors.Is(err, ErrAlreadyClaimed) || again != next {
		t.Errorf("repeat claim got = %q, %v", again, err)
	}
	if same, err := ClaimAdvent(next, 3); !errors.Is(err, ErrNotYetAvailable) || same != next {
		t.Errorf("locked claim got = %q, %v", same, err)
	}
	if _, err := ClaimAdvent(next, 21); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("out of range claim error = %v", err)
	}
}
