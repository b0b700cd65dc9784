package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PieceOfFire/cats/internal/domain/calendar"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

func newAdvent(t *testing.T, f *fixture, now time.Time) (*Advent, *sheets.Store) {
	t.Helper()
	days := sheets.NewStore(sheets.NewMemoryTable(AdventSchema.Table, AdventSchema.Headers()), AdventSchema)
	a := NewAdvent(f.game, days, 20, "2026-12-22", "", time.UTC)
	a.now = func() time.Time { return now }
	return a, days
}

func TestAdvent_Seed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WinterMode(), twoCards...)
	a, days := newAdvent(t, f, time.Date(2026, 12, 23, 9, 0, 0, 0, time.UTC))

	if _, err := days.Append(ctx, "3", sheets.Record{"SPINS": "4"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	for range 2 {
		if err := a.Seed(ctx); err != nil {
			t.Fatalf("Seed() error = %v", err)
		}
	}

	rows, _ := days.Rows(ctx)
	if len(rows) != 20 {
		t.Fatalf("rows got = %d, want 20", len(rows))
	}
	rewards, err := a.Rewards(ctx)
	if err != nil {
		t.Fatalf("Rewards() error = %v", err)
	}
	if rewards[0] != (AdventDay{Day: 1, Spins: 1, Currency: 5}) {
		t.Errorf("day 1 got = %+v, want default", rewards[0])
	}
	if rewards[2].Spins != 4 {
		t.Errorf("day 3 spins got = %d, want configured 4", rewards[2].Spins)
	}
}

func TestAdvent_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WinterMode(), twoCards...)
	a, _ := newAdvent(t, f, time.Date(2026, 12, 23, 9, 0, 0, 0, time.UTC))
	if err := a.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	view, err := a.View(ctx, "300")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	want := "00" + strings.Repeat("w", 18)
	if view.State != want || view.DayIndex != 2 {
		t.Fatalf("View() state = %q index %d, want %q index 2", view.State, view.DayIndex, want)
	}
	if got := f.player(t, "300").Record.String(ColAdvent); got != want {
		t.Errorf("stored state got = %q, want %q", got, want)
	}

	claim, err := a.Claim(ctx, "300", 1)
	if err != nil {
		t.Fatalf("Claim(1) error = %v", err)
	}
	if claim.State != "10"+strings.Repeat("w", 18) {
		t.Errorf("Claim(1) state got = %q", claim.State)
	}
	p := f.player(t, "300")
	if p.Spins() != StartSpins+1 || p.Currency() != 5 {
		t.Errorf("after claim spins=%d currency=%d, want %d and 5", p.Spins(), p.Currency(), StartSpins+1)
	}

	tests := []struct {
		day     int
		wantErr error
	}{
		{1, calendar.ErrAlreadyClaimed},
		{3, calendar.ErrNotYetAvailable},
		{21, calendar.ErrInvalidDay},
		{0, calendar.ErrInvalidDay},
	}
	for _, tt := range tests {
		if _, err := a.Claim(ctx, "300", tt.day); !errors.Is(err, tt.wantErr) {
			t.Errorf("Claim(%d) error = %v, want %v", tt.day, err, tt.wantErr)
		}
	}
	if p2 := f.player(t, "300"); p2.Spins() != p.Spins() || p2.Currency() != p.Currency() {
		t.Errorf("rejected claims changed the row: spins=%d currency=%d", p2.Spins(), p2.Currency())
	}
}

func TestAdvent_LuckCapped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WinterMode(), twoCards...)
	a, days := newAdvent(t, f, time.Date(2027, 1, 20, 9, 0, 0, 0, time.UTC))
	if _, err := days.Append(ctx, "1", sheets.Record{"SPINS": "0", "CURRENCY": "0", "LUCK": "30"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	f.seed(t, "300", sheets.Record{ColLuck: "90"})

	claim, err := a.Claim(ctx, "300", 1)
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if claim.Luck != 100 || f.player(t, "300").Luck() != 100 {
		t.Errorf("luck got = %d, want capped 100", claim.Luck)
	}
	if claim.State != "1"+strings.Repeat("0", 19) {
		t.Errorf("state after window got = %q, want every day open", claim.State)
	}
}
