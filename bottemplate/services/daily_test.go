package services

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/PieceOfFire/cats/internal/domain/calendar"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

func newDaily(f *fixture, now *time.Time) *Daily {
	d := NewDaily(f.game, calendar.DefaultStreakTiers, []int{2, 3, 5}, time.UTC)
	d.now = func() time.Time { return *now }
	return d
}

func TestDaily_StreakScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, BaseMode(nil), twoCards...)
	if _, created, err := f.game.Players.Register(ctx, "100"); err != nil || !created {
		t.Fatalf("Register() created = %t, error = %v", created, err)
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := newDaily(f, &now)

	res, err := d.Claim(ctx, "100")
	if err != nil {
		t.Fatalf("first Claim() error = %v", err)
	}
	if res.Streak != 1 || res.Reward != 1 || res.Spins != StartSpins+1 {
		t.Errorf("first claim got = %+v, want streak 1 reward 1 spins %d", res, StartSpins+1)
	}

	if _, err := d.Claim(ctx, "100"); !errors.Is(err, calendar.ErrAlreadyClaimed) {
		t.Fatalf("same day Claim() error = %v, want ErrAlreadyClaimed", err)
	}
	p := f.player(t, "100")
	if p.Record.Int(ColStreak) != 1 || p.Spins() != StartSpins+1 {
		t.Errorf("after repeat streak=%d spins=%d, want 1 and %d", p.Record.Int(ColStreak), p.Spins(), StartSpins+1)
	}

	now = now.AddDate(0, 0, 1)
	if res, err = d.Claim(ctx, "100"); err != nil || res.Streak != 2 {
		t.Fatalf("next day Claim() = %+v, %v, want streak 2", res, err)
	}

	now = now.AddDate(0, 0, 3)
	if res, err = d.Claim(ctx, "100"); err != nil || res.Streak != 1 {
		t.Fatalf("after gap Claim() = %+v, %v, want streak 1", res, err)
	}
	if got := f.player(t, "100").Record.String(ColLastDaily); got != "2026-03-05" {
		t.Errorf("LAST_DAILY got = %q, want 2026-03-05", got)
	}
}

func TestDaily_BonusGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, BaseMode(nil), twoCards...)
	f.seed(t, "100", sheets.Record{ColSpins: "10", ColStreak: "4", ColLastDaily: "2026-03-01"})

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	d := newDaily(f, &now)

	res, err := d.Claim(ctx, "100")
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if !res.Bonus || res.Streak != 5 {
		t.Fatalf("Claim() got = %+v, want bonus on streak 5", res)
	}
	p := f.player(t, "100")
	if !p.Record.Flag(ColDailyBonus) || p.Spins() != 10 {
		t.Errorf("after bonus claim flag=%t spins=%d, want pending and 10", p.Record.Flag(ColDailyBonus), p.Spins())
	}

	if _, err := d.PlayBonus(ctx, "100", 3); !errors.Is(err, ErrInvalidChest) {
		t.Errorf("PlayBonus(3) error = %v, want ErrInvalidChest", err)
	}

	bonus, err := d.PlayBonus(ctx, "100", 1)
	if err != nil {
		t.Fatalf("PlayBonus() error = %v", err)
	}
	if !slices.Contains([]int{2, 3, 5}, bonus.Prize) || bonus.Prizes[1] != bonus.Prize {
		t.Errorf("PlayBonus() got = %+v, want prize from the shuffled set", bonus)
	}
	sorted := slices.Clone(bonus.Prizes)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []int{2, 3, 5}) {
		t.Errorf("prizes got = %v, want a permutation of [2 3 5]", bonus.Prizes)
	}

	p = f.player(t, "100")
	if p.Record.Flag(ColDailyBonus) || p.Spins() != 10+bonus.Prize {
		t.Errorf("after play flag=%t spins=%d, want cleared and %d", p.Record.Flag(ColDailyBonus), p.Spins(), 10+bonus.Prize)
	}

	_, err = d.PlayBonus(ctx, "100", 0)
	if !errors.Is(err, ErrNoBonusPending) || !errors.Is(err, calendar.ErrAlreadyClaimed) {
		t.Errorf("second PlayBonus() error = %v, want ErrNoBonusPending", err)
	}
}

func TestDaily_CapsSpins(t *testing.T) {
	f := newFixture(t, BaseMode(nil), twoCards...)
	f.seed(t, "100", sheets.Record{ColSpins: "999"})

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	res, err := newDaily(f, &now).Claim(context.Background(), "100")
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if res.Spins != MaxSpins || f.player(t, "100").Spins() != MaxSpins {
		t.Errorf("spins got = %d, want %d", res.Spins, MaxSpins)
	}
}
