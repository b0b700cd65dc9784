package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/PieceOfFire/cats/internal/domain/calendar"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

var AdventSchema = sheets.Schema{
	Table: "winter_advent",
	Key:   "DAY",
	Columns: []sheets.Column{
		{Name: "DAY"},
		{Name: "SPINS", Default: "1"},
		{Name: "CURRENCY", Default: "5"},
		{Name: "LUCK", Default: "0"},
	},
}

// AdventDay is the configured reward of one calendar cell.
type AdventDay struct {
	Day      int
	Spins    int
	Currency int
	Luck     int
}

// AdventView is a user's reconciled calendar.
type AdventView struct {
	State    string
	DayIndex int
	Window   calendar.Window
	Days     []AdventDay
}

// AdventClaim is a committed advent reward.
type AdventClaim struct {
	Reward   AdventDay
	State    string
	Spins    int
	Currency int
	Luck     int
}

// Advent runs the winter calendar over the mode's users table.
type Advent struct {
	game       *Game
	days       *sheets.Store
	count      int
	start, end string
	loc        *time.Location
	now        func() time.Time
}

func NewAdvent(game *Game, days *sheets.Store, count int, start, end string, loc *time.Location) *Advent {
	if loc == nil {
		loc = time.UTC
	}
	return &Advent{game: game, days: days, count: count, start: start, end: end, loc: loc, now: time.Now}
}

func (a *Advent) Count() int { return a.count }

// Seed appends default reward rows for every missing day.
func (a *Advent) Seed(ctx context.Context) error {
	rows, err := a.days.Rows(ctx)
	if err != nil {
		return fmt.Errorf("failed to read advent rewards: %w", err)
	}
	have := make(map[int]bool, len(rows))
	for _, r := range rows {
		have[r.Int("DAY")] = true
	}

	added := 0
	for d := 1; d <= a.count; d++ {
		if have[d] {
			continue
		}
		if _, err := a.days.Append(ctx, strconv.Itoa(d), nil); err != nil {
			return fmt.Errorf("failed to seed advent day %d: %w", d, err)
		}
		added++
	}
	if added > 0 {
		slog.Info("Advent rewards seeded",
			slog.String("type", "sys"),
			slog.Int("days", added),
		)
	}
	return nil
}

// Rewards lists the configured reward of every day; missing rows use the defaults.
func (a *Advent) Rewards(ctx context.Context) ([]AdventDay, error) {
	rows, err := a.days.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read advent rewards: %w", err)
	}
	byDay := make(map[int]sheets.Record, len(rows))
	for _, r := range rows {
		byDay[r.Int("DAY")] = r
	}

	out := make([]AdventDay, a.count)
	for i := range out {
		d := AdventDay{Day: i + 1, Spins: 1, Currency: 5}
		if r, ok := byDay[i+1]; ok {
			d.Spins, d.Currency, d.Luck = r.Int("SPINS"), r.Int("CURRENCY"), r.Int("LUCK")
		}
		out[i] = d
	}
	return out, nil
}

func (a *Advent) window(today time.Time) (calendar.Window, error) {
	return calendar.ResolveWindow(a.start, a.end, today)
}

// reconcile persists the self-healed state when it differs from the stored one.
func (a *Advent) reconcile(ctx context.Context, p *Player, today time.Time) (string, int, calendar.Window, error) {
	w, err := a.window(today)
	if err != nil {
		return "", 0, w, err
	}
	idx := w.DayIndex(today, a.count)
	stored := p.Record.String(ColAdvent)
	state := calendar.Reconcile(stored, idx, a.count)
	if state != stored {
		if err := a.game.Players.Store().Write(ctx, p.Row, ColAdvent, state); err != nil {
			return "", 0, w, err
		}
	}
	return state, idx, w, nil
}

// View returns the reconciled calendar of userID.
func (a *Advent) View(ctx context.Context, userID string) (AdventView, error) {
	days, err := a.Rewards(ctx)
	if err != nil {
		return AdventView{}, err
	}

	var view AdventView
	today := calendar.Day(a.now(), a.loc)
	err = a.game.Players.With(ctx, userID, func(p *Player) error {
		state, idx, w, err := a.reconcile(ctx, p, today)
		if err != nil {
			return err
		}
		view = AdventView{State: state, DayIndex: idx, Window: w, Days: days}
		return nil
	})
	return view, err
}

// Claim collects the 1-based day. The state write spends the claim before
// any reward is granted.
func (a *Advent) Claim(ctx context.Context, userID string, day int) (AdventClaim, error) {
	days, err := a.Rewards(ctx)
	if err != nil {
		return AdventClaim{}, err
	}
	if day < 1 || day > len(days) {
		return AdventClaim{}, fmt.Errorf("%w: %d", calendar.ErrInvalidDay, day)
	}
	reward := days[day-1]

	maxLuck := rewards.DefaultLuck.Max
	if l := a.game.Mode().Table.Luck; l != nil {
		maxLuck = l.Max
	}

	var res AdventClaim
	today := calendar.Day(a.now(), a.loc)
	err = a.game.Players.With(ctx, userID, func(p *Player) error {
		state, _, _, err := a.reconcile(ctx, p, today)
		if err != nil {
			return err
		}
		next, err := calendar.ClaimAdvent(state, day)
		if err != nil {
			return err
		}

		res = AdventClaim{
			Reward:   reward,
			State:    next,
			Spins:    min(p.Spins()+reward.Spins, MaxSpins),
			Currency: p.Currency() + reward.Currency,
			Luck:     min(p.Record.Int(ColLuck)+reward.Luck, maxLuck),
		}

		mode := a.game.Mode()
		c := begin(ctx, a.game.journal, a.game.Players.Store(), p, "advent",
			fmt.Sprintf("day=%d spins=%d currency=%d luck=%d", day, reward.Spins, reward.Currency, reward.Luck))
		if err := c.write(ctx, ColAdvent, next); err != nil {
			return err
		}
		if reward.Spins != 0 {
			if err := c.write(ctx, mode.Spins, strconv.Itoa(res.Spins)); err != nil {
				return err
			}
		}
		if reward.Currency != 0 {
			if err := c.write(ctx, ColCurrency, strconv.Itoa(res.Currency)); err != nil {
				return err
			}
		}
		if reward.Luck != 0 {
			if err := c.write(ctx, ColLuck, strconv.Itoa(res.Luck)); err != nil {
				return err
			}
		}
		c.done(ctx)
		return nil
	})
	return res, err
}
