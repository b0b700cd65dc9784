package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/PieceOfFire/cats/internal/domain/calendar"
)

// DailyResult is a committed daily claim.
type DailyResult struct {
	calendar.DailyClaim
	Spins int
}

// BonusResult is the outcome of a chest pick.
type BonusResult struct {
	Pick   int
	Prize  int
	Prizes []int
	Spins  int
}

// Daily runs the streak reward of the base game.
type Daily struct {
	game   *Game
	tiers  calendar.StreakTiers
	prizes []int
	loc    *time.Location
	now    func() time.Time
}

func NewDaily(game *Game, tiers calendar.StreakTiers, prizes []int, loc *time.Location) *Daily {
	if loc == nil {
		loc = time.UTC
	}
	return &Daily{game: game, tiers: tiers, prizes: prizes, loc: loc, now: time.Now}
}

// Chests is the number of options in the bonus game.
func (d *Daily) Chests() int { return len(d.prizes) }

// Claim advances the streak. Every bonus day marks a pending chest game
// instead of granting spins.
func (d *Daily) Claim(ctx context.Context, userID string) (DailyResult, error) {
	var res DailyResult
	today := calendar.Day(d.now(), d.loc)

	err := d.game.Players.With(ctx, userID, func(p *Player) error {
		claim, err := calendar.ClaimDaily(p.Record.String(ColLastDaily), p.Record.Int(ColStreak), today, d.tiers)
		if err != nil {
			return err
		}
		res = DailyResult{DailyClaim: claim, Spins: p.Spins()}

		c := begin(ctx, d.game.journal, d.game.Players.Store(), p, "daily",
			fmt.Sprintf("streak=%d reward=%d bonus=%t", claim.Streak, claim.Reward, claim.Bonus))

		if claim.Bonus {
			if err := c.write(ctx, ColDailyBonus, "1"); err != nil {
				return err
			}
		} else {
			res.Spins = min(res.Spins+claim.Reward, MaxSpins)
			if err := c.write(ctx, ColSpins, strconv.Itoa(res.Spins)); err != nil {
				return err
			}
		}
		if err := c.write(ctx, ColStreak, strconv.Itoa(claim.Streak)); err != nil {
			return err
		}
		if err := c.write(ctx, ColLastDaily, claim.Date); err != nil {
			return err
		}
		c.done(ctx)
		return nil
	})
	return res, err
}

// PlayBonus opens chest pick (0-based) of a pending bonus game. The flag is
// cleared before the prize is granted.
func (d *Daily) PlayBonus(ctx context.Context, userID string, pick int) (BonusResult, error) {
	if pick < 0 || pick >= len(d.prizes) {
		return BonusResult{}, fmt.Errorf("%w: %d", ErrInvalidChest, pick+1)
	}

	var res BonusResult
	err := d.game.Players.With(ctx, userID, func(p *Player) error {
		if !p.Record.Flag(ColDailyBonus) {
			return ErrNoBonusPending
		}

		prizes := make([]int, len(d.prizes))
		for i, j := range d.game.rng.Perm(len(d.prizes)) {
			prizes[i] = d.prizes[j]
		}
		res = BonusResult{
			Pick:   pick,
			Prize:  prizes[pick],
			Prizes: prizes,
			Spins:  min(p.Spins()+prizes[pick], MaxSpins),
		}

		c := begin(ctx, d.game.journal, d.game.Players.Store(), p, "daily_bonus",
			fmt.Sprintf("prize=%d", res.Prize))
		if err := c.write(ctx, ColDailyBonus, ""); err != nil {
			return err
		}
		if err := c.write(ctx, ColSpins, strconv.Itoa(res.Spins)); err != nil {
			return err
		}
		c.done(ctx)
		return nil
	})
	return res, err
}
