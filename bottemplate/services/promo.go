package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PieceOfFire/cats/internal/domain/calendar"
)

// MembershipChecker reports whether a user belongs to the bonus community.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID string) (bool, error)
}

// Rewards grants the one-off base mode bonuses.
type Rewards struct {
	game         *Game
	codes        []PromoCode
	members      MembershipChecker
	subscription int
}

func NewRewards(game *Game, codes []PromoCode, members MembershipChecker, subscriptionBonus int) *Rewards {
	return &Rewards{game: game, codes: codes, members: members, subscription: subscriptionBonus}
}

func (r *Rewards) code(raw string) (PromoCode, bool) {
	raw = strings.TrimSpace(raw)
	for _, c := range r.codes {
		if strings.EqualFold(c.Code, raw) {
			return c, true
		}
	}
	return PromoCode{}, false
}

// Redeem applies a promo code once per user. The spins are granted before
// the flag is set.
func (r *Rewards) Redeem(ctx context.Context, userID, raw string) (PromoCode, int, error) {
	code, ok := r.code(raw)
	if !ok {
		return PromoCode{}, 0, ErrUnknownPromo
	}

	var spins int
	err := r.game.Players.With(ctx, userID, func(p *Player) error {
		if p.Record.Flag(code.Column) {
			return fmt.Errorf("promo %s: %w", code.Code, calendar.ErrAlreadyClaimed)
		}
		spins = min(p.Spins()+code.Bonus, MaxSpins)

		c := begin(ctx, r.game.journal, r.game.Players.Store(), p, "promo",
			fmt.Sprintf("code=%s bonus=%d", code.Code, code.Bonus), "promo", code.Code)
		if err := c.write(ctx, r.game.Mode().Spins, strconv.Itoa(spins)); err != nil {
			return err
		}
		if err := c.write(ctx, code.Column, "1"); err != nil {
			return err
		}
		c.done(ctx)
		return nil
	})
	return code, spins, err
}

// ClaimSubscription grants the membership reward once per user.
func (r *Rewards) ClaimSubscription(ctx context.Context, userID string) (int, error) {
	var spins int
	err := r.game.Players.With(ctx, userID, func(p *Player) error {
		if p.Record.Flag(ColSubUsed) {
			return fmt.Errorf("subscription: %w", calendar.ErrAlreadyClaimed)
		}
		if r.members == nil {
			return ErrNotSubscribed
		}
		member, err := r.members.IsMember(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if !member {
			return ErrNotSubscribed
		}
		spins = min(p.Spins()+r.subscription, MaxSpins)

		c := begin(ctx, r.game.journal, r.game.Players.Store(), p, "subscription",
			fmt.Sprintf("bonus=%d", r.subscription))
		if err := c.write(ctx, r.game.Mode().Spins, strconv.Itoa(spins)); err != nil {
			return err
		}
		if err := c.write(ctx, ColSubUsed, "1"); err != nil {
			return err
		}
		c.done(ctx)
		return nil
	})
	return spins, err
}
