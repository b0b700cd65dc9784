package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/PieceOfFire/cats/bottemplate/metrics"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

// SpinResult is the state after one successful draw.
type SpinResult struct {
	Draw     rewards.Draw
	Spins    int
	Score    int
	Currency int
	Owned    int
	Total    int
}

// Spin spends one spin and grants a not-owned card. A complete collection
// returns rewards.ErrCollectionComplete and spends nothing.
func (g *Game) Spin(ctx context.Context, userID string) (SpinResult, error) {
	var res SpinResult
	mode := g.Mode()

	err := g.Players.With(ctx, userID, func(p *Player) error {
		spins := p.Spins()
		if spins <= 0 {
			return ErrNoSpins
		}

		catalog, err := g.Catalog.Cards(ctx)
		if err != nil {
			return err
		}

		owned := p.Owned()
		draw, err := rewards.Allocate(g.rng, catalog, owned, p.Luck(), mode.Table)
		if err != nil {
			return err
		}
		owned.Add(draw.Card.ID)

		res = SpinResult{
			Draw:     draw,
			Spins:    spins - 1,
			Score:    p.Score() + draw.Points,
			Currency: p.Currency(),
			Owned:    len(owned),
			Total:    len(catalog),
		}

		c := begin(ctx, g.journal, g.Players.Store(), p, "spin:"+mode.Name,
			fmt.Sprintf("card=%s rarity=%s points=%d", draw.Card.ID, draw.Card.Rarity, draw.Points),
			"card_id", draw.Card.ID)

		if err := c.write(ctx, mode.Spins, strconv.Itoa(res.Spins)); err != nil {
			return err
		}
		if err := c.write(ctx, mode.Cards, owned.String()); err != nil {
			return err
		}
		if err := c.write(ctx, ColScore, strconv.Itoa(res.Score)); err != nil {
			return err
		}
		if mode.HasLuck() && draw.LuckAfter != p.Luck() {
			if err := c.write(ctx, ColLuck, strconv.Itoa(draw.LuckAfter)); err != nil {
				return err
			}
		}
		if mode.Cashback > 0 {
			res.Currency += mode.Cashback
			if err := c.write(ctx, ColCurrency, strconv.Itoa(res.Currency)); err != nil {
				return err
			}
		}
		c.done(ctx)
		return nil
	})
	if err != nil {
		return SpinResult{}, err
	}

	metrics.Draws.WithLabelValues(mode.Name, string(res.Draw.Card.Rarity)).Inc()
	return res, nil
}
