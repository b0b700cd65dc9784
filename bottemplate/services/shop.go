package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PieceOfFire/cats/bottemplate/economy/userlock"
	"github.com/PieceOfFire/cats/internal/domain/frames"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/PieceOfFire/cats/internal/domain/shop"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

var ShopSchema = sheets.Schema{
	Table: "winter_shop",
	Key:   "ITEM_ID",
	Columns: []sheets.Column{
		{Name: "ITEM_ID"},
		{Name: "NAME"},
		{Name: "DESCRIPTION"},
		{Name: "TYPE"},
		{Name: "PRICE", Default: "0"},
		{Name: "SPINS", Default: "0"},
		{Name: "LUCK", Default: "0"},
		{Name: "CARD_ID"},
		{Name: "IMAGE_URL"},
		{Name: "RARITY"},
		{Name: "QUANTITY"},
	},
}

// Shop sells winter items for currency.
type Shop struct {
	game   *Game
	items  *sheets.Store
	limits shop.Limits
	stock  *userlock.Manager
}

func NewShop(game *Game, items *sheets.Store, limits shop.Limits) *Shop {
	return &Shop{game: game, items: items, limits: limits, stock: userlock.NewManager()}
}

// Items reads the current listing.
func (s *Shop) Items(ctx context.Context) ([]shop.Item, error) {
	rows, err := s.items.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read shop: %w", err)
	}
	items := make([]shop.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, itemFromRecord(r))
	}
	return items, nil
}

func itemFromRecord(r sheets.Record) shop.Item {
	it := shop.Item{
		ID:          r.String("ITEM_ID"),
		Name:        r.String("NAME"),
		Description: r.String("DESCRIPTION"),
		Type:        r.String("TYPE"),
		Price:       r.Int("PRICE"),
		Spins:       r.Int("SPINS"),
		Luck:        r.Int("LUCK"),
		CardID:      r.String("CARD_ID"),
		ImageURL:    DirectImageURL(r.String("IMAGE_URL")),
	}
	if raw := r.String("RARITY"); raw != "" {
		it.Rarity = rewards.ParseRarity(raw)
	}
	if q := r.String("QUANTITY"); q != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(q)); err == nil {
			it.Quantity = &n
		}
	}
	return it
}

// Item returns one listing entry.
func (s *Shop) Item(ctx context.Context, id string) (shop.Item, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return shop.Item{}, err
	}
	return shop.Find(items, id)
}

// Buy purchases itemID for userID against freshly read balances and stock.
func (s *Shop) Buy(ctx context.Context, userID, itemID string) (shop.Plan, error) {
	unlockStock, err := s.stock.Lock(ctx, itemID)
	if err != nil {
		return shop.Plan{}, err
	}
	defer unlockStock()

	var plan shop.Plan
	err = s.game.Players.With(ctx, userID, func(p *Player) error {
		item, err := s.Item(ctx, itemID)
		if err != nil {
			return err
		}

		plan, err = shop.Purchase(item, shop.Balance{
			Currency: p.Currency(),
			Spins:    p.Spins(),
			Luck:     p.Record.Int(ColLuck),
			Frame:    p.Record.Int(ColFrameSet),
			Owned:    p.Owned(),
		}, s.limits)
		if err != nil {
			return err
		}
		return s.commit(ctx, p, plan)
	})
	return plan, err
}

func (s *Shop) commit(ctx context.Context, p *Player, plan shop.Plan) error {
	mode := s.game.Mode()
	item := plan.Item
	c := begin(ctx, s.game.journal, s.game.Players.Store(), p, "shop",
		fmt.Sprintf("item=%s price=%d card=%s", item.ID, item.Price, item.CardID),
		"item_id", item.ID, "card_id", item.CardID)

	if err := c.write(ctx, ColCurrency, strconv.Itoa(plan.Currency)); err != nil {
		return err
	}
	if item.Spins != 0 {
		if err := c.write(ctx, mode.Spins, strconv.Itoa(plan.Spins)); err != nil {
			return err
		}
	}
	if item.Luck != 0 {
		if err := c.write(ctx, ColLuck, strconv.Itoa(plan.Luck)); err != nil {
			return err
		}
	}
	if plan.CardsChanged {
		if err := c.write(ctx, mode.Cards, plan.Cards); err != nil {
			return err
		}
	}
	if plan.FrameChanged {
		if err := c.write(ctx, ColFrameSet, strconv.Itoa(plan.Frame)); err != nil {
			return err
		}
		if err := c.write(ctx, ColFrameFile, ""); err != nil {
			return err
		}
	}
	if plan.Quantity != nil {
		row, err := s.items.Find(ctx, item.ID)
		if err != nil {
			return c.fail(ctx, fmt.Errorf("locate item %s: %w", item.ID, err))
		}
		if err := c.writeTo(ctx, s.items, row.Index, "QUANTITY", strconv.Itoa(*plan.Quantity)); err != nil {
			return err
		}
	}
	c.done(ctx)
	return nil
}

// FrameBackground returns the stored background id, or the default.
func FrameBackground(p *Player) int {
	if bg := p.Record.Int(ColFrameSet); bg > 0 {
		return bg
	}
	return frames.DefaultBackground
}
