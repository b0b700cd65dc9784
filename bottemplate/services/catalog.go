package services

import (
	"context"
	"errors"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/metrics"
	"github.com/PieceOfFire/cats/internal/domain/cache"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

// Catalog serves a mode's card list from a stale-tolerant cache.
type Catalog struct {
	cache *cache.TTL[[]rewards.Card]
}

func NewCatalog(store *sheets.Store, mode string, ttl, retry time.Duration, opts ...cache.Option) *Catalog {
	load := func(ctx context.Context) ([]rewards.Card, error) {
		rows, err := store.Rows(ctx)
		if err != nil {
			return nil, err
		}
		cards := make([]rewards.Card, 0, len(rows))
		for _, r := range rows {
			cards = append(cards, rewards.Card{
				ID:          r.String("ID"),
				ImageURL:    DirectImageURL(r.String("URL")),
				Description: r.String("DESC"),
				Rarity:      rewards.ParseRarity(r.String("RARITY")),
			})
		}
		return cards, nil
	}

	opts = append([]cache.Option{
		cache.WithRetry(retry),
		cache.OnRefresh(metrics.ObserveCacheRefresh),
	}, opts...)
	return &Catalog{cache: cache.NewTTL("catalog:"+mode, ttl, cache.KeepStale, load, opts...)}
}

// Cards returns the catalog or ErrCatalogUnavailable when nothing was ever loaded.
func (c *Catalog) Cards(ctx context.Context) ([]rewards.Card, error) {
	cards, err := c.cache.Get(ctx)
	if err != nil {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}
	if len(cards) == 0 {
		return nil, ErrCatalogUnavailable
	}
	return cards, nil
}

// Card looks up one entry by id.
func (c *Catalog) Card(ctx context.Context, id string) (rewards.Card, bool) {
	cards, err := c.Cards(ctx)
	if err != nil {
		return rewards.Card{}, false
	}
	for _, card := range cards {
		if card.ID == id {
			return card, true
		}
	}
	return rewards.Card{}, false
}

func (c *Catalog) Invalidate() { c.cache.Invalidate() }
