package frames

import (
	"strings"

	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/sahilm/fuzzy"
)

// cardSource implements fuzzy.Source over owned cards.
type cardSource []rewards.Card

func (c cardSource) Len() int { return len(c) }

func (c cardSource) String(i int) string {
	return strings.ToLower(c[i].ID + " " + c[i].Description)
}

// SearchOwned ranks owned cards against query. An exact id match comes
// first; an empty query lists cards in collection order.
func SearchOwned(catalog []rewards.Card, owned rewards.Collection, query string, limit int) []rewards.Card {
	byID := make(map[string]rewards.Card, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}
	src := make(cardSource, 0, len(owned))
	for _, id := range owned.IDs() {
		c, ok := byID[id]
		if !ok {
			c = rewards.Card{ID: id}
		}
		src = append(src, c)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var out []rewards.Card
	if query == "" {
		out = src
	} else {
		if c, ok := byID[query]; ok && owned.Has(query) {
			out = append(out, c)
		}
		for _, m := range fuzzy.FindFrom(query, src) {
			if c := src[m.Index]; c.ID != query {
				out = append(out, c)
			}
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
