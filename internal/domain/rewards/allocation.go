package rewards

import "errors"

// ErrCollectionComplete means every catalog card is already owned.
var ErrCollectionComplete = errors.New("collection complete")

// Card is one catalog entry.
type Card struct {
	ID          string
	ImageURL    string
	Description string
	Rarity      Rarity
}

// Random is the subset of math/rand/v2 the engine needs.
type Random interface {
	IntN(n int) int
}

// Luck tunes the hidden meter. The second-highest tier receives 70% of the boost.
type Luck struct {
	Max                 int
	PerCommon           int
	DecreaseOnTop       int
	WeightScale         int
	GuaranteedThreshold int
}

var DefaultLuck = Luck{
	Max:                 100,
	PerCommon:           2,
	DecreaseOnTop:       10,
	WeightScale:         4,
	GuaranteedThreshold: 60,
}

// Table is the tuning of one game mode. A nil Luck disables the meter.
type Table struct {
	Weights Weights
	Points  Points
	Luck    *Luck
}

// Draw is the outcome of one allocation.
type Draw struct {
	Card       Card
	Points     int
	Sampled    Rarity
	Fallback   bool
	Guaranteed bool
	LuckBefore int
	LuckAfter  int
}

// Allocate picks one not-owned card. It performs no I/O and calls rng only when
// a card can be granted.
func Allocate(rng Random, catalog []Card, owned Collection, luck int, t Table) (Draw, error) {
	notOwned := make([]Card, 0, len(catalog))
	seen := make(map[string]bool, len(catalog))
	for _, c := range catalog {
		if c.ID == "" || seen[c.ID] || owned.Has(c.ID) {
			continue
		}
		seen[c.ID] = true
		notOwned = append(notOwned, c)
	}
	if len(notOwned) == 0 {
		return Draw{}, ErrCollectionComplete
	}

	d := Draw{LuckBefore: luck, LuckAfter: luck}
	top, _ := t.Weights.Top()

	if t.Luck != nil {
		luck = clamp(luck, 0, t.Luck.Max)
		d.LuckBefore = luck
		d.LuckAfter = luck

		if luck >= t.Luck.GuaranteedThreshold && top != "" {
			d.Guaranteed = true
			d.Sampled = top
			d.Card, d.Fallback = pickFromTier(rng, notOwned, top)
			d.LuckAfter = max(0, luck-t.Luck.GuaranteedThreshold)
			d.Points = t.Points[d.Card.Rarity]
			return d, nil
		}
	}

	weights := t.Weights
	if t.Luck != nil {
		weights = BoostedWeights(t.Weights, luck, *t.Luck)
	}

	d.Sampled = sampleTier(rng, weights)
	d.Card, d.Fallback = pickFromTier(rng, notOwned, d.Sampled)
	d.Points = t.Points[d.Card.Rarity]
	if t.Luck != nil {
		d.LuckAfter = LuckAfter(*t.Luck, t.Weights, d.Card.Rarity, luck)
	}
	return d, nil
}

// BoostedWeights adds luck/WeightScale to the two highest tiers, split 70/30.
func BoostedWeights(w Weights, luck int, l Luck) Weights {
	out := make(Weights, len(w))
	for r, v := range w {
		out[r] = v
	}
	if l.WeightScale <= 0 || luck <= 0 {
		return out
	}

	bonus := luck / l.WeightScale
	top, second := w.Top()
	if second == "" {
		out[top] += bonus
		return out
	}
	toSecond := int(float64(bonus) * 0.7)
	out[second] += toSecond
	out[top] += bonus - toSecond
	return out
}

// LuckAfter applies the feedback of a non-guaranteed draw.
func LuckAfter(l Luck, w Weights, granted Rarity, luck int) int {
	top, _ := w.Top()
	switch {
	case granted == Common || granted == Uncommon:
		luck += l.PerCommon
	case granted == top:
		luck -= l.DecreaseOnTop
	}
	return clamp(luck, 0, l.Max)
}

func sampleTier(rng Random, w Weights) Rarity {
	tiers := w.Tiers()
	total := 0
	for _, r := range tiers {
		total += w[r]
	}
	if total <= 0 {
		return ""
	}

	n := rng.IntN(total)
	for _, r := range tiers {
		if n < w[r] {
			return r
		}
		n -= w[r]
	}
	return tiers[len(tiers)-1]
}

// pickFromTier selects uniformly among cards of tier, or among all when the tier is empty.
func pickFromTier(rng Random, cards []Card, tier Rarity) (Card, bool) {
	var pool []Card
	for _, c := range cards {
		if c.Rarity == tier {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return cards[rng.IntN(len(cards))], true
	}
	return pool[rng.IntN(len(pool))], false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
