package rewards

import (
	"sort"
	"strings"
)

type Rarity string

const (
	Common    Rarity = "COM"
	Uncommon  Rarity = "UCOM"
	Rare      Rarity = "RARE"
	Epic      Rarity = "EPIC"
	Legendary Rarity = "LEG"
)

var tierOrder = []Rarity{Common, Uncommon, Rare, Epic, Legendary}

// ParseRarity normalizes a catalog tag. Unknown or blank tags read as Common.
func ParseRarity(s string) Rarity {
	r := Rarity(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range tierOrder {
		if r == t {
			return r
		}
	}
	return Common
}

// Rank orders tiers from Common (0) upwards.
func (r Rarity) Rank() int {
	for i, t := range tierOrder {
		if r == t {
			return i
		}
	}
	return 0
}

// Weights is the relative draw weight of each tier.
type Weights map[Rarity]int

// Points is the score a tier is worth.
type Points map[Rarity]int

// Tiers returns the tiers with a positive weight, lowest first.
func (w Weights) Tiers() []Rarity {
	out := make([]Rarity, 0, len(w))
	for r, weight := range w {
		if weight > 0 {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank() < out[j].Rank() })
	return out
}

// Top returns the highest weighted tier and the one below it.
func (w Weights) Top() (top, second Rarity) {
	tiers := w.Tiers()
	switch len(tiers) {
	case 0:
		return "", ""
	case 1:
		return tiers[0], ""
	}
	return tiers[len(tiers)-1], tiers[len(tiers)-2]
}

var (
	BaseWeights = Weights{Common: 60, Uncommon: 25, Rare: 10, Epic: 4, Legendary: 1}
	BasePoints  = Points{Common: 1, Uncommon: 3, Rare: 7, Epic: 20, Legendary: 50}

	WinterWeights = Weights{Common: 55, Uncommon: 27, Rare: 12, Epic: 6}
	WinterPoints  = Points{Common: 1, Uncommon: 2, Rare: 5, Epic: 12}
)
