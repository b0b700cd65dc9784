package shop

import (
	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

// Limits caps the balances a purchase can raise.
type Limits struct {
	MaxSpins     int
	MaxLuck      int
	FrameDefault int
	FrameMax     int
}

var DefaultLimits = Limits{
	MaxSpins:     999,
	MaxLuck:      100,
	FrameDefault: 10,
	FrameMax:     12,
}

// Balance is a freshly read snapshot of the buyer's row.
type Balance struct {
	Currency int
	Spins    int
	Luck     int
	Frame    int
	Owned    rewards.Collection
}

// Plan is the full set of writes a purchase commits.
type Plan struct {
	Item     Item
	Currency int
	Spins    int
	Luck     int

	Cards        string
	CardsChanged bool

	Frame        int
	FrameChanged bool

	// Quantity is the new stock level, nil when stock is unlimited.
	Quantity *int
}

// Purchase validates item against b and computes the resulting balances.
// Checks run in a fixed order and nothing is charged when one fails.
func Purchase(item Item, b Balance, l Limits) (Plan, error) {
	frame := b.Frame
	if frame <= 0 {
		frame = l.FrameDefault
	}

	if item.IsFrame() && frame >= l.FrameMax {
		return Plan{}, ErrFrameAtMax
	}
	if item.CardID != "" && b.Owned.Has(item.CardID) {
		return Plan{}, ErrDuplicateGrant
	}
	if item.Quantity != nil && *item.Quantity <= 0 {
		return Plan{}, ErrOutOfStock
	}
	if b.Currency < item.Price {
		return Plan{}, ErrInsufficientFunds
	}

	p := Plan{
		Item:     item,
		Currency: b.Currency - item.Price,
		Spins:    capAt(b.Spins+item.Spins, l.MaxSpins),
		Luck:     capAt(b.Luck+item.Luck, l.MaxLuck),
		Frame:    frame,
	}

	if item.CardID != "" {
		owned := b.Owned.Clone()
		p.CardsChanged = owned.Add(item.CardID)
		p.Cards = owned.String()
	}

	if item.IsFrame() {
		p.Frame = min(frame+1, l.FrameMax)
		p.FrameChanged = true
	}

	if item.Quantity != nil {
		q := max(*item.Quantity-1, 0)
		p.Quantity = &q
	}
	return p, nil
}

func capAt(v, hi int) int {
	if hi > 0 && v > hi {
		return hi
	}
	return max(v, 0)
}
