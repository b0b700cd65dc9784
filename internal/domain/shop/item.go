package shop

import (
	"errors"
	"strings"

	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

var (
	ErrUnknownItem       = errors.New("unknown item")
	ErrDuplicateGrant    = errors.New("card already owned")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOutOfStock        = errors.New("out of stock")
	ErrFrameAtMax        = errors.New("background already at max")
)

// TypeFrame marks a background upgrade item.
const TypeFrame = "frame"

type Item struct {
	ID          string
	Name        string
	Description string
	Type        string
	Price       int
	Spins       int
	Luck        int
	CardID      string
	ImageURL    string
	Rarity      rewards.Rarity
	// Quantity is nil for unlimited stock.
	Quantity *int
}

func (i Item) IsFrame() bool {
	return strings.EqualFold(strings.TrimSpace(i.Type), TypeFrame)
}

func (i Item) Limited() bool { return i.Quantity != nil }

// Find returns the item with id from a loaded listing.
func Find(items []Item, id string) (Item, error) {
	id = strings.TrimSpace(id)
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrUnknownItem
}
