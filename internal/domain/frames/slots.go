package frames

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

// SlotCount is the fixed number of card slots in a frame.
const SlotCount = 5

// Empty marks a slot with no card.
const Empty = "0"

var (
	ErrSlotOutOfRange = errors.New("slot out of range")
	ErrCardNotOwned   = errors.New("card not owned")
)

// Slots holds card ids for each frame position.
type Slots [SlotCount]string

// EmptySlots is the serialized value of a fresh frame.
var EmptySlots = Slots{Empty, Empty, Empty, Empty, Empty}.String()

// ParseSlots reads a FRAME cell. Missing and blank entries become empty;
// any other token is a card id and is kept as written.
func ParseSlots(raw string) Slots {
	var s Slots
	parts := strings.Split(raw, "|")
	for i := range s {
		s[i] = Empty
		if i >= len(parts) {
			continue
		}
		if p := strings.TrimSpace(parts[i]); p != "" {
			s[i] = p
		}
	}
	return s
}

func (s Slots) String() string {
	return strings.Join(s[:], rewards.Separator)
}

// Filled returns the non-empty card ids with their positions.
func (s Slots) Filled() map[int]string {
	out := make(map[int]string)
	for i, id := range s {
		if id != Empty {
			out[i] = id
		}
	}
	return out
}

// Set places cardID in the 0-based slot. Empty clears it. A placed card must
// be in owned.
func (s Slots) Set(slot int, cardID string, owned rewards.Collection) (Slots, error) {
	if slot < 0 || slot >= SlotCount {
		return s, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot+1)
	}
	cardID = strings.TrimSpace(cardID)
	if cardID == "" || cardID == Empty {
		s[slot] = Empty
		return s, nil
	}
	if !owned.Has(cardID) {
		return s, fmt.Errorf("%w: %s", ErrCardNotOwned, cardID)
	}
	s[slot] = cardID
	return s, nil
}
