package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PieceOfFire/cats/internal/domain/calendar"
)

var (
	ErrNotRegistered      = errors.New("user not registered")
	ErrNoSpins            = errors.New("no spins left")
	ErrCatalogUnavailable = errors.New("card catalog unavailable")
	ErrPartialWrite       = errors.New("action stopped between writes")
	ErrUnknownPromo       = errors.New("unknown promo code")
	ErrNotSubscribed      = errors.New("not a member of the bonus server")
	ErrNoBonusPending     = fmt.Errorf("no bonus game pending: %w", calendar.ErrAlreadyClaimed)
	ErrInvalidNick        = errors.New("invalid nickname")
	ErrInvalidChest       = errors.New("invalid chest")
)

// PartialWriteError is returned when some writes of an action landed and a
// later one failed. Completed lists the columns already written.
type PartialWriteError struct {
	Action    string
	UserID    string
	JournalID string
	Completed []string
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s for %s stopped after [%s]: %v",
		e.Action, e.UserID, strings.Join(e.Completed, ","), e.Err)
}

func (e *PartialWriteError) Unwrap() []error {
	return []error{ErrPartialWrite, e.Err}
}
