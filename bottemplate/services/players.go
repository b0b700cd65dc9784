package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PieceOfFire/cats/bottemplate/economy/userlock"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

// Player is a freshly read user row.
type Player struct {
	UserID string
	Row    int
	Record sheets.Record
	mode   *Mode
}

func (p *Player) Spins() int { return p.Record.Int(p.mode.Spins) }

func (p *Player) Score() int { return p.Record.Int(ColScore) }

func (p *Player) Owned() rewards.Collection {
	return rewards.ParseCollection(p.Record.String(p.mode.Cards))
}

func (p *Player) Luck() int {
	if !p.mode.HasLuck() {
		return 0
	}
	return p.Record.Int(ColLuck)
}

func (p *Player) Currency() int { return p.Record.Int(ColCurrency) }

func (p *Player) Nick() string { return p.Record.String(ColNick) }

// Players owns one mode's user table. Every read-modify-write on a row runs
// under the user's lock.
type Players struct {
	store *sheets.Store
	mode  Mode
	locks *userlock.Manager
}

func NewPlayers(store *sheets.Store, mode Mode, locks *userlock.Manager) *Players {
	if locks == nil {
		locks = userlock.NewManager()
	}
	return &Players{store: store, mode: mode, locks: locks}
}

func (p *Players) Mode() Mode { return p.mode }

func (p *Players) Store() *sheets.Store { return p.store }

// With locks userID, loads the row and runs fn. Lazy modes create a missing
// row; other modes fail with ErrNotRegistered.
func (p *Players) With(ctx context.Context, userID string, fn func(*Player) error) error {
	unlock, err := p.locks.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	player, err := p.load(ctx, userID)
	if err != nil {
		return err
	}
	return fn(player)
}

// Get returns a snapshot of the row without holding the lock afterwards.
func (p *Players) Get(ctx context.Context, userID string) (*Player, error) {
	var out *Player
	err := p.With(ctx, userID, func(pl *Player) error {
		out = pl
		return nil
	})
	return out, err
}

func (p *Players) load(ctx context.Context, userID string) (*Player, error) {
	row, err := p.store.Find(ctx, userID)
	switch {
	case err == nil:
		return p.player(userID, row), nil
	case !sheets.IsNotFound(err):
		return nil, fmt.Errorf("failed to read user %s: %w", userID, err)
	case !p.mode.Lazy:
		return nil, ErrNotRegistered
	}

	row, err = p.store.Append(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", userID, err)
	}
	return p.player(userID, row), nil
}

func (p *Players) player(userID string, row *sheets.Row) *Player {
	return &Player{UserID: userID, Row: row.Index, Record: row.Record, mode: &p.mode}
}

// Register creates the row if absent and reports whether it was created.
func (p *Players) Register(ctx context.Context, userID string) (*Player, bool, error) {
	unlock, err := p.locks.Lock(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	row, err := p.store.Find(ctx, userID)
	if err == nil {
		return p.player(userID, row), false, nil
	}
	if !sheets.IsNotFound(err) {
		return nil, false, fmt.Errorf("failed to read user %s: %w", userID, err)
	}

	row, err = p.store.Append(ctx, userID, sheets.Record{p.mode.Spins: strconv.Itoa(StartSpins)})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user %s: %w", userID, err)
	}
	return p.player(userID, row), true, nil
}

// SetNick stores a display name for the leaderboard.
func (p *Players) SetNick(ctx context.Context, userID, nick string) (string, error) {
	nick = strings.TrimSpace(nick)
	if nick == "" || utf8.RuneCountInString(nick) > MaxNickLength || strings.ContainsAny(nick, "\n\r") {
		return "", ErrInvalidNick
	}

	err := p.With(ctx, userID, func(pl *Player) error {
		return p.store.Write(ctx, pl.Row, ColNick, nick)
	})
	return nick, err
}

// Collection returns the owned cards resolved against catalog, in id order.
func Collection(owned rewards.Collection, catalog []rewards.Card) []rewards.Card {
	byID := make(map[string]rewards.Card, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}
	out := make([]rewards.Card, 0, len(owned))
	for _, id := range owned.IDs() {
		c, ok := byID[id]
		if !ok {
			c = rewards.Card{ID: id}
		}
		out = append(out, c)
	}
	return out
}
