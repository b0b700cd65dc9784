package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

var twoCards = [][]string{
	{"1", "https://img/1.png", "Barsik", "COM"},
	{"2", "https://img/2.png", "Murka", "RARE"},
}

func TestSpin_GrantsNotOwnedCard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, BaseMode(nil), twoCards...)
	f.seed(t, "100", sheets.Record{ColSpins: "1"})

	res, err := f.game.Spin(ctx, "100")
	if err != nil {
		t.Fatalf("Spin() error = %v", err)
	}

	p := f.player(t, "100")
	if p.Spins() != 0 {
		t.Errorf("spins got = %d, want 0", p.Spins())
	}
	owned := p.Owned()
	if len(owned) != 1 || !(owned.Has("1") || owned.Has("2")) {
		t.Errorf("owned got = %v, want one of {1,2}", owned.IDs())
	}
	if !owned.Has(res.Draw.Card.ID) {
		t.Errorf("owned %v misses drawn card %s", owned.IDs(), res.Draw.Card.ID)
	}
	if p.Score() <= 0 || p.Score() != res.Score {
		t.Errorf("score got = %d, result %d, want positive and equal", p.Score(), res.Score)
	}
	if got := f.journalStatuses(t); !reflect.DeepEqual(got, []string{"done"}) {
		t.Errorf("journal got = %v, want [done]", got)
	}
}

func TestSpin_CollectionCompleteSpendsNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, BaseMode(nil), twoCards...)
	f.seed(t, "100", sheets.Record{ColSpins: "3", ColCards: "1 | 2", ColScore: "8"})

	_, err := f.game.Spin(ctx, "100")
	if !errors.Is(err, rewards.ErrCollectionComplete) {
		t.Fatalf("Spin() error = %v, want ErrCollectionComplete", err)
	}

	p := f.player(t, "100")
	if p.Spins() != 3 || p.Score() != 8 || p.Record.String(ColCards) != "1 | 2" {
		t.Errorf("row changed: spins=%d score=%d cards=%q", p.Spins(), p.Score(), p.Record.String(ColCards))
	}
	if got := f.journalStatuses(t); len(got) != 0 {
		t.Errorf("journal got = %v, want no entries", got)
	}
}

func TestSpin_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		cards   [][]string
		seed    sheets.Record
		wantErr error
	}{
		{
			name:    "no spins",
			mode:    BaseMode(nil),
			cards:   twoCards,
			seed:    sheets.Record{ColSpins: "0"},
			wantErr: ErrNoSpins,
		},
		{
			name:    "not registered",
			mode:    BaseMode(nil),
			cards:   twoCards,
			wantErr: ErrNotRegistered,
		},
		{
			name:    "empty catalog",
			mode:    BaseMode(nil),
			seed:    sheets.Record{ColSpins: "2"},
			wantErr: ErrCatalogUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.mode, tt.cards...)
			if tt.seed != nil {
				f.seed(t, "100", tt.seed)
			}

			_, err := f.game.Spin(context.Background(), "100")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Spin() error = %v, want %v", err, tt.wantErr)
			}
			if tt.seed != nil {
				if got, want := f.player(t, "100").Spins(), tt.seed.Int(ColSpins); got != want {
					t.Errorf("spins got = %d, want %d", got, want)
				}
			}
		})
	}
}

func TestSpin_WinterCreatesRowAndPaysCashback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WinterMode(), twoCards...)

	res, err := f.game.Spin(ctx, "200")
	if err != nil {
		t.Fatalf("Spin() error = %v", err)
	}

	p := f.player(t, "200")
	if p.Spins() != StartSpins-1 {
		t.Errorf("spins got = %d, want %d", p.Spins(), StartSpins-1)
	}
	if p.Currency() != CashbackPerSpin || res.Currency != CashbackPerSpin {
		t.Errorf("currency got = %d (result %d), want %d", p.Currency(), res.Currency, CashbackPerSpin)
	}
	if p.Luck() != res.Draw.LuckAfter {
		t.Errorf("luck got = %d, want %d", p.Luck(), res.Draw.LuckAfter)
	}
	if p.Record.String(ColFrameSet) != "10" {
		t.Errorf("FRAME_SET got = %q, want 10", p.Record.String(ColFrameSet))
	}
	if f.users.Len() != 2 {
		t.Errorf("users rows got = %d, want header + 1", f.users.Len())
	}
}

func TestSpin_PartialWrite(t *testing.T) {
	ctx := context.Background()
	f := newFlakyFixture(t, BaseMode(nil), ColCards, twoCards...)
	f.seed(t, "100", sheets.Record{ColSpins: "2"})

	_, err := f.game.Spin(ctx, "100")
	var pw *PartialWriteError
	if !errors.As(err, &pw) {
		t.Fatalf("Spin() error = %v, want *PartialWriteError", err)
	}
	if !errors.Is(err, ErrPartialWrite) || !errors.Is(err, errWrite) {
		t.Errorf("Spin() error = %v, want ErrPartialWrite wrapping the store error", err)
	}
	if !reflect.DeepEqual(pw.Completed, []string{ColSpins}) {
		t.Errorf("completed got = %v, want [%s]", pw.Completed, ColSpins)
	}
	if p := f.player(t, "100"); p.Spins() != 1 {
		t.Errorf("spins got = %d, want spend kept at 1", p.Spins())
	}
	if got := f.journalStatuses(t); !reflect.DeepEqual(got, []string{"partial"}) {
		t.Errorf("journal got = %v, want [partial]", got)
	}
}

func TestSpin_FirstWriteFailureIsNotPartial(t *testing.T) {
	f := newFlakyFixture(t, BaseMode(nil), ColSpins, twoCards...)
	f.seed(t, "100", sheets.Record{ColSpins: "2"})

	_, err := f.game.Spin(context.Background(), "100")
	if !errors.Is(err, errWrite) || errors.Is(err, ErrPartialWrite) {
		t.Fatalf("Spin() error = %v, want plain store error", err)
	}
	if got := f.journalStatuses(t); !reflect.DeepEqual(got, []string{"aborted"}) {
		t.Errorf("journal got = %v, want [aborted]", got)
	}
}
