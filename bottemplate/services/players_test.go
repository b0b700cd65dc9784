package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

func TestPlayers_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, BaseMode(nil))

	p, created, err := f.game.Players.Register(ctx, "100")
	if err != nil || !created {
		t.Fatalf("Register() created = %t, error = %v", created, err)
	}
	if p.Spins() != StartSpins {
		t.Errorf("spins got = %d, want %d", p.Spins(), StartSpins)
	}

	if _, created, err = f.game.Players.Register(ctx, "100"); err != nil || created {
		t.Errorf("second Register() created = %t, error = %v", created, err)
	}
	if f.users.Len() != 2 {
		t.Errorf("rows got = %d, want header + 1", f.users.Len())
	}
}

func TestPlayers_LazyCreateIsSerialized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WinterMode())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.game.Players.Get(ctx, "200"); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if f.users.Len() != 2 {
		t.Errorf("rows got = %d, want exactly one user row", f.users.Len())
	}
}

func TestPlayers_SetNick(t *testing.T) {
	tests := []struct {
		name    string
		nick    string
		want    string
		wantErr error
	}{
		{"trimmed", "  Snowball ", "Snowball", nil},
		{"empty", "   ", "", ErrInvalidNick},
		{"too long", strings.Repeat("я", MaxNickLength+1), "", ErrInvalidNick},
		{"newline", "a\nb", "", ErrInvalidNick},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, WinterMode())
			got, err := f.game.Players.SetNick(context.Background(), "200", tt.nick)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetNick() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SetNick() got = %q, want %q", got, tt.want)
			}
			if tt.wantErr == nil && f.player(t, "200").Nick() != tt.want {
				t.Errorf("stored nick got = %q", f.player(t, "200").Nick())
			}
		})
	}
}

func TestCollection(t *testing.T) {
	catalog := []rewards.Card{{ID: "1", Description: "Barsik"}, {ID: "10", Description: "Tom"}}
	got := Collection(rewards.ParseCollection("10 | 1 | 7"), catalog)

	if len(got) != 3 {
		t.Fatalf("Collection() len = %d, want 3", len(got))
	}
	if got[0].Description != "Barsik" || got[1].ID != "7" || got[2].Description != "Tom" {
		t.Errorf("Collection() got = %+v", got)
	}
}

func TestDirectImageURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://drive.google.com/file/d/abc123/view?usp=sharing", "https://drive.google.com/uc?export=download&id=abc123"},
		{"https://drive.google.com/open?id=xyz&foo=1", "https://drive.google.com/uc?export=download&id=xyz"},
		{" https://cdn.example/cat.png ", "https://cdn.example/cat.png"},
	}
	for _, tt := range tests {
		if got := DirectImageURL(tt.in); got != tt.want {
			t.Errorf("DirectImageURL(%q) got = %q, want %q", tt.in, got, tt.want)
		}
	}
}
