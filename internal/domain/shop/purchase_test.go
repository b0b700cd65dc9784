package shop

import (
	"errors"
	"testing"

	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

func qty(n int) *int { return &n }

func TestPurchase_Scenario(t *testing.T) {
	item := Item{ID: "gift", Price: 50, Quantity: qty(3)}

	b := Balance{Currency: 30, Owned: rewards.Collection{}}
	if _, err := Purchase(item, b, DefaultLimits); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Purchase() error = %v, want ErrInsufficientFunds", err)
	}
	if b.Currency != 30 {
		t.Fatalf("balance mutated: %d", b.Currency)
	}

	b.Currency = 60
	p, err := Purchase(item, b, DefaultLimits)
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if p.Currency != 10 {
		t.Errorf("Purchase() currency = %d, want 10", p.Currency)
	}
	if p.Quantity == nil || *p.Quantity != 2 {
		t.Errorf("Purchase() quantity = %v, want 2", p.Quantity)
	}
	if *item.Quantity != 3 {
		t.Errorf("item quantity mutated: %d", *item.Quantity)
	}
}

func TestPurchase_Rejections(t *testing.T) {
	owned := rewards.ParseCollection("1 | 7")
	tests := []struct {
		name    string
		item    Item
		balance Balance
		wantErr error
	}{
		{
			name:    "frame at max",
			item:    Item{Type: "Frame", Price: 1},
			balance: Balance{Currency: 100, Frame: 12, Owned: owned},
			wantErr: ErrFrameAtMax,
		},
		{
			name:    "duplicate card",
			item:    Item{CardID: "7", Price: 1},
			balance: Balance{Currency: 100, Owned: owned},
			wantErr: ErrDuplicateGrant,
		},
		{
			name:    "sold out",
			item:    Item{Price: 1, Quantity: qty(0)},
			balance: Balance{Currency: 100, Owned: owned},
			wantErr: ErrOutOfStock,
		},
		{
			name:    "duplicate checked before funds",
			item:    Item{CardID: "1", Price: 500},
			balance: Balance{Currency: 0, Owned: owned},
			wantErr: ErrDuplicateGrant,
		},
		{
			name:    "stock checked before funds",
			item:    Item{Price: 500, Quantity: qty(0)},
			balance: Balance{Currency: 0, Owned: owned},
			wantErr: ErrOutOfStock,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Purchase(tt.item, tt.balance, DefaultLimits)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Purchase() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPurchase_Grants(t *testing.T) {
	b := Balance{Currency: 100, Spins: 998, Luck: 95, Frame: 0, Owned: rewards.ParseCollection("10 | 2")}

	p, err := Purchase(Item{Price: 40, Spins: 5, Luck: 20, CardID: "3"}, b, DefaultLimits)
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if p.Spins != 999 || p.Luck != 100 {
		t.Errorf("Purchase() spins/luck = %d/%d, want capped 999/100", p.Spins, p.Luck)
	}
	if !p.CardsChanged || p.Cards != "2 | 3 | 10" {
		t.Errorf("Purchase() cards = %q changed=%v", p.Cards, p.CardsChanged)
	}
	if p.FrameChanged || p.Quantity != nil {
		t.Errorf("Purchase() touched frame or stock: %+v", p)
	}
	if b.Owned.Has("3") {
		t.Errorf("Purchase() mutated the balance collection")
	}

	p, err = Purchase(Item{Type: TypeFrame, Price: 10}, b, DefaultLimits)
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if !p.FrameChanged || p.Frame != 11 {
		t.Errorf("Purchase() frame = %d changed=%v, want 11", p.Frame, p.FrameChanged)
	}
}

func TestFind(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b", Name: "Bell"}}
	got, err := Find(items, " b ")
	if err != nil || got.Name != "Bell" {
		t.Errorf("Find() got = %+v, %v", got, err)
	}
	if _, err := Find(items, "zzz"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Find() error = %v, want ErrUnknownItem", err)
	}
}
