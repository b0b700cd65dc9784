package rewards

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

// scripted returns the queued values in order, each reduced modulo n.
type scripted struct {
	values []int
	calls  int
}

func (s *scripted) IntN(n int) int {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v % n
}

type forbidden struct{ t *testing.T }

func (f forbidden) IntN(int) int {
	f.t.Fatal("rng must not be called")
	return 0
}

var winterTable = Table{Weights: WinterWeights, Points: WinterPoints, Luck: &DefaultLuck}

func Test_Allocate_FirstDraw(t *testing.T) {
	catalog := []Card{{ID: "A", Rarity: Common}, {ID: "B", Rarity: Rare}}
	table := Table{Weights: Weights{Common: 60, Rare: 10}, Points: Points{Common: 1, Rare: 7}}

	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		d, err := Allocate(rng, catalog, Collection{}, 0, table)
		if err != nil {
			t.Fatalf("Allocate() error = %v", err)
		}
		if d.Card.ID != "A" && d.Card.ID != "B" {
			t.Errorf("Allocate() card = %v, want A or B", d.Card.ID)
		}
		if d.Points <= 0 {
			t.Errorf("Allocate() points = %d, want > 0", d.Points)
		}
	}
}

func Test_Allocate_CollectionComplete(t *testing.T) {
	catalog := []Card{{ID: "A", Rarity: Common}, {ID: "B", Rarity: Rare}}
	owned := ParseCollection("A | B")

	_, err := Allocate(forbidden{t}, catalog, owned, 80, winterTable)
	if !errors.Is(err, ErrCollectionComplete) {
		t.Errorf("Allocate() error = %v, want ErrCollectionComplete", err)
	}
}

func Test_Allocate_Guaranteed(t *testing.T) {
	catalog := []Card{
		{ID: "1", Rarity: Common},
		{ID: "2", Rarity: Epic},
		{ID: "3", Rarity: Epic},
		{ID: "4", Rarity: Rare},
	}
	tests := []struct {
		name         string
		owned        string
		luck         int
		wantRarity   Rarity
		wantFallback bool
		wantLuck     int
	}{
		{name: "exact threshold", owned: "", luck: 60, wantRarity: Epic, wantLuck: 0},
		{name: "above threshold", owned: "2", luck: 95, wantRarity: Epic, wantLuck: 35},
		{name: "over max is clamped", owned: "", luck: 140, wantRarity: Epic, wantLuck: 40},
		{name: "top tier exhausted", owned: "2 | 3", luck: 70, wantFallback: true, wantLuck: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(7, 9))
			d, err := Allocate(rng, catalog, ParseCollection(tt.owned), tt.luck, winterTable)
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}
			if !d.Guaranteed {
				t.Errorf("Allocate() guaranteed = false, want true")
			}
			if tt.wantRarity != "" && d.Card.Rarity != tt.wantRarity {
				t.Errorf("Allocate() rarity = %v, want %v", d.Card.Rarity, tt.wantRarity)
			}
			if d.Fallback != tt.wantFallback {
				t.Errorf("Allocate() fallback = %v, want %v", d.Fallback, tt.wantFallback)
			}
			if d.LuckAfter != tt.wantLuck {
				t.Errorf("Allocate() luck = %d, want %d", d.LuckAfter, tt.wantLuck)
			}
			if ParseCollection(tt.owned).Has(d.Card.ID) {
				t.Errorf("Allocate() granted owned card %v", d.Card.ID)
			}
		})
	}
}

func Test_Allocate_FallbackScoresGrantedCard(t *testing.T) {
	catalog := []Card{{ID: "1", Rarity: Common}, {ID: "2", Rarity: Uncommon}}
	// 54 < 55 would be COM; 95 lands in EPIC (55+27+12 = 94).
	rng := &scripted{values: []int{95, 1}}

	d, err := Allocate(rng, catalog, Collection{}, 0, winterTable)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if d.Sampled != Epic || !d.Fallback {
		t.Errorf("Allocate() sampled = %v fallback = %v, want EPIC fallback", d.Sampled, d.Fallback)
	}
	if d.Card.ID != "2" || d.Points != WinterPoints[Uncommon] {
		t.Errorf("Allocate() got card %v points %d, want 2 with %d", d.Card.ID, d.Points, WinterPoints[Uncommon])
	}
	if d.LuckAfter != 2 {
		t.Errorf("Allocate() luck = %d, want 2", d.LuckAfter)
	}
}

func Test_Allocate_LuckDisabled(t *testing.T) {
	catalog := []Card{{ID: "1", Rarity: Legendary}, {ID: "2", Rarity: Common}}
	table := Table{Weights: BaseWeights, Points: BasePoints}

	d, err := Allocate(&scripted{values: []int{99, 0}}, catalog, Collection{}, 90, table)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if d.Guaranteed {
		t.Errorf("Allocate() guaranteed without a luck table")
	}
	if d.Card.ID != "1" || d.Points != 50 {
		t.Errorf("Allocate() got %v/%d, want 1/50", d.Card.ID, d.Points)
	}
	if d.LuckAfter != 90 {
		t.Errorf("Allocate() luck changed to %d", d.LuckAfter)
	}
}

func TestBoostedWeights(t *testing.T) {
	got := BoostedWeights(WinterWeights, 40, DefaultLuck)
	want := Weights{Common: 55, Uncommon: 27, Rare: 19, Epic: 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BoostedWeights() got = %v, want %v", got, want)
	}
	if WinterWeights[Rare] != 12 {
		t.Errorf("BoostedWeights() mutated its input")
	}
}

func TestLuckAfter(t *testing.T) {
	tests := []struct {
		rarity Rarity
		luck   int
		want   int
	}{
		{Common, 10, 12},
		{Uncommon, 99, 100},
		{Rare, 30, 30},
		{Epic, 5, 0},
		{Epic, 50, 40},
	}
	for _, tt := range tests {
		if got := LuckAfter(DefaultLuck, WinterWeights, tt.rarity, tt.luck); got != tt.want {
			t.Errorf("LuckAfter(%v, %d) got = %v, want %v", tt.rarity, tt.luck, got, tt.want)
		}
	}
}

func TestAllocate_Invariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))
	catalog := make([]Card, 0, 40)
	for i := 1; i <= 40; i++ {
		catalog = append(catalog, Card{ID: string(rune('a'+i%26)) + string(rune('0'+i/26)), Rarity: tierOrder[i%4]})
	}

	owned := Collection{}
	luck := 0
	for i := 0; i < len(catalog); i++ {
		before := len(owned)
		d, err := Allocate(rng, catalog, owned, luck, winterTable)
		if err != nil {
			t.Fatalf("draw %d: Allocate() error = %v", i, err)
		}
		if owned.Has(d.Card.ID) {
			t.Fatalf("draw %d: granted owned card %v", i, d.Card.ID)
		}
		if d.LuckAfter < 0 || d.LuckAfter > DefaultLuck.Max {
			t.Fatalf("draw %d: luck %d out of range", i, d.LuckAfter)
		}
		owned.Add(d.Card.ID)
		luck = d.LuckAfter
		if len(owned) != before+1 {
			t.Fatalf("draw %d: collection did not grow", i)
		}
	}

	if _, err := Allocate(forbidden{t}, catalog, owned, luck, winterTable); !errors.Is(err, ErrCollectionComplete) {
		t.Errorf("Allocate() after full collection error = %v", err)
	}
}

func TestSortIDs(t *testing.T) {
	ids := []string{"10", "b", "2", "a", "1", "007"}
	SortIDs(ids)
	want := []string{"1", "2", "007", "10", "a", "b"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("SortIDs() got = %v, want %v", ids, want)
	}
}

func TestParseCollection(t *testing.T) {
	c := ParseCollection(" 3 | 1,2;  x\t3 ")
	if got := c.String(); got != "1 | 2 | 3 | x" {
		t.Errorf("ParseCollection().String() got = %q", got)
	}
	if ParseCollection("").String() != "" {
		t.Errorf("empty collection should format as empty string")
	}
}
