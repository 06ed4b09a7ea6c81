package deck

import (
	"math/rand"
	"testing"
)

func TestNewDeckComposition(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))

	if d.Remaining() != TotalCards {
		t.Fatalf("expected %d cards, got %d", TotalCards, d.Remaining())
	}

	jokers := 0
	bySuitValue := make(map[string]int)
	ids := make(map[string]bool)
	for _, c := range d.Cards() {
		if ids[c.ID] {
			t.Errorf("duplicate card ID %q", c.ID)
		}
		ids[c.ID] = true

		if c.IsJoker() {
			jokers++
			continue
		}
		bySuitValue[c.String()]++
	}

	if jokers != 2*NumDecks {
		t.Errorf("expected %d jokers, got %d", 2*NumDecks, jokers)
	}
	for key, n := range bySuitValue {
		if n != NumDecks {
			t.Errorf("expected %d copies of %s, got %d", NumDecks, key, n)
		}
	}
}

func TestDrawConsumesFromFront(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	top := d.Cards()[0]

	card, ok := d.Draw()
	if !ok {
		t.Fatal("draw from full deck failed")
	}
	if card.ID != top.ID {
		t.Errorf("expected top card %s, drew %s", top.ID, card.ID)
	}
	if d.Remaining() != TotalCards-1 {
		t.Errorf("expected %d cards remaining, got %d", TotalCards-1, d.Remaining())
	}
}

func TestDrawNStopsAtEmpty(t *testing.T) {
	d := FromCards([]Card{
		{ID: "a", Suit: Hearts, Value: 2},
		{ID: "b", Suit: Hearts, Value: 3},
	}, rand.New(rand.NewSource(1)))

	cards := d.DrawN(5)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if !d.IsEmpty() {
		t.Error("deck should be empty")
	}
	if _, ok := d.Draw(); ok {
		t.Error("draw from empty deck should fail")
	}
}

func TestReplenishRestoresDrawPile(t *testing.T) {
	d := FromCards(nil, rand.New(rand.NewSource(1)))
	discard := []Card{
		{ID: "a", Suit: Clubs, Value: 9},
		{ID: "b", Suit: Clubs, Value: 10},
		{ID: "c", Suit: Spades, Value: 4},
	}

	d.Replenish(discard)
	if d.Remaining() != 3 {
		t.Fatalf("expected 3 cards after replenish, got %d", d.Remaining())
	}

	seen := make(map[string]bool)
	for _, c := range d.Cards() {
		seen[c.ID] = true
	}
	for _, c := range discard {
		if !seen[c.ID] {
			t.Errorf("card %s lost during replenish", c.ID)
		}
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	d1 := New(rand.New(rand.NewSource(42)))
	d1.Shuffle()
	d2 := New(rand.New(rand.NewSource(42)))
	d2.Shuffle()

	c1, c2 := d1.Cards(), d2.Cards()
	for i := range c1 {
		if c1[i].ID != c2[i].ID {
			t.Fatalf("same seed produced different order at %d: %s vs %s", i, c1[i].ID, c2[i].ID)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{Card{Suit: Spades, Value: AceValue}, "A♠"},
		{Card{Suit: Hearts, Value: 10}, "10♥"},
		{Card{Suit: Diamonds, Value: QueenValue}, "Q♦"},
		{Card{Suit: Clubs, Value: KingValue}, "K♣"},
		{Card{Suit: Joker, Value: JokerValue}, "Joker"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
