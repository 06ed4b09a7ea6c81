package rules

import (
	"fmt"
	"testing"

	"carioca/internal/deck"
)

var testCardSeq int

func tc(suit deck.Suit, value int) deck.Card {
	testCardSeq++
	return deck.Card{ID: fmt.Sprintf("t%d", testCardSeq), Suit: suit, Value: value}
}

func joker() deck.Card {
	testCardSeq++
	return deck.Card{ID: fmt.Sprintf("t%d", testCardSeq), Suit: deck.Joker, Value: deck.JokerValue}
}

func TestIsTrio(t *testing.T) {
	tests := []struct {
		name  string
		cards []deck.Card
		want  bool
	}{
		{
			name:  "three same value mixed suits",
			cards: []deck.Card{tc(deck.Hearts, 7), tc(deck.Clubs, 7), tc(deck.Spades, 7)},
			want:  true,
		},
		{
			name:  "repeated suits allowed across decks",
			cards: []deck.Card{tc(deck.Hearts, 7), tc(deck.Hearts, 7), tc(deck.Spades, 7)},
			want:  true,
		},
		{
			name:  "differing values",
			cards: []deck.Card{tc(deck.Hearts, 7), tc(deck.Clubs, 8), tc(deck.Spades, 7)},
			want:  false,
		},
		{
			name:  "too small",
			cards: []deck.Card{tc(deck.Hearts, 7), tc(deck.Clubs, 7)},
			want:  false,
		},
		{
			name:  "four naturals one joker",
			cards: []deck.Card{tc(deck.Hearts, 9), tc(deck.Clubs, 9), tc(deck.Spades, 9), tc(deck.Diamonds, 9), joker()},
			want:  true,
		},
		{
			name:  "two naturals one joker",
			cards: []deck.Card{tc(deck.Hearts, 9), tc(deck.Clubs, 9), joker()},
			want:  true,
		},
		{
			name:  "one natural two jokers",
			cards: []deck.Card{tc(deck.Hearts, 9), joker(), joker()},
			want:  false,
		},
		{
			name:  "three naturals two jokers violates ratio",
			cards: []deck.Card{tc(deck.Hearts, 9), tc(deck.Clubs, 9), tc(deck.Spades, 9), joker(), joker()},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTrio(tt.cards); got != tt.want {
				t.Errorf("IsTrio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsEscala(t *testing.T) {
	tests := []struct {
		name  string
		cards []deck.Card
		want  bool
	}{
		{
			name:  "low run",
			cards: []deck.Card{tc(deck.Hearts, 4), tc(deck.Hearts, 5), tc(deck.Hearts, 6)},
			want:  true,
		},
		{
			name:  "ace low",
			cards: []deck.Card{tc(deck.Spades, deck.AceValue), tc(deck.Spades, 2), tc(deck.Spades, 3)},
			want:  true,
		},
		{
			name:  "ace high",
			cards: []deck.Card{tc(deck.Spades, deck.QueenValue), tc(deck.Spades, deck.KingValue), tc(deck.Spades, deck.AceValue)},
			want:  true,
		},
		{
			name: "span across the ace",
			cards: []deck.Card{
				tc(deck.Clubs, deck.QueenValue), tc(deck.Clubs, deck.KingValue),
				tc(deck.Clubs, deck.AceValue), tc(deck.Clubs, 2), tc(deck.Clubs, 3),
			},
			want: true,
		},
		{
			name:  "ambiguous wrap rejected",
			cards: []deck.Card{tc(deck.Clubs, deck.KingValue), tc(deck.Clubs, deck.AceValue), tc(deck.Clubs, 2)},
			want:  false,
		},
		{
			name: "wrap with one trailing card rejected",
			cards: []deck.Card{
				tc(deck.Clubs, deck.JackValue), tc(deck.Clubs, deck.QueenValue),
				tc(deck.Clubs, deck.KingValue), tc(deck.Clubs, deck.AceValue), tc(deck.Clubs, 2),
			},
			want: false,
		},
		{
			name:  "suit change",
			cards: []deck.Card{tc(deck.Hearts, 4), tc(deck.Spades, 5), tc(deck.Hearts, 6)},
			want:  false,
		},
		{
			name:  "gap without joker",
			cards: []deck.Card{tc(deck.Hearts, 4), tc(deck.Hearts, 6), tc(deck.Hearts, 7)},
			want:  false,
		},
		{
			name:  "joker fills gap",
			cards: []deck.Card{tc(deck.Hearts, 4), joker(), tc(deck.Hearts, 6)},
			want:  true,
		},
		{
			name:  "duplicate value cannot share a run",
			cards: []deck.Card{tc(deck.Hearts, 4), tc(deck.Hearts, 4), tc(deck.Hearts, 5)},
			want:  false,
		},
		{
			name:  "two naturals two jokers violates ratio",
			cards: []deck.Card{tc(deck.Hearts, 4), joker(), tc(deck.Hearts, 6), joker()},
			want:  false,
		},
		{
			name: "long run with jokers",
			cards: []deck.Card{
				tc(deck.Diamonds, 3), tc(deck.Diamonds, 4), joker(),
				tc(deck.Diamonds, 6), tc(deck.Diamonds, 7), joker(),
				tc(deck.Diamonds, 9),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEscala(tt.cards); got != tt.want {
				t.Errorf("IsEscala() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEscalaLayoutOrdersRun(t *testing.T) {
	five := tc(deck.Hearts, 5)
	seven := tc(deck.Hearts, 7)
	j := joker()

	layout, ok := EscalaLayout([]deck.Card{seven, j, five})
	if !ok {
		t.Fatal("expected a valid escala")
	}
	if layout[0].ID != five.ID || layout[1].ID != j.ID || layout[2].ID != seven.ID {
		t.Errorf("layout not in run order: %v", layout)
	}
}

func TestEscalaLayoutPrefersInternalGapFill(t *testing.T) {
	// 5-6 plus a joker: the joker extends the high end rather than the low
	layout, ok := EscalaLayout([]deck.Card{tc(deck.Hearts, 5), tc(deck.Hearts, 6), joker()})
	if !ok {
		t.Fatal("expected a valid escala")
	}
	if !layout[2].IsJoker() {
		t.Errorf("expected trailing joker, got %v", layout)
	}
	slots := EscalaJokerSlots(Meld{Kind: Escala, Cards: layout})
	if len(slots) != 1 || slots[0].Represents.Value != 7 {
		t.Errorf("joker should stand in for the 7, got %+v", slots)
	}
}

func TestCardPoints(t *testing.T) {
	tests := []struct {
		card deck.Card
		want int
	}{
		{tc(deck.Hearts, deck.AceValue), 15},
		{joker(), 20},
		{tc(deck.Spades, deck.KingValue), 10},
		{tc(deck.Spades, deck.QueenValue), 10},
		{tc(deck.Spades, deck.JackValue), 10},
		{tc(deck.Diamonds, 2), 2},
		{tc(deck.Clubs, 10), 10},
	}

	for _, tt := range tests {
		if got := CardPoints(tt.card); got != tt.want {
			t.Errorf("CardPoints(%s) = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestHandPoints(t *testing.T) {
	hand := []deck.Card{
		tc(deck.Hearts, deck.AceValue),
		joker(),
		tc(deck.Spades, deck.KingValue),
		tc(deck.Diamonds, 2),
	}
	if got := HandPoints(hand); got != 47 {
		t.Errorf("HandPoints() = %d, want 47", got)
	}
}
