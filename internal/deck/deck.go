package deck

import (
	"fmt"
	"math/rand"
)

const (
	// NumDecks is how many physical 52+2 card decks are shuffled together.
	NumDecks = 2

	// TotalCards is the full multi-deck composition: 52 naturals plus 2
	// jokers per physical deck.
	TotalCards = NumDecks * 54
)

// Deck represents the draw pile. Cards are consumed from the front and
// replenished by reshuffling the discard pile when exhausted.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates the full 108-card double deck, unshuffled.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, TotalCards),
		rng:   rng,
	}

	for n := 0; n < NumDecks; n++ {
		for suit := Hearts; suit <= Spades; suit++ {
			for value := AceValue; value <= KingValue; value++ {
				d.cards = append(d.cards, Card{
					ID:    fmt.Sprintf("%d%s%d", n, suitCode(suit), value),
					Suit:  suit,
					Value: value,
				})
			}
		}
		for j := 0; j < 2; j++ {
			d.cards = append(d.cards, Card{
				ID:    fmt.Sprintf("%dx%d", n, j),
				Suit:  Joker,
				Value: JokerValue,
			})
		}
	}

	return d
}

// FromCards builds a deck over an existing card sequence. Used when
// restoring a session and in tests that need a stacked deck.
func FromCards(cards []Card, rng *rand.Rand) *Deck {
	return &Deck{cards: append([]Card(nil), cards...), rng: rng}
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DrawN draws up to n cards from the deck
func (d *Deck) DrawN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Draw()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Replenish shuffles the given cards back into the draw pile. The caller
// keeps ownership of the discard top card, so only the remainder of the
// discard pile is passed in.
func (d *Deck) Replenish(cards []Card) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Cards returns a copy of the remaining cards in draw order, for state
// snapshots.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

func suitCode(s Suit) string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "x"
	}
}
