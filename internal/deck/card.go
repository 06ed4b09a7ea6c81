package deck

import "fmt"

// Suit represents a card suit. Jokers carry their own suit so they can
// never collide with a natural card.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
	Joker
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	case Joker:
		return "★"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card values. Jokers are 0; Ace is 1 and may also anchor the high end of
// a run. 11-13 are Jack, Queen and King.
const (
	JokerValue = 0
	AceValue   = 1
	JackValue  = 11
	QueenValue = 12
	KingValue  = 13
)

// Card represents a single physical card. Because the game is played with
// two identical decks, identity is the ID, not the suit/value pair.
type Card struct {
	ID    string `json:"id"`
	Suit  Suit   `json:"suit"`
	Value int    `json:"value"`
}

// IsJoker returns true if the card is a joker
func (c Card) IsJoker() bool {
	return c.Suit == Joker || c.Value == JokerValue
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Value == AceValue
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Value >= JackValue && c.Value <= KingValue
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	if c.IsJoker() {
		return "Joker"
	}
	return fmt.Sprintf("%s%s", valueString(c.Value), c.Suit)
}

func valueString(v int) string {
	switch v {
	case AceValue:
		return "A"
	case JackValue:
		return "J"
	case QueenValue:
		return "Q"
	case KingValue:
		return "K"
	default:
		return fmt.Sprintf("%d", v)
	}
}
