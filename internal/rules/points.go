package rules

import "carioca/internal/deck"

// CardPoints returns the penalty value of a single card when it is left in
// a hand at round end: jokers 20, Aces 15, face cards 10, everything else
// its numeric value.
func CardPoints(c deck.Card) int {
	switch {
	case c.IsJoker():
		return 20
	case c.IsAce():
		return 15
	case c.IsFaceCard():
		return 10
	default:
		return c.Value
	}
}

// HandPoints sums CardPoints over a hand.
func HandPoints(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += CardPoints(c)
	}
	return total
}
