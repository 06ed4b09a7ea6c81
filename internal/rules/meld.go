package rules

import (
	"carioca/internal/deck"
)

// GroupKind distinguishes the two legal meld shapes.
type GroupKind int

const (
	Trio GroupKind = iota
	Escala
)

// String returns the string representation of a group kind
func (k GroupKind) String() string {
	switch k {
	case Trio:
		return "trio"
	case Escala:
		return "escala"
	default:
		return "?"
	}
}

// MinMeldSize is the smallest legal meld.
const MinMeldSize = 3

// maxRunLength caps an escala at the 13 positions of the value cycle, so a
// run can never wrap past the Ace twice.
const maxRunLength = 13

// Meld is a validated group of cards on the table. Escala cards are kept
// in run order, so every joker has a definite slot it is standing in for.
type Meld struct {
	Kind  GroupKind   `json:"kind"`
	Cards []deck.Card `json:"cards"`
}

func splitJokers(cards []deck.Card) (naturals, jokers []deck.Card) {
	for _, c := range cards {
		if c.IsJoker() {
			jokers = append(jokers, c)
		} else {
			naturals = append(naturals, c)
		}
	}
	return naturals, jokers
}

// jokerRatioOK enforces the joker allowance: at least 2 natural cards for
// every joker the meld carries.
func jokerRatioOK(naturals, jokers int) bool {
	return naturals >= 2*jokers
}

// IsTrio reports whether the cards form a legal trio: every natural card
// shares one value, suits free to repeat, jokers within the allowance.
func IsTrio(cards []deck.Card) bool {
	if len(cards) < MinMeldSize {
		return false
	}
	naturals, jokers := splitJokers(cards)
	if len(naturals) < 2 || !jokerRatioOK(len(naturals), len(jokers)) {
		return false
	}
	value := naturals[0].Value
	for _, c := range naturals[1:] {
		if c.Value != value {
			return false
		}
	}
	return true
}

// IsEscala reports whether the cards form a legal run: all naturals of one
// suit, values occupying consecutive positions on the A..K cycle with
// jokers filling the remaining positions. The Ace may anchor either end of
// the run; a run spanning across the Ace (e.g. Q-K-A-2-3) needs at least
// two positions on each side of it.
func IsEscala(cards []deck.Card) bool {
	_, ok := EscalaLayout(cards)
	return ok
}

// EscalaLayout validates a run and returns its cards arranged in run
// order, jokers slotted into the positions they stand in for. Internal
// gaps are filled before jokers are pushed to the ends; remaining ties
// resolve toward the higher window.
func EscalaLayout(cards []deck.Card) ([]deck.Card, bool) {
	length := len(cards)
	if length < MinMeldSize || length > maxRunLength {
		return nil, false
	}
	naturals, jokers := splitJokers(cards)
	if len(naturals) < 2 || !jokerRatioOK(len(naturals), len(jokers)) {
		return nil, false
	}

	suit := naturals[0].Suit
	values := make(map[int]bool, len(naturals))
	for _, c := range naturals {
		if c.Suit != suit {
			return nil, false
		}
		if values[c.Value] {
			// two copies of one card cannot share a run
			return nil, false
		}
		values[c.Value] = true
	}

	bestStart, bestEndJokers := -1, length+1
	for start := 1; start <= maxRunLength; start++ {
		covered := 0
		aceIdx := -1
		for i := 0; i < length; i++ {
			pos := cyclePos(start + i)
			if pos == deck.AceValue {
				aceIdx = i
			}
			if values[pos] {
				covered++
			}
		}
		if covered != len(values) {
			continue
		}
		// an interior Ace marks a span across the A/K boundary, which is
		// only unambiguous with two positions on each side
		if aceIdx > 0 && aceIdx < length-1 {
			if aceIdx < 2 || aceIdx > length-3 {
				continue
			}
		}
		endJokers := 0
		if !values[cyclePos(start)] {
			endJokers++
		}
		if !values[cyclePos(start+length-1)] {
			endJokers++
		}
		if endJokers < bestEndJokers || (endJokers == bestEndJokers && start > bestStart) {
			bestStart, bestEndJokers = start, endJokers
		}
	}
	if bestStart == -1 {
		return nil, false
	}

	byValue := make(map[int]deck.Card, len(naturals))
	for _, c := range naturals {
		byValue[c.Value] = c
	}
	layout := make([]deck.Card, 0, length)
	nextJoker := 0
	for i := 0; i < length; i++ {
		pos := cyclePos(bestStart + i)
		if c, ok := byValue[pos]; ok {
			layout = append(layout, c)
		} else {
			layout = append(layout, jokers[nextJoker])
			nextJoker++
		}
	}
	return layout, true
}

// ClassifyGroup determines which meld shape a group of cards forms,
// preferring the trio reading when both could apply.
func ClassifyGroup(cards []deck.Card) (GroupKind, bool) {
	if IsTrio(cards) {
		return Trio, true
	}
	if IsEscala(cards) {
		return Escala, true
	}
	return 0, false
}

// NewMeld validates a group and returns it in canonical order.
func NewMeld(cards []deck.Card) (Meld, bool) {
	if IsTrio(cards) {
		return Meld{Kind: Trio, Cards: append([]deck.Card(nil), cards...)}, true
	}
	if layout, ok := EscalaLayout(cards); ok {
		return Meld{Kind: Escala, Cards: layout}, true
	}
	return Meld{}, false
}

// cyclePos maps an unbounded position onto the 1..13 value cycle.
func cyclePos(p int) int {
	return (p-1)%maxRunLength + 1
}
