package rules

import (
	"carioca/internal/deck"
)

// CanAddToMeld reports whether appending card to an existing meld keeps it
// legal. The extended meld is simply revalidated, so add legality can
// never drift from meld legality.
func CanAddToMeld(card deck.Card, meld Meld) bool {
	_, ok := AddToMeld(card, meld)
	return ok
}

// AddToMeld returns the meld extended with card, in canonical order.
func AddToMeld(card deck.Card, meld Meld) (Meld, bool) {
	extended := make([]deck.Card, 0, len(meld.Cards)+1)
	extended = append(extended, meld.Cards...)
	extended = append(extended, card)

	switch meld.Kind {
	case Trio:
		if !IsTrio(extended) {
			return Meld{}, false
		}
		return Meld{Kind: Trio, Cards: extended}, true
	case Escala:
		layout, ok := EscalaLayout(extended)
		if !ok {
			return Meld{}, false
		}
		return Meld{Kind: Escala, Cards: layout}, true
	default:
		return Meld{}, false
	}
}

// JokerSlot describes a joker inside an escala and the natural card it is
// standing in for.
type JokerSlot struct {
	Index      int
	Represents deck.Card
}

// EscalaJokerSlots lists the jokers of an escala meld with the value and
// suit each one substitutes. Cards must be in canonical run order, which
// NewMeld and AddToMeld guarantee.
func EscalaJokerSlots(meld Meld) []JokerSlot {
	if meld.Kind != Escala {
		return nil
	}

	// anchor on any natural to derive the window positions
	anchorIdx := -1
	var suit deck.Suit
	for i, c := range meld.Cards {
		if !c.IsJoker() {
			anchorIdx = i
			suit = c.Suit
			break
		}
	}
	if anchorIdx == -1 {
		return nil
	}
	anchorValue := meld.Cards[anchorIdx].Value

	var slots []JokerSlot
	for i, c := range meld.Cards {
		if !c.IsJoker() {
			continue
		}
		value := cyclePos(anchorValue + maxRunLength + i - anchorIdx)
		slots = append(slots, JokerSlot{
			Index:      i,
			Represents: deck.Card{Suit: suit, Value: value},
		})
	}
	return slots
}

// CanStealJoker reports whether candidate may displace a joker from the
// meld, and which joker position it would take. A steal needs the meld to
// hold at least two naturals; on a trio the candidate must match the trio
// value with a suit not yet present among the naturals, on an escala it
// must be exactly the card the joker stands in for.
func CanStealJoker(candidate deck.Card, meld Meld) (int, bool) {
	if candidate.IsJoker() {
		return 0, false
	}
	naturals, jokers := splitJokers(meld.Cards)
	if len(naturals) < 2 || len(jokers) == 0 {
		return 0, false
	}

	switch meld.Kind {
	case Trio:
		if candidate.Value != naturals[0].Value {
			return 0, false
		}
		for _, c := range naturals {
			if c.Suit == candidate.Suit {
				return 0, false
			}
		}
		for i, c := range meld.Cards {
			if c.IsJoker() {
				return i, true
			}
		}
		return 0, false

	case Escala:
		for _, slot := range EscalaJokerSlots(meld) {
			if slot.Represents.Suit == candidate.Suit && slot.Represents.Value == candidate.Value {
				return slot.Index, true
			}
		}
		return 0, false

	default:
		return 0, false
	}
}

// StealJoker swaps candidate into the joker's slot and returns the freed
// joker alongside the updated meld.
func StealJoker(candidate deck.Card, meld Meld) (Meld, deck.Card, bool) {
	idx, ok := CanStealJoker(candidate, meld)
	if !ok {
		return Meld{}, deck.Card{}, false
	}
	joker := meld.Cards[idx]
	cards := append([]deck.Card(nil), meld.Cards...)
	cards[idx] = candidate
	return Meld{Kind: meld.Kind, Cards: cards}, joker, true
}
