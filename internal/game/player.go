package game

import (
	"carioca/internal/deck"
	"carioca/internal/rules"
)

// Difficulty selects the strategy tier a bot seat plays with.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Player is one seat in a session, human or bot.
type Player struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Hand        []deck.Card  `json:"hand"`
	Melds       []rules.Meld `json:"melds"`
	BoughtCards []deck.Card  `json:"boughtCards"`
	Score       int          `json:"score"`
	RoundScores []int        `json:"roundScores"`
	RoundBuys   []int        `json:"roundBuys"`
	BuysUsed    int          `json:"buysUsed"`
	HasDrawn    bool         `json:"hasDrawn"`
	HasMelded   bool         `json:"hasMelded"`
	Ready       bool         `json:"ready"`
	IsBot       bool         `json:"isBot"`
	Difficulty  Difficulty   `json:"difficulty,omitempty"`
	TurnOrder   int          `json:"turnOrder"`
}

// holds reports whether the player's hand contains the card ID.
func (p *Player) holds(cardID string) bool {
	_, ok := p.cardInHand(cardID)
	return ok
}

func (p *Player) cardInHand(cardID string) (deck.Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return deck.Card{}, false
}

// cardsInHand resolves a list of card IDs against the hand, rejecting
// unknown IDs and duplicates.
func (p *Player) cardsInHand(cardIDs []string) ([]deck.Card, error) {
	seen := make(map[string]bool, len(cardIDs))
	cards := make([]deck.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		if seen[id] {
			return nil, IllegalMovef("card %s supplied twice", id)
		}
		seen[id] = true
		card, ok := p.cardInHand(id)
		if !ok {
			return nil, IllegalMovef("card %s is not in your hand", id)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// removeFromHand drops the given cards from the hand. Callers must have
// resolved them with cardsInHand first.
func (p *Player) removeFromHand(cards []deck.Card) {
	drop := make(map[string]bool, len(cards))
	for _, c := range cards {
		drop[c.ID] = true
	}
	kept := p.Hand[:0]
	for _, c := range p.Hand {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
}

// buysThisRound is the player's buy count since the last round boundary.
func (p *Player) buysThisRound() int {
	total := 0
	for _, n := range p.RoundBuys {
		total += n
	}
	return p.BuysUsed - total
}

// resetForRound clears per-round state before a new deal.
func (p *Player) resetForRound() {
	p.Hand = nil
	p.Melds = nil
	p.BoughtCards = nil
	p.HasDrawn = false
	p.HasMelded = false
	p.Ready = false
}
