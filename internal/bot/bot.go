// Package bot drives bot-controlled seats. A Brain picks one action at
// a time; the Controller feeds its choices through the engine until the
// bot's turn legally ends.
package bot

import (
	"carioca/internal/analyzer"
	"carioca/internal/deck"
	"carioca/internal/game"
	"carioca/internal/rules"
)

// Brain chooses the next action for a bot seat. Implementations only
// read the information a human in that seat could see.
type Brain interface {
	NextRequest(s *game.Session, playerID string) (game.Request, bool)
}

// NewBrain returns the strategy for a difficulty tier. Unknown tiers
// fall back to easy.
func NewBrain(difficulty game.Difficulty) Brain {
	switch difficulty {
	case game.DifficultyHard:
		return &greedyBrain{
			smartDraw:      true,
			buys:           true,
			addsToMelds:    true,
			stealsJokers:   true,
			additionalDown: true,
			protectsGroups: true,
		}
	case game.DifficultyMedium:
		return &greedyBrain{
			smartDraw:      true,
			addsToMelds:    true,
			additionalDown: true,
		}
	default:
		return &greedyBrain{}
	}
}

// greedyBrain plays a fixed priority list each turn: draw, lay down
// whatever the analyzer finds, extend or raid visible melds, then shed
// the most expensive card. The flags gate which of those moves the tier
// is willing to make.
type greedyBrain struct {
	smartDraw      bool
	buys           bool
	addsToMelds    bool
	stealsJokers   bool
	additionalDown bool
	protectsGroups bool
}

func (b *greedyBrain) NextRequest(s *game.Session, playerID string) (game.Request, bool) {
	p, err := s.Player(playerID)
	if err != nil || s.RoundComplete || len(p.Hand) == 0 {
		return game.Request{}, false
	}

	if !p.HasDrawn {
		return b.chooseDraw(s, p), true
	}

	if req, ok := b.chooseDown(s, p); ok {
		return req, true
	}
	if b.addsToMelds && p.HasMelded {
		if req, ok := b.chooseAdd(s, p); ok {
			return req, true
		}
	}
	if b.stealsJokers {
		if req, ok := b.chooseSteal(s, p); ok {
			return req, true
		}
	}
	return b.chooseDiscard(s, p), true
}

func (b *greedyBrain) chooseDraw(s *game.Session, p *game.Player) game.Request {
	top, hasTop := topDiscard(s)
	if hasTop && b.smartDraw && b.cardHelps(s, p, top) {
		if b.buys && p.HasMelded && rules.RemainingBuys(p.BuysUsed) > 0 {
			// pay for the extra cards rather than spend the draw
			return game.Request{PlayerID: p.ID, Action: game.ActionIntendDrawDiscard}
		}
		return game.Request{PlayerID: p.ID, Action: game.ActionDrawDiscard}
	}
	return game.Request{PlayerID: p.ID, Action: game.ActionDrawDeck}
}

func (b *greedyBrain) chooseDown(s *game.Session, p *game.Player) (game.Request, bool) {
	var groups [][]deck.Card
	var ok bool
	if !p.HasMelded {
		groups, ok = analyzer.CanDoInitialDown(p.Hand, s.Round)
	} else if b.additionalDown {
		groups, ok = analyzer.CanDoAdditionalDown(p.Hand, rules.MinMeldSize)
	}
	if !ok {
		return game.Request{}, false
	}

	ids := make([][]string, len(groups))
	for i, g := range groups {
		ids[i] = make([]string, len(g))
		for j, c := range g {
			ids[i][j] = c.ID
		}
	}
	return game.Request{PlayerID: p.ID, Action: game.ActionDown, Groups: ids}, true
}

func (b *greedyBrain) chooseAdd(s *game.Session, p *game.Player) (game.Request, bool) {
	if len(p.Hand) <= 1 {
		return game.Request{}, false
	}
	for _, card := range p.Hand {
		for _, owner := range s.Players {
			for i, meld := range owner.Melds {
				if rules.CanAddToMeld(card, meld) {
					return game.Request{
						PlayerID:       p.ID,
						Action:         game.ActionAddToMeld,
						CardID:         card.ID,
						TargetPlayerID: owner.ID,
						MeldIndex:      i,
					}, true
				}
			}
		}
	}
	return game.Request{}, false
}

func (b *greedyBrain) chooseSteal(s *game.Session, p *game.Player) (game.Request, bool) {
	for _, card := range p.Hand {
		for _, owner := range s.Players {
			for i, meld := range owner.Melds {
				if _, ok := rules.CanStealJoker(card, meld); ok {
					return game.Request{
						PlayerID:       p.ID,
						Action:         game.ActionStealJoker,
						CardID:         card.ID,
						TargetPlayerID: owner.ID,
						MeldIndex:      i,
					}, true
				}
			}
		}
	}
	return game.Request{}, false
}

// chooseDiscard sheds the most expensive non-joker. Jokers only leave
// the hand when nothing else is left. The protective tier also keeps
// cards the analyzer sees in candidate groups.
func (b *greedyBrain) chooseDiscard(s *game.Session, p *game.Player) game.Request {
	keep := map[string]bool{}
	if b.protectsGroups {
		candidates := analyzer.FindPotentialContractGroups(p.Hand, s.Round)
		for _, g := range append(candidates.Trios, candidates.Escalas...) {
			for _, c := range g {
				keep[c.ID] = true
			}
		}
	}

	pick := func(skipKept bool) (deck.Card, bool) {
		var best deck.Card
		found := false
		for _, c := range p.Hand {
			if c.IsJoker() || (skipKept && keep[c.ID]) {
				continue
			}
			if !found || rules.CardPoints(c) > rules.CardPoints(best) {
				best = c
				found = true
			}
		}
		return best, found
	}

	if card, ok := pick(true); ok {
		return game.Request{PlayerID: p.ID, Action: game.ActionDiscard, CardID: card.ID}
	}
	if card, ok := pick(false); ok {
		return game.Request{PlayerID: p.ID, Action: game.ActionDiscard, CardID: card.ID}
	}
	// joker-only hand
	return game.Request{PlayerID: p.ID, Action: game.ActionDiscard, CardID: p.Hand[0].ID}
}

// cardHelps reports whether the discard top would extend a visible meld
// or complete a cluster or run already in the hand.
func (b *greedyBrain) cardHelps(s *game.Session, p *game.Player, card deck.Card) bool {
	if card.IsJoker() {
		return true
	}
	if p.HasMelded {
		for _, owner := range s.Players {
			for _, meld := range owner.Melds {
				if rules.CanAddToMeld(card, meld) {
					return true
				}
			}
		}
	}

	sameValue := 0
	adjacentSuited := false
	for _, c := range p.Hand {
		if c.IsJoker() {
			continue
		}
		if c.Value == card.Value {
			sameValue++
		}
		if c.Suit == card.Suit && valueDistance(c.Value, card.Value) == 1 {
			adjacentSuited = true
		}
	}
	return sameValue >= 2 || adjacentSuited
}

// valueDistance is the cyclic distance between two card values on the
// ace-to-king wheel.
func valueDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if 13-d < d {
		d = 13 - d
	}
	return d
}

func topDiscard(s *game.Session) (deck.Card, bool) {
	if len(s.DiscardPile) == 0 {
		return deck.Card{}, false
	}
	return s.DiscardPile[len(s.DiscardPile)-1], true
}
