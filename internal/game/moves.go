package game

import (
	"carioca/internal/deck"
	"carioca/internal/rules"
)

// applyDrawDeck resolves any pending buys on the declined discard top,
// then deals the current player one deck card.
func (s *Session) applyDrawDeck(p *Player) error {
	if err := s.requireTurn(p); err != nil {
		return err
	}
	if p.HasDrawn {
		return IllegalMovef("%s has already drawn this turn", p.Name)
	}
	if !s.enoughCardsFor(1 + 2*len(s.PendingBuys)) {
		return IllegalMovef("not enough cards left to draw")
	}

	s.resolvePendingBuys()

	card, err := s.drawFromDeck()
	if err != nil {
		return err
	}
	p.Hand = append(p.Hand, card)
	p.HasDrawn = true
	return nil
}

// applyDrawDiscard gives the current player the top discard. Pending
// buys on that card are voided; the current seat has priority.
func (s *Session) applyDrawDiscard(p *Player) error {
	if err := s.requireTurn(p); err != nil {
		return err
	}
	if p.HasDrawn {
		return IllegalMovef("%s has already drawn this turn", p.Name)
	}
	card, ok := s.popDiscard()
	if !ok {
		return IllegalMovef("the discard pile is empty")
	}
	p.Hand = append(p.Hand, card)
	p.HasDrawn = true
	s.PendingBuys = nil
	return nil
}

// applyDown lays down one or more groups. Before the player has melded
// the groups must satisfy the round contract exactly; afterwards each
// group only needs to stand alone.
func (s *Session) applyDown(p *Player, groups [][]string) error {
	if err := s.requireTurn(p); err != nil {
		return err
	}
	if !p.HasDrawn {
		return IllegalMovef("draw before laying down")
	}
	if len(groups) == 0 {
		return IllegalMovef("no groups supplied")
	}

	var allIDs []string
	for _, g := range groups {
		allIDs = append(allIDs, g...)
	}
	allCards, err := p.cardsInHand(allIDs)
	if err != nil {
		return err
	}
	if len(allCards) >= len(p.Hand) {
		return IllegalMovef("a down must leave a card to discard")
	}

	cardGroups := make([][]deck.Card, len(groups))
	i := 0
	for g, ids := range groups {
		cardGroups[g] = allCards[i : i+len(ids)]
		i += len(ids)
	}

	var melds []rules.Meld
	if p.HasMelded {
		melds, err = rules.ValidateAdditionalDown(cardGroups)
	} else {
		melds, err = rules.ValidateContract(cardGroups, s.Round)
	}
	if err != nil {
		return IllegalMovef("%s", err)
	}

	p.removeFromHand(allCards)
	p.Melds = append(p.Melds, melds...)
	p.HasMelded = true
	return nil
}

// applyAddToMeld appends a hand card to any player's meld.
func (s *Session) applyAddToMeld(p *Player, cardID, targetPlayerID string, meldIndex int) error {
	if err := s.requireTurn(p); err != nil {
		return err
	}
	if !p.HasDrawn {
		return IllegalMovef("draw before adding to a meld")
	}
	if !p.HasMelded {
		return IllegalMovef("lay down your contract before adding to melds")
	}
	card, ok := p.cardInHand(cardID)
	if !ok {
		return IllegalMovef("card %s is not in your hand", cardID)
	}
	if len(p.Hand) <= 1 {
		return IllegalMovef("adding your last card would leave nothing to discard")
	}
	target, meld, err := s.meldAt(targetPlayerID, meldIndex)
	if err != nil {
		return err
	}

	updated, ok := rules.AddToMeld(card, *meld)
	if !ok {
		return IllegalMovef("%s does not fit that %s", card, meld.Kind)
	}

	p.removeFromHand([]deck.Card{card})
	target.Melds[meldIndex] = updated
	return nil
}

// applyStealJoker trades a natural card for the joker standing in for it.
func (s *Session) applyStealJoker(p *Player, cardID, targetPlayerID string, meldIndex int) error {
	if err := s.requireTurn(p); err != nil {
		return err
	}
	if !p.HasDrawn {
		return IllegalMovef("draw before stealing a joker")
	}
	card, ok := p.cardInHand(cardID)
	if !ok {
		return IllegalMovef("card %s is not in your hand", cardID)
	}
	target, meld, err := s.meldAt(targetPlayerID, meldIndex)
	if err != nil {
		return err
	}

	updated, joker, ok := rules.StealJoker(card, *meld)
	if !ok {
		return IllegalMovef("%s cannot displace a joker in that %s", card, meld.Kind)
	}

	p.removeFromHand([]deck.Card{card})
	p.Hand = append(p.Hand, joker)
	target.Melds[meldIndex] = updated
	return nil
}

// applyDiscard ends the turn, or the round when the hand empties.
func (s *Session) applyDiscard(p *Player, cardID string) error {
	if err := s.requireTurn(p); err != nil {
		return err
	}
	if !p.HasDrawn {
		return IllegalMovef("draw before discarding")
	}
	card, ok := p.cardInHand(cardID)
	if !ok {
		return IllegalMovef("card %s is not in your hand", cardID)
	}
	if len(p.Hand) == 1 && !p.HasMelded {
		return IllegalMovef("cannot go out without laying down your contract")
	}

	p.removeFromHand([]deck.Card{card})
	s.DiscardPile = append(s.DiscardPile, card)
	p.HasDrawn = false

	if len(p.Hand) == 0 {
		s.endRound()
		return nil
	}

	s.TurnIndex = NextTurnIndex(s.TurnIndex, len(s.Players), s.Direction)
	s.PendingBuys = s.PendingDiscardBuys
	s.PendingDiscardBuys = nil
	return nil
}

// applyIntendBuy queues a non-current player's bid on a discard: the
// current top card if the draw is still open, the next discard
// otherwise.
func (s *Session) applyIntendBuy(p *Player) error {
	if s.RoundComplete {
		return IllegalMovef("round %d is over, waiting for the next deal", s.Round)
	}
	if s.CurrentPlayer().ID == p.ID {
		return IllegalMovef("the current player buys with %s", ActionIntendDrawDiscard)
	}
	if rules.RemainingBuys(p.BuysUsed) == 0 {
		return IllegalMovef("%s has no buys left", p.Name)
	}
	if s.buyQueued(p.ID) {
		return IllegalMovef("%s already has a buy pending", p.Name)
	}

	if s.CurrentPlayer().HasDrawn {
		s.PendingDiscardBuys = append(s.PendingDiscardBuys, p.ID)
		return nil
	}
	if _, ok := s.topDiscard(); !ok {
		return IllegalMovef("nothing on the discard pile to buy")
	}
	s.PendingBuys = append(s.PendingBuys, p.ID)
	return nil
}

// applyIntendDrawDiscard is the current player's own buy: the top
// discard plus three extra deck cards, consuming one buy.
func (s *Session) applyIntendDrawDiscard(p *Player) (int, error) {
	if err := s.requireTurn(p); err != nil {
		return 0, err
	}
	if p.HasDrawn {
		return 0, IllegalMovef("%s has already drawn this turn", p.Name)
	}
	if rules.RemainingBuys(p.BuysUsed) == 0 {
		return 0, IllegalMovef("%s has no buys left", p.Name)
	}
	if _, ok := s.topDiscard(); !ok {
		return 0, IllegalMovef("the discard pile is empty")
	}
	extras := rules.BuyTotalCards(true) - 1
	if !s.enoughCardsFor(extras) {
		return 0, IllegalMovef("not enough cards left to buy")
	}

	card, _ := s.popDiscard()
	p.Hand = append(p.Hand, card)
	for i := 0; i < extras; i++ {
		extra, err := s.drawFromDeck()
		if err != nil {
			return 0, Internalf(err, "deck exhausted mid-buy")
		}
		p.Hand = append(p.Hand, extra)
		p.BoughtCards = append(p.BoughtCards, extra)
	}
	p.BuysUsed++
	p.HasDrawn = true
	s.PendingBuys = nil
	return rules.BuyTotalCards(true), nil
}

// applyReady acknowledges the finished round.
func (s *Session) applyReady(p *Player) error {
	if !s.RoundComplete {
		return IllegalMovef("round %d is still in play", s.Round)
	}
	p.Ready = true
	return nil
}

// applyStartNextRound deals the next round once every seat is ready.
// Host only.
func (s *Session) applyStartNextRound(p *Player) error {
	if p.ID != s.HostID {
		return Forbiddenf("only the host can start the next round")
	}
	if !s.RoundComplete {
		return IllegalMovef("round %d is still in play", s.Round)
	}
	for _, other := range s.Players {
		if !other.Ready {
			return IllegalMovef("%s is not ready yet", other.Name)
		}
	}

	s.Round++
	s.dealRound()
	return nil
}

// resolvePendingBuys settles queued bids in seat order starting from
// the seat after the current player. Each accepted buy grants the then
// top discard plus two deck cards.
func (s *Session) resolvePendingBuys() {
	if len(s.PendingBuys) == 0 {
		return
	}
	queued := make(map[string]bool, len(s.PendingBuys))
	for _, id := range s.PendingBuys {
		queued[id] = true
	}
	s.PendingBuys = nil

	extras := rules.BuyTotalCards(false) - 1
	seat := s.TurnIndex
	for i := 0; i < len(s.Players)-1; i++ {
		seat = NextTurnIndex(seat, len(s.Players), s.Direction)
		buyer := s.Players[seat]
		if !queued[buyer.ID] || rules.RemainingBuys(buyer.BuysUsed) == 0 {
			continue
		}
		card, ok := s.popDiscard()
		if !ok {
			break
		}
		buyer.Hand = append(buyer.Hand, card)
		buyer.BoughtCards = append(buyer.BoughtCards, card)
		for j := 0; j < extras; j++ {
			extra, err := s.drawFromDeck()
			if err != nil {
				break
			}
			buyer.Hand = append(buyer.Hand, extra)
			buyer.BoughtCards = append(buyer.BoughtCards, extra)
		}
		buyer.BuysUsed++
	}
}

// enoughCardsFor reports whether deck plus reshufflable discard can
// cover n draws.
func (s *Session) enoughCardsFor(n int) bool {
	available := s.Deck.Remaining()
	if len(s.DiscardPile) > 1 {
		available += len(s.DiscardPile) - 1
	}
	return available >= n
}

// buyQueued reports whether the player already sits in either queue.
func (s *Session) buyQueued(playerID string) bool {
	for _, id := range s.PendingBuys {
		if id == playerID {
			return true
		}
	}
	for _, id := range s.PendingDiscardBuys {
		if id == playerID {
			return true
		}
	}
	return false
}

// meldAt locates a meld by owner and index.
func (s *Session) meldAt(playerID string, meldIndex int) (*Player, *rules.Meld, error) {
	target, err := s.Player(playerID)
	if err != nil {
		return nil, nil, err
	}
	if meldIndex < 0 || meldIndex >= len(target.Melds) {
		return nil, nil, IllegalMovef("%s has no meld %d", target.Name, meldIndex)
	}
	return target, &target.Melds[meldIndex], nil
}
