package game

// ActionType enumerates every move the engine accepts. The dispatcher
// in Apply covers each one explicitly; there is no generic fallthrough.
type ActionType string

const (
	ActionDrawDeck          ActionType = "DRAW_DECK"
	ActionDrawDiscard       ActionType = "DRAW_DISCARD"
	ActionDown              ActionType = "DOWN"
	ActionAddToMeld         ActionType = "ADD_TO_MELD"
	ActionStealJoker        ActionType = "STEAL_JOKER"
	ActionDiscard           ActionType = "DISCARD"
	ActionIntendBuy         ActionType = "INTEND_BUY"
	ActionIntendDrawDiscard ActionType = "INTEND_DRAW_DISCARD"
	ActionReadyForNextRound ActionType = "READY_FOR_NEXT_ROUND"
	ActionStartNextRound    ActionType = "START_NEXT_ROUND"
)

// Request is one decoded action submission.
type Request struct {
	PlayerID string     `json:"playerId"`
	Action   ActionType `json:"action"`

	// Groups carries the card IDs per group for DOWN.
	Groups [][]string `json:"groups,omitempty"`
	// CardID is the hand card for DISCARD, ADD_TO_MELD and STEAL_JOKER.
	CardID string `json:"cardId,omitempty"`
	// TargetPlayerID and MeldIndex locate the meld for ADD_TO_MELD and
	// STEAL_JOKER.
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
	MeldIndex      int    `json:"meldIndex,omitempty"`
}

// Result echoes what a successful action changed.
type Result struct {
	Action        ActionType `json:"action"`
	PlayerID      string     `json:"playerId"`
	CardsGained   int        `json:"cardsGained,omitempty"`
	RoundComplete bool       `json:"roundComplete,omitempty"`
	GameComplete  bool       `json:"gameComplete,omitempty"`
}

// Apply validates and executes one action. Validation always precedes
// mutation: on error the session is untouched.
func (s *Session) Apply(req Request) (*Result, error) {
	if s.Status == StatusWaiting {
		return nil, IllegalMovef("session %s has not started", s.ID)
	}
	if s.Status == StatusFinished {
		return nil, IllegalMovef("session %s is finished", s.ID)
	}
	player, err := s.Player(req.PlayerID)
	if err != nil {
		return nil, err
	}

	res := &Result{Action: req.Action, PlayerID: req.PlayerID}
	switch req.Action {
	case ActionDrawDeck:
		err = s.applyDrawDeck(player)
	case ActionDrawDiscard:
		err = s.applyDrawDiscard(player)
	case ActionDown:
		err = s.applyDown(player, req.Groups)
	case ActionAddToMeld:
		err = s.applyAddToMeld(player, req.CardID, req.TargetPlayerID, req.MeldIndex)
	case ActionStealJoker:
		err = s.applyStealJoker(player, req.CardID, req.TargetPlayerID, req.MeldIndex)
	case ActionDiscard:
		err = s.applyDiscard(player, req.CardID)
	case ActionIntendBuy:
		err = s.applyIntendBuy(player)
	case ActionIntendDrawDiscard:
		res.CardsGained, err = s.applyIntendDrawDiscard(player)
	case ActionReadyForNextRound:
		err = s.applyReady(player)
	case ActionStartNextRound:
		err = s.applyStartNextRound(player)
	default:
		return nil, IllegalMovef("unknown action %q", req.Action)
	}
	if err != nil {
		return nil, err
	}

	s.LastAction = string(req.Action)
	res.RoundComplete = s.RoundComplete
	res.GameComplete = s.Status == StatusFinished
	return res, nil
}

// requireTurn checks the player is the current seat and the session is
// in play.
func (s *Session) requireTurn(p *Player) error {
	if s.RoundComplete {
		return IllegalMovef("round %d is over, waiting for the next deal", s.Round)
	}
	if s.CurrentPlayer().ID != p.ID {
		return Forbiddenf("it is not %s's turn", p.Name)
	}
	return nil
}
