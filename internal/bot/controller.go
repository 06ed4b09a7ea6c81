package bot

import (
	"github.com/charmbracelet/log"

	"carioca/internal/game"
)

// maxActionsPerTurn bounds a single bot turn. A turn is normally a
// handful of actions; the cap only matters if a brain misbehaves.
const maxActionsPerTurn = 64

// Controller plays out bot seats against a session. The caller holds
// whatever lock serializes the session.
type Controller struct {
	logger *log.Logger
}

func NewController(logger *log.Logger) *Controller {
	return &Controller{logger: logger.WithPrefix("bot")}
}

// Run plays consecutive bot turns until a human seat is up, the round
// is waiting on a human acknowledgement, or the game ends. maxTurns
// bounds the chain; callers that only need to hand control back to the
// next human pass the seat count.
func (c *Controller) Run(s *game.Session, maxTurns int) error {
	for i := 0; i < maxTurns; i++ {
		if s.Status != game.StatusPlaying {
			return nil
		}
		if s.RoundComplete {
			if !c.startNextRound(s) {
				return nil
			}
			continue
		}
		if !s.CurrentPlayer().IsBot {
			return nil
		}
		if err := c.PlayTurn(s); err != nil {
			return err
		}
	}
	return nil
}

// PlayTurn plays the current seat to the end of its turn if it is a
// bot. Brain mistakes are recovered with a forced draw or discard so a
// bot turn always terminates.
func (c *Controller) PlayTurn(s *game.Session) error {
	p := s.CurrentPlayer()
	if !p.IsBot {
		return nil
	}
	brain := NewBrain(p.Difficulty)

	for i := 0; i < maxActionsPerTurn; i++ {
		if s.RoundComplete || s.Status != game.StatusPlaying || s.CurrentPlayer().ID != p.ID {
			return nil
		}

		req, ok := brain.NextRequest(s, p.ID)
		if !ok {
			req = c.forcedRequest(s, p)
		}
		if _, err := s.Apply(req); err != nil {
			c.logger.Warn("bot move rejected, forcing fallback",
				"player", p.Name, "action", req.Action, "reason", game.ReasonOf(err))
			if _, err := s.Apply(c.forcedRequest(s, p)); err != nil {
				return err
			}
		}
	}
	c.logger.Error("bot exceeded the per-turn action cap, forcing discard", "player", p.Name)
	_, err := s.Apply(c.forcedRequest(s, p))
	return err
}

// forcedRequest is the minimal legal continuation of a turn: draw if
// the seat has not drawn, otherwise discard the first card.
func (c *Controller) forcedRequest(s *game.Session, p *game.Player) game.Request {
	if !p.HasDrawn {
		return game.Request{PlayerID: p.ID, Action: game.ActionDrawDeck}
	}
	return game.Request{PlayerID: p.ID, Action: game.ActionDiscard, CardID: p.Hand[0].ID}
}

// startNextRound deals the next round on a bot host's behalf once every
// seat is ready. Returns false when the deal is still waiting on a
// human.
func (c *Controller) startNextRound(s *game.Session) bool {
	host, err := s.Player(s.HostID)
	if err != nil || !host.IsBot {
		return false
	}
	for _, p := range s.Players {
		if !p.Ready {
			return false
		}
	}
	if _, err := s.Apply(game.Request{PlayerID: host.ID, Action: game.ActionStartNextRound}); err != nil {
		c.logger.Error("bot host could not start the next round", "reason", game.ReasonOf(err))
		return false
	}
	c.logger.Info("bot host dealt the next round", "round", s.Round)
	return true
}
