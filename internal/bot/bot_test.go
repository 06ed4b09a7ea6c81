package bot

import (
	"fmt"
	"io"
	"math/rand"
	"testing"

	"carioca/internal/deck"
	"carioca/internal/game"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBotSession(t *testing.T, seed int64, difficulties ...game.Difficulty) *game.Session {
	t.Helper()
	host := &game.Player{ID: "b0", Name: "bot-0", IsBot: true, Difficulty: difficulties[0]}
	s := game.NewSession("sim", host, rand.New(rand.NewSource(seed)))
	for i, d := range difficulties[1:] {
		require.NoError(t, s.AddPlayer(&game.Player{
			ID: fmt.Sprintf("b%d", i+1), Name: fmt.Sprintf("bot-%d", i+1), IsBot: true, Difficulty: d,
		}))
	}
	require.NoError(t, s.Start())
	return s
}

func quietController() *Controller {
	return NewController(log.New(io.Discard))
}

func TestBotTurnEndsInDiscard(t *testing.T) {
	s := newBotSession(t, 1, game.DifficultyEasy, game.DifficultyEasy, game.DifficultyEasy)
	c := quietController()

	before := s.TurnIndex
	require.NoError(t, c.PlayTurn(s))
	assert.NotEqual(t, before, s.TurnIndex, "a bot turn always ends with a discard")
	assert.False(t, s.Players[before].HasDrawn)
}

func TestRunStopsAtHumanSeat(t *testing.T) {
	host := &game.Player{ID: "b0", Name: "bot-0", IsBot: true, Difficulty: game.DifficultyMedium}
	s := game.NewSession("mix", host, rand.New(rand.NewSource(2)))
	require.NoError(t, s.AddPlayer(&game.Player{ID: "h1", Name: "human-1"}))
	require.NoError(t, s.AddPlayer(&game.Player{ID: "b2", Name: "bot-2", IsBot: true, Difficulty: game.DifficultyEasy}))
	require.NoError(t, s.Start())

	require.NoError(t, quietController().Run(s, len(s.Players)))
	if s.Status == game.StatusPlaying && !s.RoundComplete {
		assert.False(t, s.CurrentPlayer().IsBot, "control returns once a human seat is up")
	}
}

func TestRunPreservesCardConservation(t *testing.T) {
	s := newBotSession(t, 3, game.DifficultyHard, game.DifficultyMedium, game.DifficultyEasy)
	c := quietController()

	for i := 0; i < 50 && s.Status == game.StatusPlaying; i++ {
		require.NoError(t, c.Run(s, len(s.Players)))
		if !s.RoundComplete {
			assert.Equal(t, deck.TotalCards, countCards(s), "deck, discard, hands and melds stay a full shoe")
		}
	}
}

func TestBrainAlwaysProducesALegalishRequest(t *testing.T) {
	s := newBotSession(t, 4, game.DifficultyHard, game.DifficultyHard)
	brain := NewBrain(game.DifficultyHard)
	p := s.CurrentPlayer()

	req, ok := brain.NextRequest(s, p.ID)
	require.True(t, ok)
	assert.Contains(t, []game.ActionType{
		game.ActionDrawDeck, game.ActionDrawDiscard, game.ActionIntendDrawDiscard,
	}, req.Action, "a turn opens with a draw")
}

func TestNewBrainTiers(t *testing.T) {
	easy, ok := NewBrain(game.DifficultyEasy).(*greedyBrain)
	require.True(t, ok)
	assert.False(t, easy.smartDraw)
	assert.False(t, easy.stealsJokers)

	medium := NewBrain(game.DifficultyMedium).(*greedyBrain)
	assert.True(t, medium.smartDraw)
	assert.False(t, medium.stealsJokers)

	hard := NewBrain(game.DifficultyHard).(*greedyBrain)
	assert.True(t, hard.stealsJokers)
	assert.True(t, hard.buys)

	fallback := NewBrain("").(*greedyBrain)
	assert.False(t, fallback.smartDraw)
}

func TestValueDistance(t *testing.T) {
	assert.Equal(t, 1, valueDistance(1, 13), "ace and king are cyclic neighbours")
	assert.Equal(t, 1, valueDistance(4, 5))
	assert.Equal(t, 6, valueDistance(1, 7))
}

func countCards(s *game.Session) int {
	n := s.Deck.Remaining() + len(s.DiscardPile)
	for _, p := range s.Players {
		n += len(p.Hand)
		for _, m := range p.Melds {
			n += len(m.Cards)
		}
	}
	return n
}
