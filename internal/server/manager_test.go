package server

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carioca/internal/game"
)

func newTestManager(t *testing.T) (*Manager, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	logger := log.New(io.Discard)
	return NewManager(NewMemoryStore(), logger, clock, rand.New(rand.NewSource(1))), clock
}

func TestCreateJoinStart(t *testing.T) {
	m, _ := newTestManager(t)

	snap, err := m.CreateSession("h1", "host", nil)
	require.NoError(t, err)
	assert.Equal(t, game.StatusWaiting, snap.Status)
	assert.Equal(t, "h1", snap.HostID)

	snap, err = m.Join(snap.ID, "p2", "guest")
	require.NoError(t, err)
	require.Len(t, snap.Players, 2)

	// only the host can start
	_, err = m.StartGame(snap.ID, "p2")
	require.Error(t, err)
	assert.Equal(t, game.CodeForbidden, game.CodeOf(err))

	snap, err = m.StartGame(snap.ID, "h1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusPlaying, snap.Status)
	assert.Equal(t, 1, snap.Round)
	for _, p := range snap.Players {
		assert.Len(t, p.Hand, game.HandSize)
	}
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Snapshot("nope")
	require.Error(t, err)
	assert.Equal(t, game.CodeNotFound, game.CodeOf(err))
}

func TestHostOnlyLobbyOperations(t *testing.T) {
	m, _ := newTestManager(t)
	snap, err := m.CreateSession("h1", "host", nil)
	require.NoError(t, err)
	id := snap.ID

	_, err = m.Join(id, "p2", "guest")
	require.NoError(t, err)

	_, err = m.AddBot(id, "p2", "robby", "easy")
	require.Error(t, err)
	assert.Equal(t, game.CodeForbidden, game.CodeOf(err))

	snap, err = m.AddBot(id, "h1", "robby", "hard")
	require.NoError(t, err)
	require.Len(t, snap.Players, 3)
	assert.True(t, snap.Players[2].IsBot)
	assert.Equal(t, game.DifficultyHard, snap.Players[2].Difficulty)

	_, err = m.AddBot(id, "h1", "glitchy", "impossible")
	require.Error(t, err)
	assert.Equal(t, game.CodeIllegalMove, game.CodeOf(err))

	_, err = m.Kick(id, "p2", "h1")
	require.Error(t, err)
	assert.Equal(t, game.CodeForbidden, game.CodeOf(err))

	snap, err = m.Kick(id, "h1", "p2")
	require.NoError(t, err)
	assert.Len(t, snap.Players, 2)

	_, err = m.Reorder(id, "h1", []string{"h1"})
	require.Error(t, err)
	assert.Equal(t, game.CodeConflict, game.CodeOf(err))
}

func TestActionTouchesSession(t *testing.T) {
	m, clock := newTestManager(t)
	snap, err := m.CreateSession("h1", "host", []BotSeat{{Name: "robby", Difficulty: "easy"}})
	require.NoError(t, err)
	id := snap.ID

	snap, err = m.StartGame(id, "h1")
	require.NoError(t, err)
	started := snap.TouchedAt

	clock.Advance(3 * time.Second)

	// the human host opens round 1, seat order h1 then the bot
	cur := snap.Players[snap.TurnIndex]
	require.Equal(t, "h1", cur.ID)
	res, snap, err := m.HandleAction(id, game.Request{PlayerID: "h1", Action: game.ActionDrawDeck})
	require.NoError(t, err)
	assert.Equal(t, game.ActionDrawDeck, res.Action)
	assert.True(t, snap.TouchedAt.After(started), "successful actions bump touchedAt")
}

func TestIllegalActionDoesNotTouch(t *testing.T) {
	m, clock := newTestManager(t)
	snap, err := m.CreateSession("h1", "host", nil)
	require.NoError(t, err)
	id := snap.ID
	_, err = m.Join(id, "p2", "guest")
	require.NoError(t, err)
	snap, err = m.StartGame(id, "h1")
	require.NoError(t, err)
	before := snap.TouchedAt

	clock.Advance(time.Second)

	other := snap.Players[game.NextTurnIndex(snap.TurnIndex, len(snap.Players), snap.Direction)]
	_, _, err = m.HandleAction(id, game.Request{PlayerID: other.ID, Action: game.ActionDrawDeck})
	require.Error(t, err)
	assert.Equal(t, game.CodeForbidden, game.CodeOf(err))

	snap, err = m.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, before, snap.TouchedAt, "rejected actions leave the session untouched")
}

func TestBotsPlayAfterHumanAction(t *testing.T) {
	m, _ := newTestManager(t)
	snap, err := m.CreateSession("h1", "host", []BotSeat{
		{Name: "robby", Difficulty: "medium"},
		{Name: "clanky", Difficulty: "easy"},
	})
	require.NoError(t, err)
	id := snap.ID

	snap, err = m.StartGame(id, "h1")
	require.NoError(t, err)
	require.Equal(t, "h1", snap.Players[snap.TurnIndex].ID)

	_, snap, err = m.HandleAction(id, game.Request{PlayerID: "h1", Action: game.ActionDrawDeck})
	require.NoError(t, err)
	discard := snap.Players[snap.TurnIndex].Hand[0]
	_, snap, err = m.HandleAction(id, game.Request{PlayerID: "h1", Action: game.ActionDiscard, CardID: discard.ID})
	require.NoError(t, err)

	if snap.Status == game.StatusPlaying && !snap.RoundComplete {
		assert.Equal(t, "h1", snap.Players[snap.TurnIndex].ID,
			"both bot seats play out before control returns")
	}
}

func TestDeleteSession(t *testing.T) {
	m, _ := newTestManager(t)
	snap, err := m.CreateSession("h1", "host", nil)
	require.NoError(t, err)

	err = m.DeleteSession(snap.ID, "someone-else")
	require.Error(t, err)
	assert.Equal(t, game.CodeForbidden, game.CodeOf(err))

	require.NoError(t, m.DeleteSession(snap.ID, "h1"))
	_, err = m.Snapshot(snap.ID)
	assert.Equal(t, game.CodeNotFound, game.CodeOf(err))
}
