package game

import (
	"fmt"
	"math/rand"
	"time"

	"carioca/internal/deck"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusPlaying  Status = "PLAYING"
	StatusFinished Status = "FINISHED"
)

// Direction is the turn rotation around the table.
type Direction string

const (
	Clockwise        Direction = "clockwise"
	CounterClockwise Direction = "counter-clockwise"
)

// Step is the signed seat increment for the direction.
func (d Direction) Step() int {
	if d == CounterClockwise {
		return -1
	}
	return 1
}

// HandSize is the number of cards dealt to each player at a round start.
const HandSize = 11

// MinPlayers is the smallest table a session will start with.
const MinPlayers = 2

// MaxPlayers is bounded by the two-deck composition: a fifth 11-card
// hand would leave too thin a deck to play a round out.
const MaxPlayers = 4

// Session is the authoritative per-room game aggregate. It is mutated
// one action at a time; callers serialize access per session.
type Session struct {
	ID        string    `json:"id"`
	HostID    string    `json:"hostId"`
	Status    Status    `json:"status"`
	Players   []*Player `json:"players"`
	Round     int       `json:"round"`
	TurnIndex int       `json:"turnIndex"`
	Direction Direction `json:"direction"`

	Deck        *deck.Deck  `json:"-"`
	DiscardPile []deck.Card `json:"discardPile"`

	// PendingBuys holds player IDs bidding on the current top discard;
	// PendingDiscardBuys holds bids placed during the action phase,
	// rolled over to the next discard.
	PendingBuys        []string `json:"pendingBuys"`
	PendingDiscardBuys []string `json:"pendingDiscardBuys"`

	ReshuffleCount int    `json:"reshuffleCount"`
	RoundComplete  bool   `json:"roundComplete"`
	LastAction     string `json:"lastAction"`

	// TouchedAt is bumped by the manager on every successful mutation so
	// polling clients can cheaply detect staleness.
	TouchedAt time.Time `json:"touchedAt"`

	rng *rand.Rand
}

// NewSession creates a lobby with the host as its first player.
func NewSession(id string, host *Player, rng *rand.Rand) *Session {
	host.TurnOrder = 0
	return &Session{
		ID:        id,
		HostID:    host.ID,
		Status:    StatusWaiting,
		Players:   []*Player{host},
		Direction: Clockwise,
		rng:       rng,
	}
}

// Player returns the seat with the given ID.
func (s *Session) Player(playerID string) (*Player, error) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, NotFoundf("player %s is not in session %s", playerID, s.ID)
}

// CurrentPlayer returns the seat whose turn it is.
func (s *Session) CurrentPlayer() *Player {
	return s.Players[s.TurnIndex]
}

// AddPlayer seats a new player while the lobby is open.
func (s *Session) AddPlayer(p *Player) error {
	if s.Status != StatusWaiting {
		return IllegalMovef("session %s has already started", s.ID)
	}
	if len(s.Players) >= MaxPlayers {
		return IllegalMovef("session %s is full", s.ID)
	}
	if _, err := s.Player(p.ID); err == nil {
		return Conflictf("player %s already seated", p.ID)
	}
	p.TurnOrder = len(s.Players)
	s.Players = append(s.Players, p)
	return nil
}

// RemovePlayer unseats a player. Only legal while WAITING; mid-game
// departures would break the card conservation invariant.
func (s *Session) RemovePlayer(playerID string) error {
	if s.Status != StatusWaiting {
		return IllegalMovef("players can only leave before the game starts")
	}
	for i, p := range s.Players {
		if p.ID == playerID {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			s.reindexSeats()
			return nil
		}
	}
	return NotFoundf("player %s is not in session %s", playerID, s.ID)
}

// Reorder rearranges the seats to the given player ID order. The
// payload must be a permutation of the current player set.
func (s *Session) Reorder(playerIDs []string) error {
	if s.Status != StatusWaiting {
		return IllegalMovef("seats can only be reordered before the game starts")
	}
	if len(playerIDs) != len(s.Players) {
		return Conflictf("reorder lists %d players, session has %d", len(playerIDs), len(s.Players))
	}
	reordered := make([]*Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, err := s.Player(id)
		if err != nil {
			return Conflictf("reorder references unknown player %s", id)
		}
		for _, r := range reordered {
			if r.ID == id {
				return Conflictf("reorder lists player %s twice", id)
			}
		}
		reordered = append(reordered, p)
	}
	s.Players = reordered
	s.reindexSeats()
	return nil
}

// Start deals round 1 and begins play.
func (s *Session) Start() error {
	if s.Status != StatusWaiting {
		return IllegalMovef("session %s has already started", s.ID)
	}
	if len(s.Players) < MinPlayers {
		return IllegalMovef("need at least %d players, have %d", MinPlayers, len(s.Players))
	}
	s.Status = StatusPlaying
	s.Round = 1
	s.dealRound()
	return nil
}

// NextTurnIndex is the direction-aware successor seat.
func NextTurnIndex(current, numPlayers int, direction Direction) int {
	return (current + direction.Step() + numPlayers) % numPlayers
}

func (s *Session) reindexSeats() {
	for i, p := range s.Players {
		p.TurnOrder = i
	}
}

// dealRound builds a fresh shuffled shoe, deals every seat its hand and
// seeds the discard pile. The opening seat rotates each round.
func (s *Session) dealRound() {
	s.Deck = deck.New(s.rng)
	s.Deck.Shuffle()
	s.DiscardPile = nil
	s.PendingBuys = nil
	s.PendingDiscardBuys = nil
	s.RoundComplete = false

	for _, p := range s.Players {
		p.resetForRound()
		p.Hand = s.Deck.DrawN(HandSize)
	}
	if seed, ok := s.Deck.Draw(); ok {
		s.DiscardPile = append(s.DiscardPile, seed)
	}
	s.TurnIndex = (s.Round - 1) % len(s.Players)
}

// drawFromDeck pops the deck, reshuffling the discard pile under the
// top card when the deck runs dry.
func (s *Session) drawFromDeck() (deck.Card, error) {
	if s.Deck.IsEmpty() && len(s.DiscardPile) > 1 {
		top := s.DiscardPile[len(s.DiscardPile)-1]
		s.Deck.Replenish(s.DiscardPile[:len(s.DiscardPile)-1])
		s.DiscardPile = []deck.Card{top}
		s.ReshuffleCount++
	}
	card, ok := s.Deck.Draw()
	if !ok {
		return deck.Card{}, IllegalMovef("no cards left to draw")
	}
	return card, nil
}

// topDiscard returns the top of the discard pile.
func (s *Session) topDiscard() (deck.Card, bool) {
	if len(s.DiscardPile) == 0 {
		return deck.Card{}, false
	}
	return s.DiscardPile[len(s.DiscardPile)-1], true
}

func (s *Session) popDiscard() (deck.Card, bool) {
	card, ok := s.topDiscard()
	if !ok {
		return deck.Card{}, false
	}
	s.DiscardPile = s.DiscardPile[:len(s.DiscardPile)-1]
	return card, true
}

func (s *Session) seatIndex(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (s *Session) String() string {
	return fmt.Sprintf("session %s round %d turn %d (%s)", s.ID, s.Round, s.TurnIndex, s.Status)
}
