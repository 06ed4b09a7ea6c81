package server

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"carioca/internal/bot"
	"carioca/internal/game"
	"carioca/internal/sessionid"
)

// Manager owns every live session. It serializes access per session ID,
// runs bot seats after each human action and writes the session through
// to the store. Host-only operations check the requester against the
// session's host.
type Manager struct {
	store  Store
	logger *log.Logger
	clock  quartz.Clock
	bots   *bot.Controller

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	rng   *rand.Rand
}

func NewManager(store Store, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Manager {
	return &Manager{
		store:  store,
		logger: logger.WithPrefix("manager"),
		clock:  clock,
		bots:   bot.NewController(logger),
		locks:  make(map[string]*sync.Mutex),
		rng:    rng,
	}
}

// CreateSession opens a new lobby with the requester as host and seats
// any bots the config pre-fills.
func (m *Manager) CreateSession(hostID, hostName string, prefill []BotSeat) (game.Snapshot, error) {
	m.mu.Lock()
	id := sessionid.GenerateWithRandSource(m.rng)
	seed := m.rng.Int63()
	m.mu.Unlock()

	host := &game.Player{ID: hostID, Name: hostName}
	s := game.NewSession(id, host, rand.New(rand.NewSource(seed)))
	s.TouchedAt = m.clock.Now()

	for i, seat := range prefill {
		b := &game.Player{
			ID:         fmt.Sprintf("%s-bot-%d", id, i),
			Name:       seat.Name,
			IsBot:      true,
			Difficulty: game.Difficulty(seat.Difficulty),
		}
		if err := s.AddPlayer(b); err != nil {
			return game.Snapshot{}, err
		}
	}

	if err := m.store.Save(s); err != nil {
		return game.Snapshot{}, game.Internalf(err, "saving new session")
	}
	m.logger.Info("session created", "session", id, "host", hostName, "bots", len(prefill))
	return s.Snapshot(), nil
}

// Join seats a human player in a waiting lobby.
func (m *Manager) Join(sessionID, playerID, name string) (game.Snapshot, error) {
	return m.withSession(sessionID, func(s *game.Session) error {
		return s.AddPlayer(&game.Player{ID: playerID, Name: name})
	})
}

// AddBot seats a bot. Host only.
func (m *Manager) AddBot(sessionID, requesterID, name, difficulty string) (game.Snapshot, error) {
	d := game.Difficulty(strings.ToLower(difficulty))
	if d == "" {
		d = game.DifficultyMedium
	}
	if d != game.DifficultyEasy && d != game.DifficultyMedium && d != game.DifficultyHard {
		return game.Snapshot{}, game.IllegalMovef("unknown difficulty %q", difficulty)
	}
	return m.withSession(sessionID, func(s *game.Session) error {
		if err := m.requireHost(s, requesterID); err != nil {
			return err
		}
		return s.AddPlayer(&game.Player{
			ID:         fmt.Sprintf("%s-bot-%d", s.ID, len(s.Players)),
			Name:       name,
			IsBot:      true,
			Difficulty: d,
		})
	})
}

// Kick removes a player from a waiting lobby. Host only.
func (m *Manager) Kick(sessionID, requesterID, targetID string) (game.Snapshot, error) {
	return m.withSession(sessionID, func(s *game.Session) error {
		if err := m.requireHost(s, requesterID); err != nil {
			return err
		}
		if targetID == s.HostID {
			return game.IllegalMovef("the host cannot kick themselves")
		}
		return s.RemovePlayer(targetID)
	})
}

// Reorder rearranges lobby seats. Host only.
func (m *Manager) Reorder(sessionID, requesterID string, order []string) (game.Snapshot, error) {
	return m.withSession(sessionID, func(s *game.Session) error {
		if err := m.requireHost(s, requesterID); err != nil {
			return err
		}
		return s.Reorder(order)
	})
}

// StartGame deals round 1 and lets any leading bot seats play. Host
// only.
func (m *Manager) StartGame(sessionID, requesterID string) (game.Snapshot, error) {
	return m.withSession(sessionID, func(s *game.Session) error {
		if err := m.requireHost(s, requesterID); err != nil {
			return err
		}
		if err := s.Start(); err != nil {
			return err
		}
		m.logger.Info("game started", "session", s.ID, "players", len(s.Players))
		return m.bots.Run(s, len(s.Players))
	})
}

// HandleAction applies one engine action and then runs bot seats until
// a human is up again.
func (m *Manager) HandleAction(sessionID string, req game.Request) (*game.Result, game.Snapshot, error) {
	var res *game.Result
	snap, err := m.withSession(sessionID, func(s *game.Session) error {
		var applyErr error
		res, applyErr = s.Apply(req)
		if applyErr != nil {
			return applyErr
		}
		m.logger.Debug("action applied",
			"session", s.ID, "player", req.PlayerID, "action", req.Action)
		return m.bots.Run(s, len(s.Players))
	})
	if err != nil {
		return nil, game.Snapshot{}, err
	}
	return res, snap, nil
}

// Snapshot returns the current session state for polling clients.
func (m *Manager) Snapshot(sessionID string) (game.Snapshot, error) {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	s, err := m.store.Load(sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// DeleteSession tears a session down. Host only.
func (m *Manager) DeleteSession(sessionID, requesterID string) error {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	s, err := m.store.Load(sessionID)
	if err != nil {
		return err
	}
	if err := m.requireHost(s, requesterID); err != nil {
		return err
	}
	if err := m.store.Delete(sessionID); err != nil {
		return game.Internalf(err, "deleting session %s", sessionID)
	}
	m.logger.Info("session deleted", "session", sessionID)
	return nil
}

// withSession runs fn against the loaded session under its lock, then
// touches and persists it. The session is only saved when fn succeeds;
// the engine guarantees failed actions leave no partial mutation.
func (m *Manager) withSession(sessionID string, fn func(*game.Session) error) (game.Snapshot, error) {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	s, err := m.store.Load(sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := fn(s); err != nil {
		return game.Snapshot{}, err
	}
	s.TouchedAt = m.clock.Now()
	if err := m.store.Save(s); err != nil {
		return game.Snapshot{}, game.Internalf(err, "saving session %s", sessionID)
	}
	return s.Snapshot(), nil
}

func (m *Manager) requireHost(s *game.Session, requesterID string) error {
	if s.HostID != requesterID {
		return game.Forbiddenf("only the host can do that")
	}
	return nil
}

func (m *Manager) sessionLock(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}
