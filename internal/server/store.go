package server

import (
	"sync"

	"carioca/internal/game"
)

// Store persists sessions between actions. The engine mutates a session
// in memory and the manager writes it back whole, so implementations
// only need last-writer-wins semantics per session ID.
type Store interface {
	Load(id string) (*game.Session, error)
	Save(s *game.Session) error
	Delete(id string) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*game.Session)}
}

func (m *MemoryStore) Load(id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, game.NotFoundf("session %s does not exist", id)
	}
	return s, nil
}

func (m *MemoryStore) Save(s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
