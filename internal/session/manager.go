package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/ManadaHerath/hexpath/internal/broker"
)

var ErrSessionNotFound = errors.New("session not found")

func GenerateID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "s_" + hex.EncodeToString(b)
}

// Manager keeps the live sessions of the process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	solver Solver
	broker broker.Broker
	opts   Options
}

func NewManager(s Solver, b broker.Broker, opts Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		solver:   s,
		broker:   b,
		opts:     opts,
	}
}

// Create opens a session and loads the solver's grid into it. A failed load
// is not fatal: the session starts from the default board.
func (m *Manager) Create(ctx context.Context) *Session {
	s := New(GenerateID(), m.solver, m.broker, m.opts)
	_ = s.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// Close stops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}
