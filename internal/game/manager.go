package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one in-progress play-through, addressable by the play cookie
type Session struct {
	ID       string
	UserID   int64
	Game     string
	Engine   *Engine
	Hints    *HintCache
	Reporter *Reporter

	createdAt time.Time
}

// Manager is the in-memory registry of active game sessions. Sessions live
// at most as long as the game's wall-clock budget plus a grace period; the
// engine's own timer ends abandoned games before the manager evicts them.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager creates a session manager whose entries expire after ttl
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
	go m.evictLoop()
	return m
}

// Create registers a new session and returns it with a fresh ID
func (m *Manager) Create(userID int64, game string, engine *Engine, hints *HintCache, reporter *Reporter) *Session {
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Game:      game,
		Engine:    engine,
		Hints:     hints,
		Reporter:  reporter,
		createdAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// Get returns the session with the given ID, or nil if absent or expired
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil
	}
	if time.Since(session.createdAt) > m.ttl {
		delete(m.sessions, id)
		session.Engine.Timeout()
		return nil
	}
	return session
}

// Remove drops a session from the registry
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		var expired []*Session
		for id, session := range m.sessions {
			if time.Since(session.createdAt) > m.ttl {
				delete(m.sessions, id)
				expired = append(expired, session)
			}
		}
		m.mu.Unlock()

		// End expired games outside the lock; Timeout is a no-op for
		// games that already finished.
		for _, session := range expired {
			session.Engine.Timeout()
		}
	}
}
