package study

import (
	"sync"
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// sessionTTL is how long an idle session survives before the sweep drops
// it. Closing the browser tab never reaches the server, so idle time is the
// only end-of-session signal we get.
const sessionTTL = 24 * time.Hour

// Manager is the registry of live study sessions, keyed by an opaque
// session ID handed to the client at start.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      sessionTTL,
		now:      time.Now,
	}
}

// Start registers a new session over the given cards and returns its ID.
func (m *Manager) Start(deckID uint, subject string, cards []models.Card) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.sessions[id] = NewSession(deckID, subject, cards)
	return id, nil
}

// Do runs fn against the named session while holding the registry lock,
// returning false when the session does not exist, has expired, or belongs
// to a different subject. Those three cases are indistinguishable to the
// caller, like deck lookups.
func (m *Manager) Do(id, subject string, fn func(*Session)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Subject != subject {
		return false
	}
	if m.now().Sub(s.lastUsed) > m.ttl {
		delete(m.sessions, id)
		return false
	}
	s.lastUsed = m.now()
	fn(s)
	return true
}

// End discards a session. Ending an unknown or foreign session is a no-op.
func (m *Manager) End(id, subject string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok && s.Subject == subject {
		delete(m.sessions, id)
	}
}

func (m *Manager) sweepLocked() {
	cutoff := m.now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
