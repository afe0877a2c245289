package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"codeberg.org/policydesk/server/internal/assistant"
)

// represents one user's conversation with the assistant
type Session struct {
	ID                  string
	ConversationHistory []assistant.Message
	LastActivity        time.Time
	ExpiresAt           time.Time
}

// manages conversation sessions in memory
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
}

// returns a new session manager
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	// start cleanup goroutine
	go m.cleanupExpiredSessions()

	return m
}

// returns a new random session ID
func GenerateSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// creates a new session with empty history
func (m *Manager) CreateSession() (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:                  id,
		ConversationHistory: []assistant.Message{},
		LastActivity:        now,
		ExpiresAt:           now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	return session, nil
}

// retrieves a snapshot of a session by ID; the returned history is a copy,
// so callers can read and append without holding the manager's lock
func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, false
	}

	snapshot := *session
	snapshot.ConversationHistory = append([]assistant.Message(nil), session.ConversationHistory...)

	return &snapshot, true
}

// replaces a session's conversation history and extends its lifetime
func (m *Manager) UpdateSession(sessionID string, history []assistant.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		delete(m.sessions, sessionID)
		return ErrSessionExpired
	}

	now := time.Now()
	session.ConversationHistory = append([]assistant.Message(nil), history...)
	session.LastActivity = now
	session.ExpiresAt = now.Add(m.ttl)

	return nil
}

// clears a session's conversation history, keeping the session alive
func (m *Manager) ResetSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	now := time.Now()
	session.ConversationHistory = []assistant.Message{}
	session.LastActivity = now
	session.ExpiresAt = now.Add(m.ttl)

	return nil
}

// removes a session
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// runs periodically to remove expired sessions
func (m *Manager) cleanupExpiredSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()

		for id, session := range m.sessions {
			if now.After(session.ExpiresAt) {
				delete(m.sessions, id)
			}
		}

		m.mu.Unlock()
	}
}

// returns the number of active sessions
func (m *Manager) GetSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
