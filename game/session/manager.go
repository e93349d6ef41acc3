package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// Manager handles game session lifecycle. Session ids are short (4 hex
// characters) and matched case-insensitively.
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a session manager backed by storage
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new session playing the given catalog. An empty id
// gets a generated one.
func (m *Manager) Create(id string, catalog *engine.Catalog, catalogName string) (*service.Session, error) {
	if id == "" {
		id = m.generateSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		CatalogName:    catalogName,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[strings.ToLower(id)] = session

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			// Persistence failures never fail gameplay.
			log.Printf("[SESSION] Warning: failed to persist session %s: %v", id, err)
		}
	}

	return session, nil
}

// Get retrieves a session by ID (case-insensitive), falling back to
// persisted storage for sessions not in memory.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		session, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		m.sessions[strings.ToLower(id)] = session
		m.mu.Unlock()

		return session, nil
	}

	return nil, ErrSessionNotFound
}

// LoadPersistedSessions loads every persisted session into memory. Intended
// for startup, so List reflects sessions from previous runs. Individual load
// failures are logged and skipped.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	loaded := 0
	for _, id := range ids {
		m.mu.RLock()
		_, exists := m.sessions[strings.ToLower(id)]
		m.mu.RUnlock()
		if exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("[SESSION] Warning: failed to load persisted session %s: %v", id, err)
			continue
		}

		m.mu.Lock()
		m.sessions[strings.ToLower(id)] = session
		m.mu.Unlock()
		loaded++
	}

	if loaded > 0 {
		log.Printf("[SESSION] Loaded %d persisted sessions", loaded)
	}
	return nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Delete removes a session from memory and storage
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	_, inMemory := m.sessions[lowerID]
	delete(m.sessions, lowerID)

	inStorage := false
	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		inStorage = true
	}

	if !inMemory && !inStorage {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory drops a session from memory without touching storage.
// Used by the filesystem sync loop when the backing file disappears.
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed refreshes a session's access time
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	return nil
}

// Save persists a specific session. A manager without persistence treats
// this as a no-op.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()

	if !exists {
		return ErrSessionNotFound
	}

	if err := m.persistence.Save(session); err != nil {
		log.Printf("[SESSION] Warning: failed to persist session %s: %v", id, err)
		return err
	}
	return nil
}

// SaveAllSessions persists every in-memory session. Individual failures are
// logged and counted rather than aborting the sweep.
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	failed := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			log.Printf("[SESSION] Warning: failed to persist session %s: %v", session.ID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to save %d of %d sessions", failed, len(sessions))
	}
	return nil
}

// CleanupExpiredSessions removes sessions unused for longer than maxAge
// from memory. Persisted copies stay on disk and can be reloaded.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID generates a random 4-character session ID
func (m *Manager) generateSessionID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
