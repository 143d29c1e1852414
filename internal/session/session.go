// package session holds the authenticated identity and keeps it in sync with durable storage
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/showtime/internal/models"
)

// ErrNoUserID is returned by [Manager.Login] for an identity that [Manager.Restore] would discard.
var ErrNoUserID = errors.New("identity has no user id")

// Manager owns the in-memory identity. Every change is written to the [Store] before memory is updated.
type Manager struct {
	store  Store
	logger *log.Logger

	mu       sync.RWMutex
	identity *models.Identity
}

// NewManager creates a Manager over store. A nil logger discards output.
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{store: store, logger: logger}
}

// Login persists identity, then makes it current.
//
// An identity without a user id is rejected with [ErrNoUserID]. When persisting fails the in-memory
// state is left unchanged.
func (m *Manager) Login(identity models.Identity) error {
	if !Valid(identity) {
		return ErrNoUserID
	}
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := m.store.Save(data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.identity = &identity
	m.mu.Unlock()

	m.logger.Debug("session started", "user", identity.UserID)
	return nil
}

// Logout clears the store and memory. Memory is cleared even when the store fails.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.identity = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.logger.Debug("session cleared")
	return nil
}

// Restore loads the persisted identity, if any.
//
// A value that cannot be parsed, or one without a user id, is treated as logged out: it is removed from the store
// and a warning is logged. Only store read failures are returned.
func (m *Manager) Restore() error {
	data, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	identity, ok := m.parse(data)

	m.mu.Lock()
	m.identity = identity
	m.mu.Unlock()

	if !ok {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("failed to discard unreadable session", "err", err)
		}
	}
	return nil
}

func (m *Manager) parse(data []byte) (*models.Identity, bool) {
	if len(data) == 0 {
		return nil, true
	}

	var identity *models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		m.logger.Warn("discarding unreadable session", "err", err)
		return nil, false
	}
	if identity == nil || !Valid(*identity) {
		m.logger.Warn("discarding session without a user id")
		return nil, false
	}
	return identity, true
}

// Valid reports whether identity can start a session.
func Valid(identity models.Identity) bool {
	return identity.UserID != ""
}

// Current returns a copy of the identity and whether one is set.
func (m *Manager) Current() (models.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return models.Identity{}, false
	}
	return *m.identity, true
}

// Authenticated reports whether an identity is set. Presence is the only check.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity != nil
}
