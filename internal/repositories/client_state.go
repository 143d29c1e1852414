package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// SessionKey is the client_state key holding the persisted identity.
const SessionKey = "user"

// ClientStateRepository is a small key-value table for durable client state.
type ClientStateRepository struct {
	db *sql.DB
}

// NewClientStateRepository creates a new ClientStateRepository with the given database connection
func NewClientStateRepository(db *sql.DB) *ClientStateRepository {
	return &ClientStateRepository{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (r *ClientStateRepository) Get(key string) (value []byte, ok bool, err error) {
	err = r.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (r *ClientStateRepository) Put(key string, value []byte) error {
	query := `
		INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, key, value, now()); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *ClientStateRepository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Bind returns a single-key view with Load/Save/Clear, usable as a session store.
func (r *ClientStateRepository) Bind(key string) *KeyStore {
	return &KeyStore{repo: r, key: key}
}

// KeyStore is a [ClientStateRepository] bound to one key.
type KeyStore struct {
	repo *ClientStateRepository
	key  string
}

// Load returns nil with no error when nothing is stored.
func (s *KeyStore) Load() ([]byte, error) {
	v, _, err := s.repo.Get(s.key)
	return v, err
}

func (s *KeyStore) Save(value []byte) error { return s.repo.Put(s.key, value) }

func (s *KeyStore) Clear() error { return s.repo.Delete(s.key) }
