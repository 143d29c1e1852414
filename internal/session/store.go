package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a single opaque session value.
//
// Load returns nil with no error when nothing is stored.
type Store interface {
	Load() ([]byte, error)
	Save(value []byte) error
	Clear() error
}

// MemoryStore keeps the session in memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	value []byte
}

// NewMemoryStore returns a store seeded with value, which may be nil.
func NewMemoryStore(value []byte) *MemoryStore {
	return &MemoryStore{value: value}
}

func (m *MemoryStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.value == nil {
		return nil, nil
	}
	return append([]byte(nil), m.value...), nil
}

func (m *MemoryStore) Save(value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = nil
	return nil
}

// FileStore keeps the session in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. An empty path resolves to session.json under the user config dir.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "showtime", "session.json")
	}
	return &FileStore{path: path}, nil
}

// Path returns the file backing the store.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	return data, nil
}

// Save replaces the file atomically via rename.
func (f *FileStore) Save(value []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
