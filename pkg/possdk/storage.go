package possdk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey is the fixed namespace the session state persists under.
const StorageKey = "auth-storage"

// Storage is the persistence boundary for SessionStore. Implementations
// must be safe for concurrent use.
type Storage interface {
	// Load returns the value stored under key. The second return is false
	// when no value exists.
	Load(key string) ([]byte, bool, error)

	// Save writes the value under key, replacing any previous value.
	Save(key string, value []byte) error

	// Delete removes the value under key. Deleting a missing key is not
	// an error.
	Delete(key string) error
}

// MemoryStorage keeps values in memory. Useful for tests and for callers
// that do not want sessions surviving a restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryStorage) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// FileStorage persists values as JSON files in a directory, one file per
// key. Files are written 0600 since they hold session state.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage creates the directory if needed and returns a storage
// rooted at it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStorage) Load(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileStorage) Save(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return os.WriteFile(f.path(key), value, 0o600)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
