package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorruptLog is returned by a backend whose persisted log cannot be parsed.
var ErrCorruptLog = errors.New("corrupt history log")

// Backend persists the whole log as one value. Save must replace the
// previous value atomically: a concurrent Load sees either the old or the
// new log, never a mix.
type Backend interface {
	Load() ([]Record, error)
	Save(records []Record) error
	Reset() error
	Close() error
}

// Storage kinds accepted by OpenBackend.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// OpenBackend opens the backend of the given kind inside dataDir.
func OpenBackend(kind, dataDir string) (Backend, error) {
	switch kind {
	case StorageMemory:
		return NewMemoryBackend(), nil
	case StorageSQLite, StorageFile, "":
	default:
		return nil, fmt.Errorf("unknown storage %q", kind)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if kind == StorageFile {
		return NewFileBackend(filepath.Join(dataDir, "history.json")), nil
	}
	return NewSQLiteBackend(filepath.Join(dataDir, "history.db"))
}

// MemoryBackend keeps the encoded log in memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load() ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs, err := decodeLog(m.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	return recs, nil
}

func (m *MemoryBackend) Save(records []Record) error {
	data, err := encodeLog(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Reset() error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}

// unavailableBackend fails every operation with the error that prevented
// the real backend from opening.
type unavailableBackend struct {
	err error
}

// Unavailable returns a backend that always fails with err. A Store built
// on it runs purely in memory and reports every write as non-fatal.
func Unavailable(err error) Backend {
	return unavailableBackend{err: err}
}

func (u unavailableBackend) Load() ([]Record, error) { return nil, u.err }
func (u unavailableBackend) Save([]Record) error     { return u.err }
func (u unavailableBackend) Reset() error            { return u.err }
func (u unavailableBackend) Close() error            { return nil }
