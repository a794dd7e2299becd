package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores the encoded log in a JSON file. Writes go to a
// temporary file in the same directory which is then renamed over the
// target, so readers never see a partial file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend persisting to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) Load() ([]Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	recs, err := decodeLog(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	return recs, nil
}

func (f *FileBackend) Save(records []Record) error {
	data, err := encodeLog(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing history file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

func (f *FileBackend) Reset() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}

func (f *FileBackend) Close() error {
	return nil
}
