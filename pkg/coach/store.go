package coach

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists learner settings between runs.
// Only preferences go through a Store; session history stays in memory.
type Store interface {
	// Save persists the given data.
	Save(data []byte) error

	// Load retrieves the stored data. A missing store reads as (nil, nil).
	Load() ([]byte, error)

	// Close releases any resources held by the store.
	Close() error
}

// JSONStore keeps settings in a single JSON file, ~/.parley/settings.json
// by default.
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a store backed by the JSON file at path.
// An empty path disables persistence: saves are dropped and loads return
// nothing.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{FilePath: path}
}

// Save writes data to a temporary file and renames it into place, so an
// interrupted run can never leave a half-written settings file behind.
// Parent directories are created as needed.
func (s *JSONStore) Save(data []byte) error {
	if s.FilePath == "" {
		return nil
	}

	dir := filepath.Dir(s.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close settings file: %w", err)
	}

	if err := os.Rename(tmpName, s.FilePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// Load reads the settings file.
func (s *JSONStore) Load() ([]byte, error) {
	if s.FilePath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // First run, nothing saved yet.
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return data, nil
}

// Close is a no-op for file-backed stores.
func (s *JSONStore) Close() error {
	return nil
}

// Ensure JSONStore implements Store
var _ Store = (*JSONStore)(nil)
