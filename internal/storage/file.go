package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ev-marketplace/internal/models"
)

// FileStore keeps the profile as one JSON file.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the profile, or returns nil when no file exists.
func (s *FileStore) Load() (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}
	return decode(b)
}

// Save replaces the file atomically: a reader sees the old or the new
// record, never a partial one.
func (s *FileStore) Save(p *models.Profile) error {
	b, err := encode(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("storage: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".profile-*")
	if err != nil {
		return fmt.Errorf("storage: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write profile: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: chmod profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: replace profile: %w", err)
	}
	return nil
}

// Clear removes the file. Clearing an empty slot is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", s.path, err)
	}
	return nil
}

// Token returns the bearer token of the stored profile, if any.
func (s *FileStore) Token() (string, error) {
	return tokenOf(s.Load)
}
