package storage

import (
	"sync"

	"ev-marketplace/internal/models"
)

// MemoryStore keeps the encoded profile in memory. It round-trips through
// JSON so it behaves like the persistent stores.
type MemoryStore struct {
	mu   sync.RWMutex
	blob []byte

	// FailWrites makes Save and Clear fail, for exercising rollback paths.
	FailWrites error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blob == nil {
		return nil, nil
	}
	return decode(s.blob)
}

func (s *MemoryStore) Save(p *models.Profile) error {
	b, err := encode(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.blob = b
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.blob = nil
	return nil
}

func (s *MemoryStore) Token() (string, error) {
	return tokenOf(s.Load)
}

// SetRaw stores an arbitrary blob, bypassing encoding.
func (s *MemoryStore) SetRaw(b []byte) {
	s.mu.Lock()
	s.blob = b
	s.mu.Unlock()
}
