// Package storage persists the single profile record of the client.
// The record is written and cleared as a unit.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"ev-marketplace/internal/models"
)

// ErrCorrupt is returned when the persisted blob cannot be decoded.
var ErrCorrupt = errors.New("storage: persisted profile is corrupt")

// ProfileStore is the one shared profile slot. Load returns (nil, nil)
// when the slot is empty.
type ProfileStore interface {
	Load() (*models.Profile, error)
	Save(p *models.Profile) error
	Clear() error
	Token() (string, error)
}

func encode(p *models.Profile) ([]byte, error) {
	if p == nil {
		return nil, errors.New("storage: nil profile")
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("storage: encode profile: %w", err)
	}
	return b, nil
}

func decode(b []byte) (*models.Profile, error) {
	var p models.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &p, nil
}

// tokenOf reads the token out of whatever Load returns.
func tokenOf(load func() (*models.Profile, error)) (string, error) {
	p, err := load()
	if err != nil || p == nil {
		return "", err
	}
	return p.Token, nil
}
