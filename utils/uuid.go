package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new random identifier in canonical UUID form.
func GenerateID() string {
	return uuid.NewString()
}
