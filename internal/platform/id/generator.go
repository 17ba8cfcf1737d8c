// Package id issues opaque identifiers for newly created records.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator produces unique identifiers.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator issues random hex identifiers.
type RandomGenerator struct {
	// Bytes controls entropy size. Zero means 16 bytes.
	Bytes int
}

func NewRandomGenerator() RandomGenerator {
	return RandomGenerator{}
}

func (g RandomGenerator) NewID() (string, error) {
	size := g.Bytes
	if size <= 0 {
		size = 16
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
