// Package random provides seed generation for new games.
//
// Engines are fully deterministic given a seed; only the choice of seed is
// allowed to be unpredictable.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random engine seed using crypto/rand.
func NewSeed() (uint32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint32(b[:]), nil
}

// Resolve returns fixed when the caller asked for a specific seed and a fresh
// seed from gen otherwise. A nil gen uses NewSeed.
func Resolve(fixed uint32, useFixed bool, gen func() (uint32, error)) (uint32, error) {
	if useFixed {
		return fixed, nil
	}
	if gen == nil {
		gen = NewSeed
	}
	return gen()
}
