// Package control turns held virtual keys into per-tick engine input.
// Drivers report which keys are down each tick; the Controller detects new
// presses and applies delayed auto shift (DAS) to horizontal movement.
package control

import (
	"fmt"
	"math/bits"
	"strings"
)

// Key is a virtual key, abstracted from whatever physical key produced it.
type Key uint16

const (
	KeyUp      Key = 1 << iota // Hard drop
	KeyDown                    // Soft drop
	KeyLeft                    // Shift left
	KeyRight                   // Shift right
	KeyRotL                    // Rotate anticlockwise
	KeyRotR                    // Rotate clockwise
	KeyRotH                    // Rotate 180 degrees
	KeyHold                    // Swap with hold slot
	KeyRestart                 // Restart with the same seed
	KeyQuit                    // Leave the game

	keyCount = iota
)

// AllKeys lists every virtual key in bit order.
var AllKeys = [keyCount]Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyRotL, KeyRotR, KeyRotH, KeyHold, KeyRestart, KeyQuit}

var keyNames = [keyCount]string{"up", "down", "left", "right", "rotl", "rotr", "roth", "hold", "restart", "quit"}

// Keys is a set of virtual keys held during a tick.
type Keys uint16

// Has reports whether k is in the set.
func (ks Keys) Has(k Key) bool {
	return ks&Keys(k) != 0
}

// With returns the set with k added.
func (ks Keys) With(k Key) Keys {
	return ks | Keys(k)
}

// Count returns the number of keys in the set.
func (ks Keys) Count() int {
	return bits.OnesCount16(uint16(ks))
}

// String returns the key names joined by '+', or "none".
func (ks Keys) String() string {
	if ks == 0 {
		return "none"
	}
	var names []string
	for i, k := range AllKeys {
		if ks.Has(k) {
			names = append(names, keyNames[i])
		}
	}
	return strings.Join(names, "+")
}

// String returns the lowercase name used in config and replay files.
func (k Key) String() string {
	for i, kk := range AllKeys {
		if kk == k {
			return keyNames[i]
		}
	}
	return "unknown"
}

// ParseKey resolves a virtual key by name.
func ParseKey(name string) (Key, error) {
	for i, n := range keyNames {
		if n == name {
			return AllKeys[i], nil
		}
	}
	return 0, fmt.Errorf("control: unknown key %q", name)
}

// ParseKeys parses a '+'-joined list of key names as produced by String.
func ParseKeys(s string) (Keys, error) {
	var ks Keys
	if s == "none" || s == "" {
		return ks, nil
	}
	for _, name := range strings.Split(s, "+") {
		k, err := ParseKey(name)
		if err != nil {
			return 0, err
		}
		ks = ks.With(k)
	}
	return ks, nil
}

// MarshalText implements encoding.TextMarshaler.
func (ks Keys) MarshalText() ([]byte, error) {
	return []byte(ks.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ks *Keys) UnmarshalText(text []byte) error {
	parsed, err := ParseKeys(string(text))
	if err != nil {
		return err
	}
	*ks = parsed
	return nil
}
