package random

import (
	"errors"
	"testing"
)

func TestNewSeed(t *testing.T) {
	// Two draws colliding has probability 2^-32; treat it as a failure.
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
	if a == b {
		t.Fatalf("NewSeed returned %d twice", a)
	}
}

func TestResolveUsesFixedSeed(t *testing.T) {
	seed, err := Resolve(42, true, func() (uint32, error) {
		t.Fatal("generator called for a fixed seed")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if seed != 42 {
		t.Fatalf("seed = %d, want 42", seed)
	}
}

func TestResolveFixedZero(t *testing.T) {
	seed, err := Resolve(0, true, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if seed != 0 {
		t.Fatalf("seed = %d, want 0", seed)
	}
}

func TestResolveGenerates(t *testing.T) {
	seed, err := Resolve(42, false, func() (uint32, error) { return 7, nil })
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if seed != 7 {
		t.Fatalf("seed = %d, want 7", seed)
	}

	boom := errors.New("boom")
	if _, err := Resolve(0, false, func() (uint32, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("Resolve error = %v, want %v", err, boom)
	}
}
