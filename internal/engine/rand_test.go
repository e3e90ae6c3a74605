package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLLRandInRange(t *testing.T) {
	r := NewLLRand(0)
	got := make([]uint32, 10)
	for i := range got {
		got[i] = r.InRange(0, PieceTypeCount)
	}

	want := []uint32{5, 1, 1, 5, 5, 4, 4, 1, 0, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InRange(0, 7) sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestLLRandShuffle(t *testing.T) {
	r := NewLLRand(0)
	got := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(&r, got)

	want := []int{7, 8, 0, 4, 9, 2, 5, 6, 3, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Shuffle() mismatch (-want +got):\n%s", diff)
	}
}

func TestLLRandInRangePanics(t *testing.T) {
	tests := []struct {
		desc   string
		lo, hi uint32
	}{
		{desc: "lo above hi", lo: 5, hi: 4},
		{desc: "empty range", lo: 3, hi: 3},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("InRange(%d, %d) did not panic", test.lo, test.hi)
				}
			}()
			r := NewLLRand(0)
			r.InRange(test.lo, test.hi)
		})
	}
}

func TestSimpleRandomizerSequence(t *testing.T) {
	r := NewRandomizer(NewLLRand(0), RandomizerSimple)
	got := make([]PieceType, 10)
	for i := range got {
		got[i] = r.Next()
	}

	want := []PieceType{PieceT, PieceJ, PieceJ, PieceT, PieceT, PieceS, PieceS, PieceJ, PieceI, PieceS}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Simple sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestBag7EveryBagHasAllPieces(t *testing.T) {
	for seed := range uint32(100) {
		r := NewRandomizer(NewLLRand(seed), RandomizerBag7)
		for bag := range 5 {
			sum := 0
			var seen [PieceTypeCount]bool
			for range PieceTypeCount {
				p := r.Next()
				sum += int(p)
				seen[p] = true
			}
			if sum != 21 {
				t.Errorf("seed %d bag %d: ordinal sum = %d, want 21", seed, bag, sum)
			}
			for p, ok := range seen {
				if !ok {
					t.Errorf("seed %d bag %d: missing %v", seed, bag, PieceType(p))
				}
			}
		}
	}
}

func TestBag7FirstPiece(t *testing.T) {
	for seed := range uint32(1000) {
		r := NewRandomizer(NewLLRand(seed), RandomizerBag7)
		switch first := r.Next(); first {
		case PieceS, PieceZ, PieceO:
			t.Fatalf("seed %d: first piece is %v", seed, first)
		}
	}
}

func TestBag7LaterBagsUnrestricted(t *testing.T) {
	r := NewRandomizer(NewLLRand(1), RandomizerBag7)
	for range PieceTypeCount {
		r.Next()
	}
	if got := r.Next(); got != PieceZ {
		t.Errorf("seed 1: second bag starts with %v, want %v", got, PieceZ)
	}
}

func TestRandomizerKindText(t *testing.T) {
	for _, kind := range []RandomizerKind{RandomizerSimple, RandomizerBag7} {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", kind, err)
		}
		var got RandomizerKind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if got != kind {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, kind)
		}
	}

	var k RandomizerKind
	if err := k.UnmarshalText([]byte("tgm3")); err == nil {
		t.Error("UnmarshalText(tgm3) should fail")
	}
}

func TestPieceTypeFromIntPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PieceTypeFromInt(7) did not panic")
		}
	}()
	PieceTypeFromInt(PieceTypeCount)
}

func TestParsePieceType(t *testing.T) {
	for _, p := range PieceTypes {
		got, err := ParsePieceType(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePieceType(%q) = %v, %v", p.String(), got, err)
		}
	}
	if got, err := ParsePieceType("t"); err != nil || got != PieceT {
		t.Errorf("ParsePieceType(t) = %v, %v", got, err)
	}
	if _, err := ParsePieceType("X"); err == nil {
		t.Error("ParsePieceType(X) should fail")
	}
}
