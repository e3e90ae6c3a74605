package engine

import (
	"fmt"
	"math"
	"math/bits"
)

// LLRand is the low-level generator every piece sequence is drawn from.
// Its output sequence is part of the replay format and must not change.
type LLRand struct {
	a, b, c, d uint32
}

// NewLLRand seeds a generator and discards its first 20 outputs.
func NewLLRand(seed uint32) LLRand {
	r := LLRand{a: 0xF1EA5EED, b: seed, c: seed, d: seed}
	for range 20 {
		r.Next()
	}
	return r
}

// Next returns the next raw 32-bit value.
func (r *LLRand) Next() uint32 {
	e := r.a - bits.RotateLeft32(r.b, 27)
	r.a = r.b ^ bits.RotateLeft32(r.c, 17)
	r.b = r.c + r.d
	r.c = r.d + e
	r.d = r.a + e
	return r.d
}

// InRange returns an unbiased value in [lo, hi).
// It panics if lo > hi, or if the range is empty.
func (r *LLRand) InRange(lo, hi uint32) uint32 {
	if lo > hi {
		panic(fmt.Sprintf("engine: InRange called with lo %d > hi %d", lo, hi))
	}

	span := hi - lo
	if span == 0 {
		panic("engine: InRange called with an empty range")
	}
	limit := math.MaxUint32 - math.MaxUint32%span

	for {
		x := r.Next()
		if x < limit {
			return lo + x%span
		}
	}
}

// Shuffle permutes a in place using Fisher-Yates from the last index down.
func Shuffle[T any](r *LLRand, a []T) {
	for i := len(a) - 1; i >= 0; i-- {
		j := r.InRange(0, uint32(i+1))
		a[i], a[j] = a[j], a[i]
	}
}

// RandomizerKind selects the piece generation strategy.
type RandomizerKind uint8

const (
	// RandomizerSimple draws each piece independently and uniformly.
	RandomizerSimple RandomizerKind = iota

	// RandomizerBag7 deals shuffled bags of all seven pieces.
	RandomizerBag7
)

func (k RandomizerKind) String() string {
	switch k {
	case RandomizerSimple:
		return "simple"
	case RandomizerBag7:
		return "bag7"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k RandomizerKind) MarshalText() ([]byte, error) {
	switch k {
	case RandomizerSimple, RandomizerBag7:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("engine: invalid randomizer %d", k)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RandomizerKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "simple":
		*k = RandomizerSimple
	case "bag7":
		*k = RandomizerBag7
	default:
		return fmt.Errorf("engine: unknown randomizer %q", text)
	}
	return nil
}

// bagBufferSize is the backing storage of the bag; only the first
// PieceTypeCount slots are live.
const bagBufferSize = 35

// Randomizer produces the piece sequence of a game.
type Randomizer struct {
	context LLRand
	kind    RandomizerKind
	buffer  [bagBufferSize]PieceType
	index   int
}

// NewRandomizer takes ownership of context and prepares the first bag.
// The very first bag never starts with S, Z or O.
func NewRandomizer(context LLRand, kind RandomizerKind) *Randomizer {
	r := &Randomizer{context: context, kind: kind}

	if kind == RandomizerBag7 {
		for i := range PieceTypeCount {
			r.buffer[i] = PieceTypeFromInt(i)
		}
		for {
			Shuffle(&r.context, r.buffer[:PieceTypeCount])
			if first := r.buffer[0]; first != PieceS && first != PieceZ && first != PieceO {
				break
			}
		}
	}

	return r
}

// Next returns the next piece in the sequence.
func (r *Randomizer) Next() PieceType {
	switch r.kind {
	case RandomizerBag7:
		p := r.buffer[r.index]
		r.index++
		if r.index >= PieceTypeCount {
			Shuffle(&r.context, r.buffer[:PieceTypeCount])
			r.index = 0
		}
		return p

	default:
		return PieceTypeFromInt(int(r.context.InRange(0, PieceTypeCount)))
	}
}
