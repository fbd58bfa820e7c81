package draw

import (
	"math"
	"math/rand/v2"
)

// Seeded is a pseudo-random driver that never runs dry. Two drivers built
// from the same seed produce the same draw sequence.
type Seeded struct {
	rng  *rand.Rand
	seed uint64
}

// NewSeeded returns a PCG-backed driver for seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the seed the driver was built from.
func (s *Seeded) Seed() uint64 {
	return s.seed
}

func (s *Seeded) Uint64(lo, hi uint64) (uint64, error) {
	if lo == 0 && hi == math.MaxUint64 {
		return s.rng.Uint64(), nil
	}
	return lo + s.rng.Uint64N(hi-lo+1), nil
}

func (s *Seeded) Bool() (bool, error) {
	return s.rng.Uint64()&1 == 1, nil
}
