// Package entropy provides the random source driving the simulation.
// All stochastic decisions draw from a Source passed in explicitly, so a run
// is reproducible from its seed. Seeds can fall back to crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Source supplies the random draws a simulation consumes.
type Source interface {
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
	// Choice returns index i with probability weights[i]/sum(weights).
	Choice(weights []float64) int
	// Perm returns a uniform random permutation of [0, n).
	Perm(n int) []int
	// Int63 returns a non-negative int64, used to derive sub-seeds.
	Int63() int64
}

// Rand is a seeded Source backed by math/rand.
type Rand struct {
	seed int64
	rng  *mrand.Rand
}

// NewRand creates a Source from seed. A zero seed draws one from crypto/rand.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = CryptoSeed()
	}
	return &Rand{
		seed: seed,
		rng:  mrand.New(mrand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// Float64 returns a uniform float64 in [0, 1).
func (r *Rand) Float64() float64 {
	return r.rng.Float64()
}

// Choice draws an index from weights. Negative weights count as zero.
// Returns the last positive-weight index if rounding leaves the draw unmatched,
// and 0 when every weight is zero.
func (r *Rand) Choice(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return 0
	}

	target := r.rng.Float64() * total
	last := 0
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if target < acc {
			return i
		}
	}
	return last
}

// Perm returns a uniform random permutation of [0, n).
func (r *Rand) Perm(n int) []int {
	return r.rng.Perm(n)
}

// Int63 returns a non-negative int64.
func (r *Rand) Int63() int64 {
	return r.rng.Int63()
}

// CryptoSeed returns a non-zero seed read from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to a fixed seed.
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		return 1
	}
	return seed
}
