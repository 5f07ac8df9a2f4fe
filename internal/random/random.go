// Package random provides the random sources that drive story rolls.
//
// Every roll in the story goes through a Source so that play is reproducible
// from a seed and tests can script the exact sequence of outcomes.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// Roll performs one Bernoulli draw: true when the next value is below p.
func Roll(src Source, p float64) bool {
	return src.Float64() < p
}

// Seeded is a deterministic Source backed by a PCG generator.
type Seeded struct {
	seed  int64
	rng   *rand.Rand
	draws int
}

// NewSeeded creates a Source whose sequence depends only on seed.
func NewSeeded(seed int64) *Seeded {
	// Non-cryptographic PRNG is intentional for deterministic play.
	// #nosec G404
	rng := rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
	return &Seeded{seed: seed, rng: rng}
}

// Float64 returns the next value in [0, 1).
func (s *Seeded) Float64() float64 {
	s.draws++
	return s.rng.Float64()
}

// Draws returns how many values have been consumed.
func (s *Seeded) Draws() int {
	return s.draws
}

// Skip discards the next n values. Restoring a saved session replays its
// draw count so the sequence continues where it stopped.
func (s *Seeded) Skip(n int) {
	for i := 0; i < n; i++ {
		s.Float64()
	}
}

// Seed returns the seed the source was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// NewSeed generates a fresh non-zero seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("random: read seed: %w", err)
	}

	seed := int64(binary.LittleEndian.Uint64(b[:]))
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
