// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package priority provides deterministic sources of treap node priorities.
//
// A treap only stays balanced in expectation when the priority assigned to
// each key is unrelated to the key itself.  None of the sources here look at
// the keys at all.  All of them are fully determined by their seed, so a run
// can be replayed exactly by constructing the same source with the same seed.
package priority

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Source is the interface that supplies a priority for every inserted key.
type Source interface {
	// Priority returns the next priority in the sequence.
	Priority() uint32
}

const (
	// lcgMultiplier, lcgIncrement and lcgModulus define the linear
	// congruential generator seed' = (lcgMultiplier*seed + lcgIncrement)
	// mod lcgModulus.
	lcgMultiplier = 1366
	lcgIncrement  = 150889
	lcgModulus    = 714025

	// DefaultLCGSeed is the seed the LCG starts from when none is given.
	DefaultLCGSeed = 0x114514 % lcgModulus
)

// Names of the supported sources as accepted by FromName.
const (
	NameLCG  = "lcg"
	NameHash = "hash"
	NameRand = "rand"
)

// LCG is a linear congruential generator.  Its entire state is the current
// seed, which is always in [0, 714025).  The generated priorities cover the
// same range.
type LCG struct {
	seed int64
}

// NewLCG returns a generator starting at the passed seed reduced modulo the
// generator modulus.
func NewLCG(seed int64) *LCG {
	seed %= lcgModulus
	if seed < 0 {
		seed += lcgModulus
	}
	return &LCG{seed: seed}
}

// Priority advances the generator and returns the new state.
//
// This is part of the Source interface.
func (g *LCG) Priority() uint32 {
	g.seed = (lcgMultiplier*g.seed + lcgIncrement) % lcgModulus
	return uint32(g.seed)
}

// Seed returns the current state of the generator.
func (g *LCG) Seed() int64 {
	return g.seed
}

// Hash derives priorities from the double SHA-256 digest of the seed followed
// by a counter that is incremented for every priority.
type Hash struct {
	seed    int64
	counter uint64
}

// NewHash returns a hash based source for the passed seed.
func NewHash(seed int64) *Hash {
	return &Hash{seed: seed}
}

// Priority returns the first four bytes of the digest for the current counter
// and advances the counter.
//
// This is part of the Source interface.
func (h *Hash) Priority() uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(h.seed))
	binary.LittleEndian.PutUint64(buf[8:], h.counter)
	h.counter++

	digest := chainhash.DoubleHashB(buf[:])
	return binary.LittleEndian.Uint32(digest[:4])
}

// Counter returns the number of priorities handed out so far.
func (h *Hash) Counter() uint64 {
	return h.counter
}

// Rand draws priorities from a math/rand generator seeded explicitly.
type Rand struct {
	rng *rand.Rand
}

// NewRand returns a math/rand backed source for the passed seed.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// Priority returns the next pseudo-random value.
//
// This is part of the Source interface.
func (r *Rand) Priority() uint32 {
	return r.rng.Uint32()
}

// Skip draws and discards n priorities from the passed source.
func Skip(src Source, n int) {
	for i := 0; i < n; i++ {
		src.Priority()
	}
}

// SupportedSources returns the names of all sources FromName can build.
func SupportedSources() []string {
	return []string{NameLCG, NameHash, NameRand}
}

// FromName returns a new source of the named kind seeded with seed.
func FromName(name string, seed int64) (Source, error) {
	switch name {
	case NameLCG:
		return NewLCG(seed), nil
	case NameHash:
		return NewHash(seed), nil
	case NameRand:
		return NewRand(seed), nil
	}

	return nil, fmt.Errorf("unknown priority source %q -- supported "+
		"sources %v", name, SupportedSources())
}
