// Package rng provides the deterministic 32-bit generators that drive every
// game outcome. Outputs depend only on the algorithm and the seed, so any
// process given the same pair reproduces the same games.
package rng

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSeed replaces a zero seed; XorShift seeded with 0 would emit 0
// forever.
const DefaultSeed uint32 = 1234567890

var ErrUnknownAlgorithm = errors.New("unknown rng algorithm")

// Generator is a stateful stream of pseudo-random 32-bit values.
//
// Implementations are not safe for concurrent use; the owner of a generator
// is expected to serialize access to it.
type Generator interface {
	// Uint32 advances the state and returns the next value.
	Uint32() uint32
	// Shift discards the next n outputs.
	Shift(n int)
	// Reset restores the state right after construction, before any Shift.
	Reset()
	// Seed reports the effective seed (after zero fallback).
	Seed() uint32
}

// Algorithm selects one of the two supported generators.
type Algorithm string

const (
	AlgXorShift Algorithm = "xorshift"
	AlgMT19937  Algorithm = "mt19937"
)

// ParseAlgorithm accepts the canonical names plus a few common spellings.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xorshift", "xorshift32":
		return AlgXorShift, nil
	case "mt19937", "mt", "mersenne", "mersennetwister":
		return AlgMT19937, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// New builds a generator of the requested algorithm.
func New(alg Algorithm, seed uint32) (Generator, error) {
	switch alg {
	case AlgXorShift:
		return NewXorShift(seed), nil
	case AlgMT19937:
		return NewMersenneTwister(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
}

func effectiveSeed(seed uint32) uint32 {
	if seed == 0 {
		return DefaultSeed
	}
	return seed
}
