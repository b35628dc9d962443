package rng

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMersenneTwisterReferenceVector(t *testing.T) {
	m := NewMersenneTwister(5489)
	want := []uint32{3499211612, 581869302, 3890346734, 3586334585, 545404204}
	for i, w := range want {
		if got := m.Uint32(); got != w {
			t.Fatalf("output %d: got %d want %d", i, got, w)
		}
	}
}

func TestMersenneTwisterTenThousandth(t *testing.T) {
	m := NewMersenneTwister(5489)
	var v uint32
	for i := 0; i < 10000; i++ {
		v = m.Uint32()
	}
	if v != 4123659995 {
		t.Fatalf("10000th output: got %d want 4123659995", v)
	}
}

func TestXorShiftVector(t *testing.T) {
	x := NewXorShift(1)
	assert.Equal(t, uint32(270369), x.Uint32())
	assert.Equal(t, uint32(67634689), x.Uint32())
	assert.Equal(t, uint32(2647435461), x.Uint32())
}

func TestZeroSeedFallback(t *testing.T) {
	for _, alg := range []Algorithm{AlgXorShift, AlgMT19937} {
		t.Run(string(alg), func(t *testing.T) {
			zero, err := New(alg, 0)
			require.NoError(t, err)
			def, err := New(alg, DefaultSeed)
			require.NoError(t, err)

			assert.Equal(t, DefaultSeed, zero.Seed())
			allZero := true
			for i := 0; i < 100; i++ {
				a, b := zero.Uint32(), def.Uint32()
				require.Equal(t, b, a, "output %d", i)
				if a != 0 {
					allZero = false
				}
			}
			assert.False(t, allZero)
		})
	}
}

func TestShiftMatchesSkippedOutputs(t *testing.T) {
	const seed, k = 987654321, 700 // k crosses an MT twist boundary
	for _, alg := range []Algorithm{AlgXorShift, AlgMT19937} {
		t.Run(string(alg), func(t *testing.T) {
			fresh, _ := New(alg, seed)
			var tail []uint32
			for i := 0; i < k+50; i++ {
				v := fresh.Uint32()
				if i >= k {
					tail = append(tail, v)
				}
			}

			shifted, _ := New(alg, seed)
			shifted.Shift(k)
			for i, want := range tail {
				require.Equal(t, want, shifted.Uint32(), "output %d after shift", i)
			}
		})
	}
}

func TestResetRewindsPastShift(t *testing.T) {
	for _, alg := range []Algorithm{AlgXorShift, AlgMT19937} {
		t.Run(string(alg), func(t *testing.T) {
			g, _ := New(alg, 31337)
			first := make([]uint32, 10)
			for i := range first {
				first[i] = g.Uint32()
			}

			g.Shift(1000)
			g.Reset()
			for i, want := range first {
				require.Equal(t, want, g.Uint32(), "output %d after reset", i)
			}
		})
	}
}

func TestShuffleKnownOrder(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(NewXorShift(42), s)
	assert.Equal(t, []int{5, 7, 6, 8, 2, 4, 3, 1}, s)

	s = []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(NewMersenneTwister(42), s)
	assert.Equal(t, []int{2, 1, 4, 8, 6, 5, 3, 7}, s)
}

func TestShufflePreservesMultiset(t *testing.T) {
	g := NewMersenneTwister(2024)
	for n := 0; n <= 40; n++ {
		s := make([]int, n)
		for i := range s {
			s[i] = i % 7 // duplicates on purpose
		}
		want := sortedCopy(s)

		Shuffle(g, s)
		require.Len(t, s, n)
		require.Equal(t, want, sortedCopy(s), "n=%d", n)
	}
}

func TestShuffleShortSlicesConsumeNothing(t *testing.T) {
	g := NewXorShift(5)
	ref := NewXorShift(5)

	Shuffle(g, []string{})
	Shuffle(g, []string{"only"})
	assert.Equal(t, ref.Uint32(), g.Uint32())

	assert.Equal(t, 0, ShuffleDraws(0))
	assert.Equal(t, 0, ShuffleDraws(1))
	assert.Equal(t, 74, ShuffleDraws(75))
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm(" MT19937 ")
	require.NoError(t, err)
	assert.Equal(t, AlgMT19937, alg)

	alg, err = ParseAlgorithm("xorshift")
	require.NoError(t, err)
	assert.Equal(t, AlgXorShift, alg)

	_, err = ParseAlgorithm("pcg")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = New(Algorithm("pcg"), 1)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func sortedCopy(s []int) []int {
	c := append([]int(nil), s...)
	sort.Ints(c)
	return c
}
