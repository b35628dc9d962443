package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/party-lottery/internal/rng"
)

func TestFold(t *testing.T) {
	assert.Equal(t, uint32(105), Fold([]uint32{3, 5, 7}))
	assert.Equal(t, rng.DefaultSeed, Fold(nil))
	assert.Equal(t, rng.DefaultSeed, Fold([]uint32{12, 0, 9}))
	// 2^16 * 2^16 wraps to 0
	assert.Equal(t, rng.DefaultSeed, Fold([]uint32{1 << 16, 1 << 16}))
	// wrapping without hitting zero
	assert.Equal(t, uint32(4294967293), Fold([]uint32{4294967295, 3}))
}

func TestParseSkipsMalformedLines(t *testing.T) {
	in := "12\n\n  7 \nabc\n-4\n99999999999\n3\n"
	values, skipped, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []uint32{12, 7, 3}, values)
	assert.Equal(t, 3, skipped)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\nx\n21\n"), 0o644))

	src, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), src.Seed)
	assert.Equal(t, 2, src.Values)
	assert.Equal(t, 1, src.Skipped)
	assert.False(t, src.Fallback)
	assert.Equal(t, path, src.Path)
}

func TestFromFileMissingFallsBack(t *testing.T) {
	src, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	assert.Equal(t, rng.DefaultSeed, src.Seed)
	assert.True(t, src.Fallback)
}

func TestFromReaderAllMalformed(t *testing.T) {
	src, err := FromReader(strings.NewReader("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, rng.DefaultSeed, src.Seed)
	assert.Equal(t, 2, src.Skipped)
	assert.True(t, src.Fallback)
}

func TestExplicit(t *testing.T) {
	assert.Equal(t, Source{Seed: 77, Values: 1}, Explicit(77))
	assert.True(t, Explicit(0).Fallback)
	assert.Equal(t, rng.DefaultSeed, Explicit(0).Seed)
}

func TestPlanWindowsAreDisjoint(t *testing.T) {
	const slots = 10
	for _, alg := range []rng.Algorithm{rng.AlgXorShift, rng.AlgMT19937} {
		t.Run(string(alg), func(t *testing.T) {
			plan := NewPlan(alg, 4242, slots)
			assert.Equal(t, 0, plan.AmidaOffset)
			assert.Equal(t, slots-1, plan.BingoOffset)

			root, err := rng.New(alg, 4242)
			require.NoError(t, err)
			stream := make([]uint32, 500)
			for i := range stream {
				stream[i] = root.Uint32()
			}

			amida, err := plan.Amida()
			require.NoError(t, err)
			for i := 0; i < rng.ShuffleDraws(slots); i++ {
				require.Equal(t, stream[i], amida.Uint32())
			}

			// Bingo starts exactly where Amida's window ends.
			bingo, err := plan.Bingo()
			require.NoError(t, err)
			for i := plan.BingoOffset; i < len(stream); i++ {
				require.Equal(t, stream[i], bingo.Uint32())
			}
		})
	}
}

func TestPlanUnknownAlgorithm(t *testing.T) {
	_, err := NewPlan("nope", 1, 10).Bingo()
	assert.ErrorIs(t, err, rng.ErrUnknownAlgorithm)
}
