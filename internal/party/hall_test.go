package party

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/party-lottery/internal/amida"
	"github.com/xtding233/party-lottery/internal/bingo"
	"github.com/xtding233/party-lottery/internal/rng"
	"github.com/xtding233/party-lottery/internal/seed"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHall(t *testing.T, opts Options) *Hall {
	t.Helper()
	opts.Logger = quietLogger()
	h, err := New(opts)
	require.NoError(t, err)
	return h
}

func TestNewAppliesDefaults(t *testing.T) {
	h := newHall(t, Options{Seed: 0})
	assert.Equal(t, rng.DefaultSeed, h.Seed())
	assert.Equal(t, rng.AlgXorShift, h.Algorithm())

	b := h.Bingo()
	assert.Equal(t, bingo.DefaultSize, b.Size)
	assert.Equal(t, bingo.DefaultSize, b.Remaining)
	assert.Equal(t, bingo.StateReady, b.State)

	a := h.Amida()
	assert.Equal(t, amida.DefaultSlots, a.Slots)
	assert.False(t, a.Ready())
	assert.Equal(t, amida.DefaultSlots-1, h.Plan().BingoOffset)
}

func TestNewRejectsBadSizes(t *testing.T) {
	_, err := New(Options{Seed: 1, AmidaSlots: -1, Logger: quietLogger()})
	assert.ErrorIs(t, err, amida.ErrInvalidSlots)

	_, err = New(Options{Seed: 1, BingoSize: -5, Logger: quietLogger()})
	assert.ErrorIs(t, err, bingo.ErrInvalidSize)

	_, err = New(Options{Seed: 1, Algorithm: "dice", Logger: quietLogger()})
	assert.ErrorIs(t, err, rng.ErrUnknownAlgorithm)
}

func TestGamesMatchThePlan(t *testing.T) {
	h := newHall(t, Options{Algorithm: rng.AlgMT19937, Seed: 5489, AmidaSlots: 8})

	plan := seed.NewPlan(rng.AlgMT19937, 5489, 8)
	ag, err := plan.Amida()
	require.NoError(t, err)
	wantAmida, err := amida.New(8, ag)
	require.NoError(t, err)

	bg, err := plan.Bingo()
	require.NoError(t, err)
	wantBingo, err := bingo.New(bingo.DefaultSize, bg)
	require.NoError(t, err)

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	wantAmida.SetParticipants(names)
	wantPairs, _ := wantAmida.Result()

	h.SetParticipants(names)
	pairs, ok := h.AmidaResult()
	require.True(t, ok)
	assert.Equal(t, wantPairs, pairs)

	for i := 0; i < 10; i++ {
		want, _ := wantBingo.Draw()
		snap := h.Draw()
		require.NotNil(t, snap.Number)
		assert.Equal(t, want, *snap.Number)
	}
}

func TestDrawUntilExhausted(t *testing.T) {
	h := newHall(t, Options{Seed: 8, BingoSize: 3})
	for i := 0; i < 3; i++ {
		snap := h.Draw()
		require.NotNil(t, snap.Number)
		assert.Len(t, snap.History, i+1)
	}
	snap := h.Draw()
	assert.Nil(t, snap.Number)
	assert.Equal(t, bingo.StateExhausted, snap.State)
	assert.Len(t, snap.History, 3)
	assert.Zero(t, snap.Remaining)
}

func TestResetBingoNewRound(t *testing.T) {
	h := newHall(t, Options{Seed: 8})
	first := h.Draw()
	h.Draw()

	snap := h.ResetBingo()
	assert.NotEqual(t, first.Round, snap.Round)
	assert.Empty(t, snap.History)
	assert.Equal(t, bingo.DefaultSize, snap.Remaining)
	assert.Nil(t, snap.Number)
}

func TestSetParticipantsBumpsRevision(t *testing.T) {
	h := newHall(t, Options{Seed: 8, AmidaSlots: 2})
	before := h.Amida().Revision

	snap := h.SetParticipants([]string{"only one"})
	assert.NotEqual(t, before, snap.Revision)
	assert.Equal(t, amida.StateConfigured, snap.State)
	_, ok := h.AmidaResult()
	assert.False(t, ok)

	snap = h.SetParticipants([]string{"x", "y"})
	assert.True(t, snap.Ready())
}

func TestConcurrentDrawsKeepPartition(t *testing.T) {
	h := newHall(t, Options{Seed: 2024})

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		drawn []int
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				snap := h.Draw()
				if snap.Number == nil {
					continue
				}
				mu.Lock()
				drawn = append(drawn, *snap.Number)
				mu.Unlock()
			}
		}()
	}
	// Amida traffic in parallel must not interfere.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			h.SetParticipants([]string{"a"})
			h.AmidaResult()
		}
	}()
	wg.Wait()

	require.Len(t, drawn, bingo.DefaultSize)
	sort.Ints(drawn)
	for i, v := range drawn {
		require.Equal(t, i+1, v)
	}
	assert.Equal(t, bingo.StateExhausted, h.Bingo().State)
}

func TestBingoSnapshotLast(t *testing.T) {
	h := newHall(t, Options{Seed: 8, BingoSize: 2})
	assert.Nil(t, h.Bingo().Last)

	first := h.Draw()
	require.NotNil(t, first.Last)
	assert.Equal(t, *first.Number, *first.Last)

	second := h.Draw()
	over := h.Draw()
	assert.Nil(t, over.Number)
	require.NotNil(t, over.Last)
	assert.Equal(t, *second.Number, *over.Last)

	assert.Nil(t, h.ResetBingo().Last)
}
