package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/party-lottery/internal/rng"
)

func TestRunKnownXorShift(t *testing.T) {
	r, err := Run(context.Background(), Params{
		Algorithm: rng.AlgXorShift,
		Seed:      1,
		Size:      10,
		Trials:    2000,
	})
	require.NoError(t, err)

	assert.Equal(t, 9, r.DF)
	assert.InDelta(t, 6.22, r.ChiSquare, 1e-9)
	assert.InDelta(t, 5.5805, r.Stats.Mean, 1e-9)
	assert.Greater(t, r.PValue, 0.5)
	assert.Less(t, r.PValue, 1.0)

	total := 0
	for _, c := range r.Counts {
		total += c
	}
	assert.Equal(t, 2000, total)
	assert.Len(t, r.Stats.Samples, 2000)
}

func TestRunLooksUniform(t *testing.T) {
	for _, alg := range []rng.Algorithm{rng.AlgXorShift, rng.AlgMT19937} {
		t.Run(string(alg), func(t *testing.T) {
			r, err := Run(context.Background(), Params{Algorithm: alg, Seed: 42, Trials: 7500})
			require.NoError(t, err)
			assert.Equal(t, 75, r.Size)
			assert.Greater(t, r.PValue, 0.01, "chi2=%v", r.ChiSquare)
			assert.InDelta(t, 38, r.Stats.Mean, 1.5)
		})
	}
}

func TestRunIndependentOfWorkers(t *testing.T) {
	p := Params{Algorithm: rng.AlgMT19937, Seed: 7, Size: 20, Trials: 333, Draw: 5}
	p.Workers = 1
	one, err := Run(context.Background(), p)
	require.NoError(t, err)
	p.Workers = 8
	many, err := Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, one.Counts, many.Counts)
	assert.Equal(t, one.Stats.Samples, many.Stats.Samples)
}

func TestRunRejectsBadParams(t *testing.T) {
	cases := map[string]Params{
		"no trials":   {Size: 10},
		"tiny domain": {Size: 1, Trials: 10},
		"draw beyond": {Size: 5, Trials: 10, Draw: 6},
		"unknown alg": {Algorithm: "lcg", Size: 5, Trials: 10},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Run(context.Background(), p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestRunHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Params{Size: 10, Trials: 100})
	assert.ErrorIs(t, err, context.Canceled)
}
