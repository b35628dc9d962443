// Package audit runs repeated Bingo rounds over consecutive seeds and checks
// that the drawn numbers look uniform.
package audit

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/xtding233/party-lottery/internal/bingo"
	"github.com/xtding233/party-lottery/internal/rng"
)

var ErrInvalidParams = errors.New("invalid audit params")

// Params describes one audit run.
type Params struct {
	Algorithm rng.Algorithm
	Seed      uint32 // trial i uses Seed+i, wrapping
	Size      int    // bingo domain
	Trials    int
	Draw      int // 1-based draw position recorded per trial; 0 means the first
	Workers   int // 0 means GOMAXPROCS
}

// Stats summarizes the recorded numbers.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples, kept for callers that want histograms
	Samples []int `json:"-"`
}

// Report is the outcome of Run.
type Report struct {
	Algorithm rng.Algorithm `json:"algorithm"`
	Seed      uint32        `json:"seed"`
	Size      int           `json:"size"`
	Trials    int           `json:"trials"`
	Draw      int           `json:"draw"`
	Counts    []int         `json:"counts"` // Counts[n-1] is how often n was recorded
	Stats     Stats         `json:"stats"`
	ChiSquare float64       `json:"chi_square"`
	DF        int           `json:"df"`
	PValue    float64       `json:"p_value"`
}

func (p *Params) normalize() error {
	if p.Algorithm == "" {
		p.Algorithm = rng.AlgXorShift
	}
	if p.Size == 0 {
		p.Size = bingo.DefaultSize
	}
	if p.Draw == 0 {
		p.Draw = 1
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	switch {
	case p.Size < 2:
		return fmt.Errorf("%w: size %d, need at least 2", ErrInvalidParams, p.Size)
	case p.Trials <= 0:
		return fmt.Errorf("%w: trials %d", ErrInvalidParams, p.Trials)
	case p.Draw < 1 || p.Draw > p.Size:
		return fmt.Errorf("%w: draw %d outside 1..%d", ErrInvalidParams, p.Draw, p.Size)
	}
	if _, err := rng.ParseAlgorithm(string(p.Algorithm)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// simulateOne plays one fresh round and returns the number at position draw.
func simulateOne(alg rng.Algorithm, seed uint32, size, draw int) (int, error) {
	gen, err := rng.New(alg, seed)
	if err != nil {
		return 0, err
	}
	e, err := bingo.New(size, gen)
	if err != nil {
		return 0, err
	}
	var n int
	for i := 0; i < draw; i++ {
		n, _ = e.Draw()
	}
	return n, nil
}

// Run executes the trials and summarizes them. Results do not depend on
// Workers.
func Run(ctx context.Context, p Params) (Report, error) {
	if err := p.normalize(); err != nil {
		return Report{}, err
	}

	samples := make([]int, p.Trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	chunk := (p.Trials + p.Workers - 1) / p.Workers
	for lo := 0; lo < p.Trials; lo += chunk {
		hi := min(lo+chunk, p.Trials)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := simulateOne(p.Algorithm, p.Seed+uint32(i), p.Size, p.Draw)
				if err != nil {
					return err
				}
				samples[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	counts := make([]int, p.Size)
	for _, v := range samples {
		counts[v-1]++
	}
	st, err := calcStats(samples)
	if err != nil {
		return Report{}, err
	}
	chi, df := chiSquare(counts, p.Trials)
	return Report{
		Algorithm: p.Algorithm,
		Seed:      p.Seed,
		Size:      p.Size,
		Trials:    p.Trials,
		Draw:      p.Draw,
		Counts:    counts,
		Stats:     st,
		ChiSquare: chi,
		DF:        df,
		PValue:    distuv.ChiSquared{K: float64(df)}.Survival(chi),
	}, nil
}

// chiSquare tests counts against a uniform expectation.
func chiSquare(counts []int, trials int) (float64, int) {
	expected := float64(trials) / float64(len(counts))
	var chi float64
	for _, o := range counts {
		d := float64(o) - expected
		chi += d * d / expected
	}
	return chi, len(counts) - 1
}

func calcStats(xs []int) (Stats, error) {
	data := stats.LoadRawData(xs)
	mean, err := stats.Mean(data)
	if err != nil {
		return Stats{}, fmt.Errorf("mean: %w", err)
	}
	variance, err := stats.PopulationVariance(data)
	if err != nil {
		return Stats{}, fmt.Errorf("variance: %w", err)
	}
	sd, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return Stats{}, fmt.Errorf("stddev: %w", err)
	}
	out := Stats{Mean: mean, Var: variance, StdDev: sd, Samples: xs}
	for _, q := range []struct {
		pct float64
		dst *float64
	}{{50, &out.P50}, {90, &out.P90}, {99, &out.P99}} {
		v, err := stats.Percentile(data, q.pct)
		if err != nil {
			return Stats{}, fmt.Errorf("p%v: %w", q.pct, err)
		}
		*q.dst = v
	}
	return out, nil
}
