package montecarlo

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/core"
	"github.com/brendav1/simulation-final/domain/model"
	"github.com/brendav1/simulation-final/domain/simulate"
)

const imputationStream = "imputation"

// StreamFactory derives independent, reproducible random sub-streams per
// iteration. Satisfied by ports.RNGPort.
type StreamFactory interface {
	IterationStream(name string, baseSeed int64, iteration int) *rand.Rand
}

// Sample is one (iteration, term) coefficient estimate from a refit model.
// Samples are immutable once their run completes.
type Sample struct {
	Iteration int
	Term      string
	Estimate  float64
	StdError  float64
}

// Config controls a Monte Carlo run.
type Config struct {
	Iterations int
	Seed       int64
	Workers    int // concurrent iterations; 1 means sequential
}

// Driver repeats impute-and-refit with independent random draws and collects
// per-run coefficient estimates.
type Driver struct {
	design  *model.Design
	sampler *simulate.Sampler
	rng     StreamFactory
}

// NewDriver builds a driver. The design and sampler are the invariant
// baseline quantities; only the per-iteration completed dataset varies.
func NewDriver(design *model.Design, sampler *simulate.Sampler, rng StreamFactory) *Driver {
	return &Driver{design: design, sampler: sampler, rng: rng}
}

// Run executes cfg.Iterations impute-and-refit passes. Each iteration draws
// from its own sub-stream keyed by (seed, iteration index) and writes its
// samples to a disjoint slot, so the full sample sequence is bit-reproducible
// for a fixed seed regardless of worker count. A failed refit aborts the run
// and reports the failing iteration; iterations are never silently dropped.
func (d *Driver) Run(ctx context.Context, obs []cohort.Observation, cfg Config) ([]Sample, error) {
	if cfg.Iterations <= 0 {
		return nil, core.ErrNoSamples
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	perIteration := make([][]Sample, cfg.Iterations)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < cfg.Iterations; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			stream := d.rng.IterationStream(imputationStream, cfg.Seed, i)
			_, fitted, err := ImputeAndRefit(obs, d.sampler, d.design, stream)
			if err != nil {
				return core.NewIterationError(i, err)
			}

			samples := make([]Sample, len(fitted.Terms))
			for j, term := range fitted.Terms {
				samples[j] = Sample{
					Iteration: i,
					Term:      term,
					Estimate:  fitted.Coefficients[j],
					StdError:  fitted.StdErrors[j],
				}
			}
			perIteration[i] = samples
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]Sample, 0, cfg.Iterations*d.design.Width())
	for _, samples := range perIteration {
		all = append(all, samples...)
	}
	return all, nil
}
