package sim

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice of bodies worth a goroutine.
const minChunk = 64

// StepParallel calls Update(dt) on every body. Bodies share no state, so the
// slice is split into chunks that run concurrently when workers > 1.
func StepParallel(ctx context.Context, bodies []Body, dt float64, workers int) error {
	n := len(bodies)
	if workers <= 1 || n <= minChunk {
		for i := range bodies {
			bodies[i].Update(dt)
		}
		return nil
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunkSize := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		chunk := bodies[start:end]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := range chunk {
				chunk[i].Update(dt)
			}
			return nil
		})
	}
	return g.Wait()
}

// Ensemble runs perturbed copies of one world concurrently. Run i adds a
// uniform velocity perturbation in [-jitter, jitter] seeded with seedStart+i.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
	jitter    float64
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64, jitter float64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart, jitter: jitter}
}

func (e *Ensemble) Run(ctx context.Context, w *World, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(i)
			cfgCopy.Workers = 1

			s := New(e.base.field, WithLogger(e.base.logger))
			world := perturb(w, rand.New(rand.NewSource(cfgCopy.Seed)), e.jitter)

			res, err := s.Run(ctx, world, cfgCopy)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func perturb(w *World, rng *rand.Rand, jitter float64) *World {
	c := w.Clone()
	if jitter == 0 {
		return c
	}
	for i := range c.Bodies {
		for k := 0; k < 3; k++ {
			c.Bodies[i].Vel[k] += (2*rng.Float64() - 1) * jitter
		}
	}
	return c
}
