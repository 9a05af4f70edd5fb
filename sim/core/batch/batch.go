// Package batch runs N independent simulations against one shared,
// immutable SimConfig and reduces their results, per spec.md §5: a
// single-threaded core, parallelized only across iterations that share
// no mutable state.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// Options controls one batch run.
type Options struct {
	Iterations int
	// Concurrency bounds simultaneous goroutines. 0 (or negative) means
	// a limit of runtime.GOMAXPROCS(0).
	Concurrency int
}

// IterationError records which iteration failed and why, so a batch
// with one bad seed still reports every other iteration's result
// (spec.md §5, "one iteration's panic must not abort the batch").
type IterationError struct {
	Iteration int
	Err       error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("iteration %d: %v", e.Iteration, e.Err)
}

func (e *IterationError) Unwrap() error { return e.Err }

// Run executes opts.Iterations independent simulations built from cfg,
// seeding each with cfg.Seed XOR the iteration index so every iteration
// is reproducible in isolation while the batch as a whole is not a
// single RNG stream (spec.md §5). Results are written by index, not
// appended, so NewBatchResult's aggregate is independent of goroutine
// completion order. ctx cancellation is honored between dispatches; a
// cancelled run's not-yet-started iterations are skipped, and ctx.Err()
// is returned alongside whatever completed.
func Run(ctx context.Context, cfg *core.SimConfig, opts Options) (core.BatchResult, []*IterationError, error) {
	if opts.Iterations <= 0 {
		return core.BatchResult{}, nil, fmt.Errorf("batch: iterations must be positive")
	}

	results := make([]core.SimResult, opts.Iterations)
	ok := make([]bool, opts.Iterations)

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	} else {
		g.SetLimit(runtime.GOMAXPROCS(0))
	}

	var iterErrs []*IterationError
	var iterErrsIdx = make([]error, opts.Iterations)

	for i := 0; i < opts.Iterations; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			res, err := runOne(cfg, i)
			if err != nil {
				iterErrsIdx[i] = err
				return nil // isolate: one bad iteration must not cancel the group
			}
			results[i] = res
			ok[i] = true
			return nil
		})
	}

	waitErr := g.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}

	completed := make([]core.SimResult, 0, opts.Iterations)
	for i, r := range results {
		if ok[i] {
			completed = append(completed, r)
		}
		if iterErrsIdx[i] != nil {
			iterErrs = append(iterErrs, &IterationError{Iteration: i, Err: iterErrsIdx[i]})
		}
	}

	batchResult := core.NewBatchResult(completed)
	if waitErr != nil {
		return batchResult, iterErrs, waitErr
	}
	return batchResult, iterErrs, nil
}

// runOne seeds and runs a single isolated simulation. A panic inside
// core.Simulation.Run is already recovered there and surfaced as an
// error; runOne adds no recover of its own.
func runOne(cfg *core.SimConfig, iteration int) (core.SimResult, error) {
	iterCfg := *cfg
	iterCfg.Seed = cfg.Seed ^ int64(iteration)

	sim, err := core.NewSimulation(&iterCfg)
	if err != nil {
		return core.SimResult{}, err
	}
	return sim.Run()
}
