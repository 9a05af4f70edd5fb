package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legacy3/wowlab-sub000/sim/core/examplespec"
)

func TestRunAggregatesAllIterations(t *testing.T) {
	cfg, err := examplespec.BuildConfig(10*time.Second, 1)
	require.NoError(t, err)

	result, iterErrs, err := Run(context.Background(), cfg, Options{Iterations: 8})
	require.NoError(t, err)
	assert.Empty(t, iterErrs)
	assert.Len(t, result.Iterations, 8)
	assert.Greater(t, result.MeanDps, 0.0)
	assert.LessOrEqual(t, result.MinDps, result.MeanDps)
	assert.GreaterOrEqual(t, result.MaxDps, result.MeanDps)
}

func TestRunRejectsNonPositiveIterations(t *testing.T) {
	cfg, err := examplespec.BuildConfig(10*time.Second, 1)
	require.NoError(t, err)

	_, _, err = Run(context.Background(), cfg, Options{Iterations: 0})
	assert.Error(t, err)
}

func TestRunReproducesAggregateForSameSeed(t *testing.T) {
	cfg, err := examplespec.BuildConfig(10*time.Second, 99)
	require.NoError(t, err)

	res1, _, err := Run(context.Background(), cfg, Options{Iterations: 5})
	require.NoError(t, err)
	res2, _, err := Run(context.Background(), cfg, Options{Iterations: 5})
	require.NoError(t, err)

	assert.Equal(t, res1.MeanDps, res2.MeanDps, "same cfg.Seed across two full batches must reproduce the same aggregate")
}

func TestIterationErrorUnwraps(t *testing.T) {
	inner := assert.AnError
	e := &IterationError{Iteration: 3, Err: inner}
	assert.ErrorIs(t, e, inner)
	assert.Contains(t, e.Error(), "iteration 3")
}
