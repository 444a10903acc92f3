package solver_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/yields/solver"
)

func square(x float64) float64 { return x*x - 2 }

func TestBisect_FindsSqrtTwo(t *testing.T) {
	t.Parallel()

	res, err := solver.Bisect(square, 0, 2, solver.DefaultConfig)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-11)
	assert.Positive(t, res.Iterations)
}

func TestBisect_EndpointRoot(t *testing.T) {
	t.Parallel()

	res, err := solver.Bisect(func(x float64) float64 { return x - 1 }, 1, 3, solver.DefaultConfig)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Root)
	assert.Equal(t, 0, res.Iterations)
}

func TestBisect_NotBracketed(t *testing.T) {
	t.Parallel()

	_, err := solver.Bisect(square, 2, 3, solver.DefaultConfig)
	assert.ErrorIs(t, err, solver.ErrNotBracketed)
}

func TestBisect_IterationBudget(t *testing.T) {
	t.Parallel()

	cfg := solver.DefaultConfig
	cfg.MaxIterations = 3
	_, err := solver.Bisect(square, 0, 2, cfg)
	assert.ErrorIs(t, err, solver.ErrNoConvergence)
}

func TestBisect_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := solver.Bisect(square, 2, 0, solver.DefaultConfig)
	assert.ErrorIs(t, err, solver.ErrInvalidInput)

	_, err = solver.Bisect(square, 0, 2, solver.Config{Tolerance: 0, MaxIterations: 10})
	assert.ErrorIs(t, err, solver.ErrInvalidInput)

	_, err = solver.Bisect(func(float64) float64 { return math.NaN() }, 0, 2, solver.DefaultConfig)
	assert.ErrorIs(t, err, solver.ErrInvalidInput)
}

func TestSafeguarded_ConvergesFasterThanBisection(t *testing.T) {
	t.Parallel()

	bis, err := solver.Bisect(square, 0, 2, solver.DefaultConfig)
	require.NoError(t, err)

	safe, err := solver.Safeguarded(square, 0, 2, solver.DefaultConfig)
	require.NoError(t, err)

	assert.InDelta(t, math.Sqrt2, safe.Root, 1e-11)
	assert.Less(t, safe.Iterations, bis.Iterations)
}

func TestSafeguarded_DecreasingFunction(t *testing.T) {
	t.Parallel()

	// Price-like function: decreasing in the rate.
	f := func(r float64) float64 { return 105/(1+r) - 100 }
	res, err := solver.Safeguarded(f, -0.99, 1.0, solver.DefaultConfig)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, res.Root, 1e-12)
}

func TestSafeguarded_NotBracketed(t *testing.T) {
	t.Parallel()

	_, err := solver.Safeguarded(func(x float64) float64 { return x*x + 1 }, -1, 1, solver.DefaultConfig)
	assert.ErrorIs(t, err, solver.ErrNotBracketed)
}

func TestNewton_ClampsAndConverges(t *testing.T) {
	t.Parallel()

	df := func(x float64) float64 { return 2 * x }
	res, err := solver.Newton(square, df, 10, 0.5, 3, solver.DefaultConfig)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-12)
}

func TestNewton_FlatDerivative(t *testing.T) {
	t.Parallel()

	flat := func(float64) float64 { return 0 }
	_, err := solver.Newton(square, flat, 1, 0, 2, solver.DefaultConfig)
	assert.ErrorIs(t, err, solver.ErrFlatDerivative)
}

func TestFinders(t *testing.T) {
	t.Parallel()

	for name, find := range map[string]solver.RootFinder{
		"bisect":      solver.BisectFinder(solver.DefaultConfig),
		"safeguarded": solver.SafeguardedFinder(solver.DefaultConfig),
	} {
		find := find
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res, err := find(square, 0, 2)
			require.NoError(t, err)
			assert.InDelta(t, math.Sqrt2, res.Root, 1e-11)
		})
	}
}
