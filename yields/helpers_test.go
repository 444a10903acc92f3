package yields_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meenmo/yields/yields"
)

func sqrt(x float64) float64 { return math.Sqrt(x) }

// sampleCurves builds one instance of every curve variant.
func sampleCurves(t testing.TB) map[string]yields.Yield {
	t.Helper()

	constant, err := yields.NewConstant(0.05)
	require.NoError(t, err)
	step, err := yields.NewStep([]float64{0.02, 0.05, 0.04}, []float64{1, 2, 5})
	require.NoError(t, err)
	forward, err := yields.NewForward([]float64{0.01, 0.02, 0.03, 0.035})
	require.NoError(t, err)
	par, err := yields.NewPar([]float64{0.03, 0.035, 0.04, 0.042, 0.045})
	require.NoError(t, err)
	invertedForward, err := yields.NewForward([]float64{0.10, 0.0, 0.05})
	require.NoError(t, err)
	humpedForward, err := yields.NewForward([]float64{0.02, 0.06, 0.01})
	require.NoError(t, err)
	invertedPar, err := yields.NewPar([]float64{0.06, 0.05, 0.045})
	require.NoError(t, err)
	humpedPar, err := yields.NewPar([]float64{0.03, 0.05, 0.04})
	require.NoError(t, err)
	spread, err := yields.NewConstant(0.01)
	require.NoError(t, err)
	sum, err := yields.Add(par, spread)
	require.NoError(t, err)
	diff, err := yields.Subtract(step, spread)
	require.NoError(t, err)
	invertedSum, err := yields.Add(invertedPar, spread)
	require.NoError(t, err)

	return map[string]yields.Yield{
		"constant":    constant,
		"step":        step,
		"forward":     forward,
		"par":         par,
		"combination": sum,
		"difference":  diff,

		"inverted forward":     invertedForward,
		"humped forward":       humpedForward,
		"inverted par":         invertedPar,
		"humped par":           humpedPar,
		"inverted par + const": invertedSum,
	}
}
